// Package model implements an immutable document tree addressed by integer
// positions.
package model

import (
	"errors"
	"fmt"
)

// TableRole marks node types taking part in table geometry.
type TableRole string

const (
	RoleNone       TableRole = ""
	RoleTable      TableRole = "table"
	RoleRow        TableRole = "row"
	RoleCell       TableRole = "cell"
	RoleHeaderCell TableRole = "header_cell"
)

// AttrKind describes how attribute value is stored and serialized.
type AttrKind int

const (
	AttrString AttrKind = iota
	AttrInt
	AttrInts
	AttrFloats
	AttrBool
)

type AttrSpec struct {
	Name    string
	Kind    AttrKind
	Default any
}

type NodeSpec struct {
	Name      string
	Text      bool
	Inline    bool
	Leaf      bool
	Textblock bool
	TableRole TableRole
	Attrs     []AttrSpec
	// Fill names child node type created by CreateAndFill.
	Fill string
	// Tags are additional element names accepted on parsing.
	Tags []string
}

var ErrSchema = errors.New("bad schema")

type Schema struct {
	top   *NodeType
	text  *NodeType
	nodes map[string]*NodeType
	order []*NodeType
	tags  map[string]*NodeType
}

// NewSchema builds schema from node specs, top names type of the document root.
func NewSchema(top string, specs ...NodeSpec) (*Schema, error) {
	s := &Schema{
		nodes: make(map[string]*NodeType, len(specs)),
		tags:  make(map[string]*NodeType),
	}
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: node spec without name", ErrSchema)
		}
		if _, ok := s.nodes[spec.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate node type %q", ErrSchema, spec.Name)
		}
		nt := &NodeType{Name: spec.Name, spec: spec, schema: s}
		defaults, err := nt.ComputeAttrs(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: node type %q: %w", ErrSchema, spec.Name, err)
		}
		nt.defaults = defaults
		s.nodes[spec.Name] = nt
		s.order = append(s.order, nt)
		s.tags[spec.Name] = nt
		if spec.Text {
			s.text = nt
		}
	}
	for _, nt := range s.order {
		for _, tag := range nt.spec.Tags {
			if other, ok := s.tags[tag]; ok && other != nt {
				return nil, fmt.Errorf("%w: tag %q used by %q and %q", ErrSchema, tag, other.Name, nt.Name)
			}
			s.tags[tag] = nt
		}
		if nt.spec.Fill != "" {
			fill, ok := s.nodes[nt.spec.Fill]
			if !ok {
				return nil, fmt.Errorf("%w: node type %q fills with unknown %q", ErrSchema, nt.Name, nt.spec.Fill)
			}
			nt.fill = fill
		}
	}
	topType, ok := s.nodes[top]
	if !ok {
		return nil, fmt.Errorf("%w: unknown top node type %q", ErrSchema, top)
	}
	s.top = topType
	if s.text == nil {
		return nil, fmt.Errorf("%w: no text node type", ErrSchema)
	}
	return s, nil
}

func (s *Schema) TopNodeType() *NodeType {
	return s.top
}

// Node returns node type by name or nil.
func (s *Schema) Node(name string) *NodeType {
	return s.nodes[name]
}

// ByTag returns node type for element name, accepting both names and tag aliases.
func (s *Schema) ByTag(tag string) *NodeType {
	return s.tags[tag]
}

// Nodes returns node types in declaration order.
func (s *Schema) Nodes() []*NodeType {
	return append([]*NodeType(nil), s.order...)
}

func (s *Schema) Text(text string, marks ...string) *Node {
	return newText(s.text, text, marks)
}

type NodeType struct {
	Name     string
	spec     NodeSpec
	schema   *Schema
	defaults Attrs
	fill     *NodeType
}

func (nt *NodeType) Schema() *Schema      { return nt.schema }
func (nt *NodeType) Spec() NodeSpec       { return nt.spec }
func (nt *NodeType) TableRole() TableRole { return nt.spec.TableRole }
func (nt *NodeType) IsText() bool         { return nt.spec.Text }
func (nt *NodeType) IsInline() bool       { return nt.spec.Inline || nt.spec.Text }
func (nt *NodeType) IsLeaf() bool         { return nt.spec.Leaf || nt.spec.Text }
func (nt *NodeType) IsTextblock() bool    { return nt.spec.Textblock }

// IsCell reports whether nodes of this type occupy table grid slots.
func (nt *NodeType) IsCell() bool {
	return nt.spec.TableRole == RoleCell || nt.spec.TableRole == RoleHeaderCell
}

func (nt *NodeType) attrSpec(name string) (AttrSpec, bool) {
	for _, as := range nt.spec.Attrs {
		if as.Name == name {
			return as, true
		}
	}
	return AttrSpec{}, false
}

// ComputeAttrs fills in defaults and coerces supplied values to declared
// kinds. Attributes the type does not declare are dropped.
func (nt *NodeType) ComputeAttrs(attrs Attrs) (Attrs, error) {
	if attrs == nil && nt.defaults != nil {
		return nt.defaults, nil
	}
	res := make(Attrs, len(nt.spec.Attrs))
	for _, as := range nt.spec.Attrs {
		v, ok := attrs[as.Name]
		if !ok {
			v = as.Default
		}
		cv, err := coerce(as.Kind, v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", as.Name, err)
		}
		res[as.Name] = cv
	}
	return res, nil
}

// Create makes a node of this type. Supplying text content to non-text type
// or children to a leaf is a programming error and panics.
func (nt *NodeType) Create(attrs Attrs, content Fragment) *Node {
	if nt.spec.Text {
		panic("text nodes are created with Schema.Text")
	}
	if nt.IsLeaf() && content.Size() > 0 {
		panic(fmt.Sprintf("leaf node type %q can not have content", nt.Name))
	}
	computed, err := nt.ComputeAttrs(attrs)
	if err != nil {
		panic(fmt.Sprintf("node type %q: %v", nt.Name, err))
	}
	return newNode(nt, computed, content)
}

// CreateChecked is Create that reports bad attribute values instead of panicking.
func (nt *NodeType) CreateChecked(attrs Attrs, content Fragment) (*Node, error) {
	if nt.spec.Text {
		return nil, fmt.Errorf("text nodes are created with Schema.Text")
	}
	if nt.IsLeaf() && content.Size() > 0 {
		return nil, fmt.Errorf("leaf node type %q can not have content", nt.Name)
	}
	computed, err := nt.ComputeAttrs(attrs)
	if err != nil {
		return nil, fmt.Errorf("node type %q: %w", nt.Name, err)
	}
	return newNode(nt, computed, content), nil
}

// CreateAndFill makes a node with minimal valid content: a chain of fill types.
func (nt *NodeType) CreateAndFill(attrs Attrs) *Node {
	if nt.fill == nil {
		return nt.Create(attrs, EmptyFragment)
	}
	return nt.Create(attrs, FragmentOf(nt.fill.CreateAndFill(nil)))
}

// BasicNodes returns node specs for a plain document: doc, paragraph, text and
// hard_break. Block content of table cells is made of these.
func BasicNodes() []NodeSpec {
	return []NodeSpec{
		{Name: "doc", Attrs: []AttrSpec{{Name: "id", Kind: AttrString, Default: ""}}},
		{Name: "paragraph", Textblock: true, Tags: []string{"p"}},
		{Name: "text", Text: true, Inline: true},
		{Name: "hard_break", Inline: true, Leaf: true, Tags: []string{"br"}},
	}
}
