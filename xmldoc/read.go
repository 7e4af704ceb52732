// Package xmldoc converts documents between XML and the document tree.
package xmldoc

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"tabular/css"
	"tabular/model"
)

var ErrNoRoot = errors.New("document has no root element")

// NewDocument returns etree document with settings used for reading and
// writing tabular documents.
func NewDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charsetReader,
		ValidateInput: false,
		Permissive:    true,
	}
	return doc
}

// charsetReader leaves UTF-16 and UTF-32 input alone. Such documents can only
// be detected by BOM and are transcoded to UTF-8 before parsing.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	if strings.HasPrefix(l, "utf-16") || strings.HasPrefix(l, "utf-32") || l == "utf16" || l == "utf32" {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

// Read reads XML from r and parses it into document tree. Returned etree
// document is the source the tree was built from.
func Read(r io.Reader, schema *model.Schema, log *zap.Logger) (*model.Node, *etree.Document, error) {
	doc := NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, nil, fmt.Errorf("unable to read XML: %w", err)
	}
	node, err := Parse(doc, schema, log)
	if err != nil {
		return nil, doc, err
	}
	return node, doc, nil
}

// Parse builds document tree from etree document. Unknown elements are
// reported and skipped.
func Parse(doc *etree.Document, schema *model.Schema, log *zap.Logger) (*model.Node, error) {
	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}
	top := schema.TopNodeType()
	if schema.ByTag(root.Tag) != top {
		return nil, fmt.Errorf("unexpected root element %q, expected %q", root.Tag, top.Name)
	}
	return parseElement(root, top, log)
}

func parseElement(el *etree.Element, typ *model.NodeType, log *zap.Logger) (*model.Node, error) {
	attrs, err := parseAttrs(el, typ, log)
	if err != nil {
		return nil, err
	}

	var children []*model.Node
	switch {
	case typ.IsLeaf():
		if len(el.ChildElements()) > 0 || strings.TrimSpace(el.Text()) != "" {
			log.Warn("Content of leaf element, ignoring", zap.String("tag", el.Tag))
		}
	case typ.IsTextblock():
		children = parseInline(el, typ.Schema(), nil, log)
	default:
		for _, tok := range el.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				if !t.IsWhitespace() {
					log.Warn("Unexpected text, ignoring", zap.String("parent", el.Tag), zap.String("text", t.Data))
				}
			case *etree.Element:
				ct := typ.Schema().ByTag(t.Tag)
				if ct == nil || ct.IsInline() || ct == typ.Schema().TopNodeType() {
					log.Warn("Unexpected tag in "+el.Tag+", ignoring", zap.String("parent", el.Tag), zap.String("tag", t.Tag))
					continue
				}
				child, err := parseElement(t, ct, log)
				if err != nil {
					return nil, err
				}
				children = append(children, child)
			}
		}
	}

	node, err := typ.CreateChecked(attrs, model.FragmentOf(children...))
	if err != nil {
		return nil, fmt.Errorf("element %s: %w", el.GetPath(), err)
	}
	return node, nil
}

// parseInline collects text and inline nodes of a textblock. Elements which
// are not inline node types become marks on the text they enclose.
func parseInline(el *etree.Element, schema *model.Schema, marks []string, log *zap.Logger) []*model.Node {
	var res []*model.Node
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			if t.Data != "" {
				res = append(res, schema.Text(t.Data, marks...))
			}
		case *etree.Element:
			ct := schema.ByTag(t.Tag)
			switch {
			case ct == nil:
				res = append(res, parseInline(t, schema, append(marks[:len(marks):len(marks)], t.Tag), log)...)
			case ct.IsInline() && !ct.IsText():
				attrs, err := parseAttrs(t, ct, log)
				if err != nil {
					log.Warn("Bad inline attributes, ignoring", zap.String("tag", t.Tag), zap.Error(err))
					attrs = nil
				}
				res = append(res, ct.Create(attrs, model.EmptyFragment))
			default:
				log.Warn("Unexpected tag in "+el.Tag+", ignoring", zap.String("parent", el.Tag), zap.String("tag", t.Tag))
			}
		}
	}
	return res
}

func parseAttrs(el *etree.Element, typ *model.NodeType, log *zap.Logger) (model.Attrs, error) {
	if len(el.Attr) == 0 {
		return nil, nil
	}
	specs := typ.Spec().Attrs
	attrs := make(model.Attrs, len(el.Attr))
	var style string
	for _, a := range el.Attr {
		if a.Space != "" {
			continue
		}
		if a.Key == attrStyle && !declares(typ, attrStyle) {
			style = a.Value
			continue
		}
		idx := -1
		for i := range specs {
			if specs[i].Name == a.Key {
				idx = i
				break
			}
		}
		if idx < 0 {
			log.Debug("Unknown attribute, ignoring", zap.String("tag", el.Tag), zap.String("attr", a.Key))
			continue
		}
		v, err := parseAttrValue(specs[idx].Kind, a.Value)
		if err != nil {
			return nil, fmt.Errorf("element %q attribute %q: %w", el.Tag, a.Key, err)
		}
		attrs[a.Key] = v
	}
	if style != "" {
		applyStyle(attrs, typ, css.ParseInline(style, log))
	}
	return attrs, nil
}

const (
	attrStyle      = "style"
	attrBackground = "background"
	attrColwidth   = "colwidth"
	attrColspan    = "colspan"
)

func declares(typ *model.NodeType, name string) bool {
	for _, as := range typ.Spec().Attrs {
		if as.Name == name {
			return true
		}
	}
	return false
}

// applyStyle fills attributes which may come from inline style. Explicit
// attributes take precedence. Pixel width becomes colwidth of single column
// cells only.
func applyStyle(attrs model.Attrs, typ *model.NodeType, decls css.Declarations) {
	if _, ok := attrs[attrBackground]; !ok && declares(typ, attrBackground) {
		if v, ok := decls.Get("background-color", "background"); ok && v.Keyword != "" {
			attrs[attrBackground] = v.Keyword
		}
	}
	if _, ok := attrs[attrColwidth]; !ok && declares(typ, attrColwidth) {
		if span, ok := attrs[attrColspan].(int); ok && span != 1 {
			return
		}
		if v, ok := decls.Get("width"); ok {
			if px, ok := v.Pixels(); ok && px > 0 {
				attrs[attrColwidth] = []int{px}
			}
		}
	}
}

// ParseAttr converts textual value of attribute name declared by typ the same
// way values are read from XML.
func ParseAttr(typ *model.NodeType, name, value string) (any, error) {
	for _, as := range typ.Spec().Attrs {
		if as.Name == name {
			return parseAttrValue(as.Kind, value)
		}
	}
	return nil, fmt.Errorf("%s has no attribute %q", typ.Name, name)
}

func parseAttrValue(kind model.AttrKind, s string) (any, error) {
	s = strings.TrimSpace(s)
	switch kind {
	case model.AttrInt:
		return strconv.Atoi(s)
	case model.AttrInts:
		if s == "" {
			return nil, nil
		}
		parts := strings.Split(s, ",")
		res := make([]int, len(parts))
		for i, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil, err
			}
			res[i] = n
		}
		return res, nil
	case model.AttrFloats:
		if s == "" {
			return nil, nil
		}
		parts := strings.Split(s, ",")
		res := make([]float64, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, err
			}
			res[i] = f
		}
		return res, nil
	case model.AttrBool:
		return strconv.ParseBool(s)
	}
	return s, nil
}
