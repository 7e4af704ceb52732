package model

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"tabular/utils/debug"
)

var ErrInvalidPosition = errors.New("invalid position")

// Node is an immutable document tree node. Every node carries a content hash
// computed once at creation, equal subtrees have equal hashes.
type Node struct {
	typ     *NodeType
	attrs   Attrs
	content Fragment
	text    string
	marks   []string
	size    int
	hash    uint64
}

func newNode(typ *NodeType, attrs Attrs, content Fragment) *Node {
	n := &Node{typ: typ, attrs: attrs, content: content}
	switch {
	case typ.IsLeaf():
		n.size = 1
	default:
		n.size = content.size + 2
	}
	n.hash = n.computeHash()
	return n
}

func newText(typ *NodeType, text string, marks []string) *Node {
	if text == "" {
		panic("empty text nodes are not allowed")
	}
	n := &Node{typ: typ, text: text, marks: slices.Clone(marks), size: utf8.RuneCountInString(text)}
	slices.Sort(n.marks)
	n.hash = n.computeHash()
	return n
}

func (n *Node) computeHash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(n.typ.Name)
	_, _ = d.Write([]byte{0})
	keys := make([]string, 0, len(n.attrs))
	for k, v := range n.attrs {
		if v != nil {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(d, "%s=%v;", k, n.attrs[k])
	}
	_, _ = d.Write([]byte{0})
	for _, m := range n.marks {
		_, _ = d.WriteString(m)
		_, _ = d.Write([]byte{0})
	}
	_, _ = d.WriteString(n.text)
	var buf [8]byte
	for _, c := range n.content.nodes {
		binary.LittleEndian.PutUint64(buf[:], c.hash)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

func (n *Node) Type() *NodeType { return n.typ }

// Attrs returns node attributes, the map must not be modified.
func (n *Node) Attrs() Attrs      { return n.attrs }
func (n *Node) Attr(name string) any { return n.attrs[name] }
func (n *Node) Content() Fragment { return n.content }
func (n *Node) Text() string      { return n.text }
func (n *Node) Marks() []string   { return slices.Clone(n.marks) }
func (n *Node) Hash() uint64      { return n.hash }
func (n *Node) IsText() bool      { return n.typ.IsText() }
func (n *Node) IsLeaf() bool      { return n.typ.IsLeaf() }
func (n *Node) IsInline() bool    { return n.typ.IsInline() }
func (n *Node) IsTextblock() bool { return n.typ.IsTextblock() }

// NodeSize is 1 for leaves, rune length for text and content size plus two
// otherwise.
func (n *Node) NodeSize() int { return n.size }

func (n *Node) ChildCount() int       { return len(n.content.nodes) }
func (n *Node) Child(i int) *Node      { return n.content.Child(i) }
func (n *Node) MaybeChild(i int) *Node { return n.content.MaybeChild(i) }
func (n *Node) FirstChild() *Node      { return n.content.FirstChild() }
func (n *Node) LastChild() *Node       { return n.content.LastChild() }

func (n *Node) runes() []rune {
	return []rune(n.text)
}

func (n *Node) canJoin(other *Node) bool {
	return n.IsText() && other.IsText() && slices.Equal(n.marks, other.marks)
}

func (n *Node) withText(text string) *Node {
	return newText(n.typ, text, n.marks)
}

// Copy returns node with the same markup and different content.
func (n *Node) Copy(content Fragment) *Node {
	if n.IsText() {
		return n
	}
	return newNode(n.typ, n.attrs, content)
}

// WithMarkup returns node of another type and attributes keeping the content.
func (n *Node) WithMarkup(typ *NodeType, attrs Attrs) (*Node, error) {
	if typ == nil {
		typ = n.typ
	}
	if n.IsText() || typ.IsText() {
		return nil, fmt.Errorf("unable to change markup of text node")
	}
	return typ.CreateChecked(attrs, n.content)
}

// Cut returns part of the node content between from and to.
func (n *Node) Cut(from, to int) *Node {
	if n.IsText() {
		r := n.runes()
		to = min(to, len(r))
		if from == 0 && to == len(r) {
			return n
		}
		return n.withText(string(r[from:to]))
	}
	if from == 0 && to == n.content.size {
		return n
	}
	return n.Copy(n.content.Cut(from, to))
}

// NodeAt returns the node starting at content relative position or nil.
func (n *Node) NodeAt(pos int) *Node {
	for node := n; ; {
		if pos < 0 || pos > node.content.size {
			return nil
		}
		index, offset := node.content.FindIndex(pos)
		node = node.MaybeChild(index)
		if node == nil {
			return nil
		}
		if offset == pos || node.IsText() {
			return node
		}
		pos -= offset + 1
	}
}

// NodesBetween walks descendants overlapping from-to, positions are relative
// to start of the node content plus startPos.
func (n *Node) NodesBetween(from, to int, fn func(node *Node, pos int, parent *Node, index int) bool, startPos int) {
	n.content.NodesBetween(from, to, fn, startPos, n)
}

func (n *Node) Descendants(fn func(node *Node, pos int, parent *Node, index int) bool) {
	n.NodesBetween(0, n.content.size, fn, 0)
}

func (n *Node) TextContent() string {
	if n.IsText() {
		return n.text
	}
	var sb strings.Builder
	n.Descendants(func(c *Node, _ int, _ *Node, _ int) bool {
		if c.IsText() {
			sb.WriteString(c.text)
		}
		return true
	})
	return sb.String()
}

// SameMarkup compares type, attributes and marks.
func (n *Node) SameMarkup(other *Node) bool {
	return n.typ == other.typ && n.attrs.Equal(other.attrs) && slices.Equal(n.marks, other.marks)
}

// Eq reports structural equality.
func (n *Node) Eq(other *Node) bool {
	if n == other {
		return true
	}
	if other == nil || n.hash != other.hash || n.size != other.size {
		return false
	}
	return n.SameMarkup(other) && n.text == other.text && n.content.Eq(other.content)
}

// Replace returns new tree with from-to range replaced by content. Both ends
// must resolve into the same parent node.
func (n *Node) Replace(from, to int, content Fragment) (*Node, error) {
	if from > to {
		return nil, fmt.Errorf("%w: replace range %d-%d is inverted", ErrInvalidPosition, from, to)
	}
	rFrom, err := n.Resolve(from)
	if err != nil {
		return nil, err
	}
	rTo, err := n.Resolve(to)
	if err != nil {
		return nil, err
	}
	if rFrom.Depth() != rTo.Depth() || rFrom.Start(rFrom.Depth()) != rTo.Start(rTo.Depth()) {
		return nil, fmt.Errorf("%w: replace range %d-%d crosses node boundaries", ErrInvalidPosition, from, to)
	}
	if rFrom.Parent().IsLeaf() {
		return nil, fmt.Errorf("%w: unable to insert into leaf node", ErrInvalidPosition)
	}
	return replaceAt(n, rFrom, rTo, 0, content), nil
}

func replaceAt(node *Node, from, to *ResolvedPos, depth int, content Fragment) *Node {
	if depth == from.Depth() {
		c := node.content.Cut(0, from.ParentOffset()).
			Append(content).
			Append(node.content.Cut(to.ParentOffset(), node.content.size))
		return node.Copy(c)
	}
	index := from.Index(depth)
	child := node.Child(index)
	return node.Copy(node.content.ReplaceChild(index, replaceAt(child, from, to, depth+1, content)))
}

func (n *Node) String() string {
	if n.IsText() {
		return fmt.Sprintf("%q", n.text)
	}
	if n.content.size == 0 && n.ChildCount() == 0 {
		return n.typ.Name
	}
	return n.typ.Name + "(" + strings.Trim(n.content.String(), "<>") + ")"
}

// Dump returns indented tree representation for debugging.
func (n *Node) Dump() string {
	tw := debug.NewTreeWriter()
	n.dump(tw, 0, 0)
	return tw.String()
}

func (n *Node) dump(tw *debug.TreeWriter, depth, pos int) {
	if n.IsText() {
		tw.TextBlock(depth, fmt.Sprintf("text@%d", pos), n.text)
		return
	}
	tw.Node(depth, fmt.Sprintf("%s@%d", n.typ.Name, pos), n.attrs)
	n.content.ForEach(func(child *Node, offset, _ int) {
		child.dump(tw, depth+1, pos+1+offset)
	})
}
