// Package editor holds editor state: a document with selection, and
// transactions producing new states.
package editor

import (
	"fmt"

	"tabular/model"
	"tabular/transform"
)

// Selection is implemented by all selection kinds.
type Selection interface {
	Anchor() int
	Head() int
	From() int
	To() int
	// Map returns selection valid in doc after mapping through changes.
	Map(doc *model.Node, mapping transform.Mappable) Selection
	Content() (model.Fragment, error)
	Replace(tr *Transaction, content model.Fragment) error
	Eq(other Selection) bool
}

// TextSelection is a plain range between two positions.
type TextSelection struct {
	anchor, head int
}

func NewTextSelection(anchor, head int) *TextSelection {
	return &TextSelection{anchor: anchor, head: head}
}

func (s *TextSelection) Anchor() int { return s.anchor }
func (s *TextSelection) Head() int   { return s.head }
func (s *TextSelection) From() int   { return min(s.anchor, s.head) }
func (s *TextSelection) To() int     { return max(s.anchor, s.head) }
func (s *TextSelection) Empty() bool { return s.anchor == s.head }

func (s *TextSelection) Map(doc *model.Node, mapping transform.Mappable) Selection {
	head := mapping.Map(s.head)
	anchor := mapping.Map(s.anchor)
	size := doc.Content().Size()
	return NewTextSelection(min(max(anchor, 0), size), min(max(head, 0), size))
}

func (s *TextSelection) Content() (model.Fragment, error) {
	return model.EmptyFragment, nil
}

func (s *TextSelection) Replace(tr *Transaction, content model.Fragment) error {
	if err := tr.ReplaceWith(s.From(), s.To(), content); err != nil {
		return err
	}
	end := tr.Mapping().MapResult(s.To(), -1).Pos
	tr.SetSelection(NewTextSelection(end, end))
	return nil
}

func (s *TextSelection) Eq(other Selection) bool {
	o, ok := other.(*TextSelection)
	return ok && o.anchor == s.anchor && o.head == s.head
}

func (s *TextSelection) String() string {
	return fmt.Sprintf("text(%d,%d)", s.anchor, s.head)
}

// NodeSelection selects a single node.
type NodeSelection struct {
	pos  int
	node *model.Node
}

// NewNodeSelection selects node starting at pos.
func NewNodeSelection(doc *model.Node, pos int) (*NodeSelection, error) {
	rp, err := doc.Resolve(pos)
	if err != nil {
		return nil, err
	}
	node := rp.NodeAfter()
	if node == nil {
		return nil, fmt.Errorf("%w: no node after %d", model.ErrInvalidPosition, pos)
	}
	return &NodeSelection{pos: pos, node: node}, nil
}

func (s *NodeSelection) Node() *model.Node { return s.node }
func (s *NodeSelection) Anchor() int       { return s.pos }
func (s *NodeSelection) Head() int         { return s.pos + s.node.NodeSize() }
func (s *NodeSelection) From() int         { return s.pos }
func (s *NodeSelection) To() int           { return s.pos + s.node.NodeSize() }

func (s *NodeSelection) Map(doc *model.Node, mapping transform.Mappable) Selection {
	r := mapping.MapResult(s.pos, 1)
	if !r.Deleted {
		if sel, err := NewNodeSelection(doc, r.Pos); err == nil {
			return sel
		}
	}
	return Near(doc, r.Pos, 1)
}

func (s *NodeSelection) Content() (model.Fragment, error) {
	return model.FragmentOf(s.node), nil
}

func (s *NodeSelection) Replace(tr *Transaction, content model.Fragment) error {
	if err := tr.ReplaceWith(s.From(), s.To(), content); err != nil {
		return err
	}
	end := tr.Mapping().MapResult(s.To(), -1).Pos
	tr.SetSelection(Near(tr.Doc(), end, -1))
	return nil
}

func (s *NodeSelection) Eq(other Selection) bool {
	o, ok := other.(*NodeSelection)
	return ok && o.pos == s.pos
}

// FindTextPosition searches from pos in direction dir for a position inside a
// textblock. Returns -1 when there is none.
func FindTextPosition(doc *model.Node, pos, dir int) int {
	size := doc.Content().Size()
	for p := pos; p >= 0 && p <= size; p += dir {
		rp, err := doc.Resolve(p)
		if err != nil {
			return -1
		}
		if rp.Parent().IsTextblock() {
			return p
		}
	}
	return -1
}

// Near returns cursor selection close to pos, looking in bias direction first.
func Near(doc *model.Node, pos, bias int) Selection {
	if bias == 0 {
		bias = 1
	}
	size := doc.Content().Size()
	pos = min(max(pos, 0), size)
	if p := FindTextPosition(doc, pos, bias); p >= 0 {
		return NewTextSelection(p, p)
	}
	if p := FindTextPosition(doc, pos, -bias); p >= 0 {
		return NewTextSelection(p, p)
	}
	return NewTextSelection(pos, pos)
}

// AtStart returns cursor at the first text position of the document.
func AtStart(doc *model.Node) Selection {
	return Near(doc, 0, 1)
}
