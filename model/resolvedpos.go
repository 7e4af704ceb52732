package model

import "fmt"

type pathEntry struct {
	node   *Node
	index  int
	offset int
}

// ResolvedPos is a position with information about its ancestors. Depth 0 is
// the root.
type ResolvedPos struct {
	pos          int
	path         []pathEntry
	parentOffset int
}

// Resolve resolves document position. Position inside a text node resolves to
// its parent textblock.
func (n *Node) Resolve(pos int) (*ResolvedPos, error) {
	if pos < 0 || pos > n.content.size {
		return nil, fmt.Errorf("%w: %d out of range 0-%d", ErrInvalidPosition, pos, n.content.size)
	}
	var path []pathEntry
	start, parentOffset := 0, pos
	for node := n; ; {
		index, offset := node.content.FindIndex(parentOffset)
		rem := parentOffset - offset
		path = append(path, pathEntry{node: node, index: index, offset: start + offset})
		if rem == 0 {
			break
		}
		node = node.Child(index)
		if node.IsText() {
			break
		}
		parentOffset = rem - 1
		start += offset + 1
	}
	return &ResolvedPos{pos: pos, path: path, parentOffset: parentOffset}, nil
}

func (r *ResolvedPos) Pos() int          { return r.pos }
func (r *ResolvedPos) Depth() int        { return len(r.path) - 1 }
func (r *ResolvedPos) ParentOffset() int { return r.parentOffset }
func (r *ResolvedPos) Parent() *Node     { return r.path[len(r.path)-1].node }
func (r *ResolvedPos) Doc() *Node        { return r.path[0].node }

// ResolveDepth turns negative depth into one counted from the position depth.
func (r *ResolvedPos) ResolveDepth(d int) int {
	if d < 0 {
		return r.Depth() + d
	}
	return d
}

// Node returns ancestor at depth, negative values count up from Parent.
func (r *ResolvedPos) Node(d int) *Node {
	return r.path[r.ResolveDepth(d)].node
}

// Index returns index of the child the position points into at depth.
func (r *ResolvedPos) Index(d int) int {
	return r.path[r.ResolveDepth(d)].index
}

func (r *ResolvedPos) IndexAfter(d int) int {
	d = r.ResolveDepth(d)
	if d == r.Depth() && r.TextOffset() == 0 {
		return r.Index(d)
	}
	return r.Index(d) + 1
}

// Start is the position at the start of content of the ancestor at depth.
func (r *ResolvedPos) Start(d int) int {
	d = r.ResolveDepth(d)
	if d == 0 {
		return 0
	}
	return r.path[d-1].offset + 1
}

func (r *ResolvedPos) End(d int) int {
	d = r.ResolveDepth(d)
	return r.Start(d) + r.path[d].node.content.size
}

// Before is the position directly before the ancestor at depth.
func (r *ResolvedPos) Before(d int) int {
	d = r.ResolveDepth(d)
	if d <= 0 {
		panic("there is no position before the top-level node")
	}
	return r.path[d-1].offset
}

func (r *ResolvedPos) After(d int) int {
	d = r.ResolveDepth(d)
	if d <= 0 {
		panic("there is no position after the top-level node")
	}
	return r.path[d-1].offset + r.path[d].node.NodeSize()
}

// TextOffset is the distance into a text node when position points inside it.
func (r *ResolvedPos) TextOffset() int {
	return r.pos - r.path[len(r.path)-1].offset
}

// NodeAfter returns the node directly after position, text nodes are cut.
func (r *ResolvedPos) NodeAfter() *Node {
	parent := r.Parent()
	index := r.Index(r.Depth())
	if index == parent.ChildCount() {
		return nil
	}
	child := parent.Child(index)
	if off := r.TextOffset(); off > 0 {
		return child.Cut(off, child.NodeSize())
	}
	return child
}

// NodeBefore returns the node directly before position, text nodes are cut.
func (r *ResolvedPos) NodeBefore() *Node {
	parent := r.Parent()
	index := r.Index(r.Depth())
	if off := r.TextOffset(); off > 0 {
		return parent.Child(index).Cut(0, off)
	}
	if index == 0 {
		return nil
	}
	return parent.Child(index - 1)
}

// SharedDepth returns the depth up to which this position and pos share
// ancestors.
func (r *ResolvedPos) SharedDepth(pos int) int {
	for d := r.Depth(); d > 0; d-- {
		if r.Start(d) <= pos && r.End(d) >= pos {
			return d
		}
	}
	return 0
}

func (r *ResolvedPos) String() string {
	s := ""
	for i := 1; i <= r.Depth(); i++ {
		if s != "" {
			s += "/"
		}
		s += fmt.Sprintf("%s_%d", r.Node(i).Type().Name, r.Index(i-1))
	}
	return fmt.Sprintf("%s:%d", s, r.parentOffset)
}
