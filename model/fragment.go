package model

import (
	"fmt"
	"slices"
	"strings"
)

// Fragment is an immutable sequence of nodes with cached total size.
type Fragment struct {
	nodes []*Node
	size  int
}

var EmptyFragment = Fragment{}

// FragmentOf builds fragment joining adjacent text nodes with equal marks.
func FragmentOf(nodes ...*Node) Fragment {
	var f Fragment
	for _, n := range nodes {
		if n == nil {
			continue
		}
		f = f.appendNode(n)
	}
	return f
}

func (f Fragment) appendNode(n *Node) Fragment {
	res := Fragment{nodes: make([]*Node, 0, len(f.nodes)+1), size: f.size + n.NodeSize()}
	res.nodes = append(res.nodes, f.nodes...)
	if last := len(res.nodes) - 1; last >= 0 && res.nodes[last].canJoin(n) {
		res.nodes[last] = res.nodes[last].withText(res.nodes[last].text + n.text)
		return res
	}
	res.nodes = append(res.nodes, n)
	return res
}

func (f Fragment) Size() int       { return f.size }
func (f Fragment) ChildCount() int { return len(f.nodes) }

func (f Fragment) Child(i int) *Node {
	return f.nodes[i]
}

func (f Fragment) MaybeChild(i int) *Node {
	if i < 0 || i >= len(f.nodes) {
		return nil
	}
	return f.nodes[i]
}

func (f Fragment) FirstChild() *Node { return f.MaybeChild(0) }
func (f Fragment) LastChild() *Node  { return f.MaybeChild(len(f.nodes) - 1) }

// Nodes returns a copy of the child list.
func (f Fragment) Nodes() []*Node {
	return slices.Clone(f.nodes)
}

// Append concatenates fragments.
func (f Fragment) Append(other Fragment) Fragment {
	if other.size == 0 && len(other.nodes) == 0 {
		return f
	}
	if f.size == 0 && len(f.nodes) == 0 {
		return other
	}
	res := Fragment{nodes: make([]*Node, 0, len(f.nodes)+len(other.nodes)), size: f.size + other.size}
	res.nodes = append(res.nodes, f.nodes...)
	rest := other.nodes
	if last := len(res.nodes) - 1; last >= 0 && res.nodes[last].canJoin(rest[0]) {
		res.nodes[last] = res.nodes[last].withText(res.nodes[last].text + rest[0].text)
		rest = rest[1:]
	}
	res.nodes = append(res.nodes, rest...)
	return res
}

// ReplaceChild returns fragment with i-th child replaced.
func (f Fragment) ReplaceChild(i int, n *Node) Fragment {
	cur := f.nodes[i]
	if cur == n {
		return f
	}
	res := Fragment{nodes: slices.Clone(f.nodes), size: f.size - cur.NodeSize() + n.NodeSize()}
	res.nodes[i] = n
	return res
}

// Cut returns part of the fragment between from and to, cutting into nodes
// at the boundaries.
func (f Fragment) Cut(from, to int) Fragment {
	if from == 0 && to == f.size {
		return f
	}
	var res []*Node
	size := 0
	if to > from {
		for i, pos := 0, 0; pos < to && i < len(f.nodes); i++ {
			child := f.nodes[i]
			end := pos + child.NodeSize()
			if end > from {
				if pos < from || end > to {
					if child.IsText() {
						child = child.Cut(max(0, from-pos), min(len(child.runes()), to-pos))
					} else {
						child = child.Cut(max(0, from-pos-1), min(child.content.size, to-pos-1))
					}
				}
				res = append(res, child)
				size += child.NodeSize()
			}
			pos = end
		}
	}
	return Fragment{nodes: res, size: size}
}

// FindIndex returns index of the child containing pos and offset where that
// child starts. Position at the end of a child points past it.
func (f Fragment) FindIndex(pos int) (index, offset int) {
	if pos == 0 {
		return 0, 0
	}
	if pos == f.size {
		return len(f.nodes), pos
	}
	if pos > f.size || pos < 0 {
		panic(fmt.Sprintf("position %d outside of fragment of size %d", pos, f.size))
	}
	for i, cur := 0, 0; ; i++ {
		end := cur + f.nodes[i].NodeSize()
		if end >= pos {
			if end == pos {
				return i + 1, end
			}
			return i, cur
		}
		cur = end
	}
}

// ForEach calls fn for every child with its offset.
func (f Fragment) ForEach(fn func(node *Node, offset, index int)) {
	for i, pos := 0, 0; i < len(f.nodes); i++ {
		fn(f.nodes[i], pos, i)
		pos += f.nodes[i].NodeSize()
	}
}

// NodesBetween calls fn for every descendant overlapping from-to. Returning
// false from fn skips node children.
func (f Fragment) NodesBetween(from, to int, fn func(node *Node, pos int, parent *Node, index int) bool, nodeStart int, parent *Node) {
	for i, pos := 0, 0; pos < to && i < len(f.nodes); i++ {
		child := f.nodes[i]
		end := pos + child.NodeSize()
		if end > from && fn(child, nodeStart+pos, parent, i) && child.content.size > 0 {
			start := pos + 1
			child.content.NodesBetween(max(0, from-start), min(child.content.size, to-start), fn, nodeStart+start, child)
		}
		pos = end
	}
}

func (f Fragment) Eq(other Fragment) bool {
	if len(f.nodes) != len(other.nodes) || f.size != other.size {
		return false
	}
	for i, n := range f.nodes {
		if !n.Eq(other.nodes[i]) {
			return false
		}
	}
	return true
}

func (f Fragment) String() string {
	parts := make([]string, len(f.nodes))
	for i, n := range f.nodes {
		parts[i] = n.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
