package transform

import (
	"tabular/model"
)

// Transform accumulates steps applied to a document.
type Transform struct {
	doc     *model.Node
	docs    []*model.Node
	steps   []Step
	mapping Mapping
}

func New(doc *model.Node) *Transform {
	return &Transform{doc: doc}
}

// Doc returns the current document.
func (t *Transform) Doc() *model.Node { return t.doc }

// Before returns the document before the first step.
func (t *Transform) Before() *model.Node {
	if len(t.docs) > 0 {
		return t.docs[0]
	}
	return t.doc
}

func (t *Transform) Steps() []Step       { return append([]Step(nil), t.steps...) }
func (t *Transform) StepCount() int      { return len(t.steps) }
func (t *Transform) Mapping() *Mapping   { return &t.mapping }
func (t *Transform) DocChanged() bool    { return len(t.steps) > 0 }

// Step applies step to the current document. Failed step leaves transform
// unchanged.
func (t *Transform) Step(s Step) error {
	doc, err := s.Apply(t.doc)
	if err != nil {
		return err
	}
	t.docs = append(t.docs, t.doc)
	t.steps = append(t.steps, s)
	t.mapping.AppendMap(s.Map())
	t.doc = doc
	return nil
}

func (t *Transform) ReplaceWith(from, to int, content model.Fragment) error {
	if from == to && content.Size() == 0 {
		return nil
	}
	return t.Step(ReplaceStep{From: from, To: to, Content: content})
}

func (t *Transform) Insert(pos int, nodes ...*model.Node) error {
	return t.ReplaceWith(pos, pos, model.FragmentOf(nodes...))
}

func (t *Transform) Delete(from, to int) error {
	return t.ReplaceWith(from, to, model.EmptyFragment)
}

// SetNodeMarkup changes type and attributes of the node at pos, nil typ keeps
// node type.
func (t *Transform) SetNodeMarkup(pos int, typ *model.NodeType, attrs model.Attrs) error {
	return t.Step(AttrsStep{Pos: pos, Type: typ, Attrs: attrs})
}

// SetNodeAttribute changes a single attribute of the node at pos.
func (t *Transform) SetNodeAttribute(pos int, name string, value any) error {
	node := t.doc.NodeAt(pos)
	if node == nil {
		return AttrsStep{Pos: pos}.missing()
	}
	return t.SetNodeMarkup(pos, nil, node.Attrs().With(name, value))
}
