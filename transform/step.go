package transform

import (
	"errors"
	"fmt"

	"tabular/model"
)

var ErrStepFailed = errors.New("step failed")

// Step is a single atomic document change.
type Step interface {
	Apply(doc *model.Node) (*model.Node, error)
	Map() StepMap
}

// ReplaceStep replaces range From-To with closed content. Both ends must be in
// the same parent node.
type ReplaceStep struct {
	From, To int
	Content  model.Fragment
}

func (s ReplaceStep) Apply(doc *model.Node) (*model.Node, error) {
	res, err := doc.Replace(s.From, s.To, s.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: replace %d-%d: %w", ErrStepFailed, s.From, s.To, err)
	}
	return res, nil
}

func (s ReplaceStep) Map() StepMap {
	return NewStepMap(s.From, s.To-s.From, s.Content.Size())
}

// AttrsStep changes type and attributes of the node at Pos. Nil Type keeps
// the current one.
type AttrsStep struct {
	Pos   int
	Type  *model.NodeType
	Attrs model.Attrs
}

func (s AttrsStep) Apply(doc *model.Node) (*model.Node, error) {
	node := doc.NodeAt(s.Pos)
	if node == nil {
		return nil, s.missing()
	}
	updated, err := node.WithMarkup(s.Type, s.Attrs)
	if err != nil {
		return nil, fmt.Errorf("%w: node at %d: %w", ErrStepFailed, s.Pos, err)
	}
	res, err := doc.Replace(s.Pos, s.Pos+node.NodeSize(), model.FragmentOf(updated))
	if err != nil {
		return nil, fmt.Errorf("%w: node at %d: %w", ErrStepFailed, s.Pos, err)
	}
	return res, nil
}

func (s AttrsStep) missing() error {
	return fmt.Errorf("%w: no node at %d", ErrStepFailed, s.Pos)
}

func (s AttrsStep) Map() StepMap {
	return EmptyStepMap
}
