package editor

import (
	"tabular/model"
	"tabular/transform"
)

// State is an immutable document with selection.
type State struct {
	Doc       *model.Node
	Selection Selection
}

// NewState creates state, nil selection puts cursor at the document start.
func NewState(doc *model.Node, sel Selection) *State {
	if sel == nil {
		sel = AtStart(doc)
	}
	return &State{Doc: doc, Selection: sel}
}

func (s *State) Schema() *model.Schema {
	return s.Doc.Type().Schema()
}

// Tr starts a transaction on this state.
func (s *State) Tr() *Transaction {
	return &Transaction{
		Transform: transform.New(s.Doc),
		selection: s.Selection,
	}
}

// Apply returns state produced by transaction.
func (s *State) Apply(tr *Transaction) *State {
	return &State{Doc: tr.Doc(), Selection: tr.Selection()}
}

// Transaction is a transform which also tracks selection and metadata.
type Transaction struct {
	*transform.Transform
	selection    Selection
	selectionFor int
	selectionSet bool
	meta         map[string]any
}

// Selection returns current selection mapped through steps added after it
// was set.
func (tr *Transaction) Selection() Selection {
	if n := tr.StepCount(); tr.selectionFor < n {
		tr.selection = tr.selection.Map(tr.Doc(), tr.Mapping().Slice(tr.selectionFor))
		tr.selectionFor = n
	}
	return tr.selection
}

func (tr *Transaction) SetSelection(sel Selection) *Transaction {
	tr.selection = sel
	tr.selectionFor = tr.StepCount()
	tr.selectionSet = true
	return tr
}

func (tr *Transaction) SelectionSet() bool {
	return tr.selectionSet
}

func (tr *Transaction) SetMeta(key string, value any) *Transaction {
	if tr.meta == nil {
		tr.meta = make(map[string]any)
	}
	tr.meta[key] = value
	return tr
}

func (tr *Transaction) Meta(key string) any {
	return tr.meta[key]
}

// DeleteSelection removes selected content.
func (tr *Transaction) DeleteSelection() error {
	return tr.Selection().Replace(tr, model.EmptyFragment)
}
