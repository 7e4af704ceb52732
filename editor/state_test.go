package editor

import (
	"testing"

	"tabular/model"
)

func testDoc(t *testing.T) *model.Node {
	t.Helper()
	s, err := model.NewSchema("doc", model.BasicNodes()...)
	if err != nil {
		t.Fatal(err)
	}
	p := s.Node("paragraph")
	// doc(paragraph("abc"), paragraph("de"))
	return s.Node("doc").Create(nil, model.FragmentOf(
		p.Create(nil, model.FragmentOf(s.Text("abc"))),
		p.Create(nil, model.FragmentOf(s.Text("de"))),
	))
}

func TestNewStateSelection(t *testing.T) {
	doc := testDoc(t)
	st := NewState(doc, nil)
	if st.Selection.Head() != 1 || st.Selection.Anchor() != 1 {
		t.Errorf("default selection = %v, want cursor at 1", st.Selection)
	}
}

func TestTransactionSelectionMapping(t *testing.T) {
	doc := testDoc(t)
	st := NewState(doc, NewTextSelection(7, 8))
	tr := st.Tr()
	if err := tr.Insert(5, st.Schema().Node("paragraph").Create(nil, model.EmptyFragment)); err != nil {
		t.Fatal(err)
	}
	sel := tr.Selection()
	if sel.From() != 9 || sel.To() != 10 {
		t.Errorf("mapped selection = %d-%d, want 9-10", sel.From(), sel.To())
	}
	next := st.Apply(tr)
	if next.Doc.ChildCount() != 3 {
		t.Errorf("applied doc has %d children, want 3", next.Doc.ChildCount())
	}
	if tr.SelectionSet() {
		t.Error("selection was not explicitly set")
	}
}

func TestNodeSelectionMap(t *testing.T) {
	doc := testDoc(t)
	sel, err := NewNodeSelection(doc, 5)
	if err != nil {
		t.Fatal(err)
	}
	st := NewState(doc, sel)

	t.Run("survives_insert", func(t *testing.T) {
		tr := st.Tr()
		if err := tr.Insert(0, st.Schema().Node("paragraph").Create(nil, model.EmptyFragment)); err != nil {
			t.Fatal(err)
		}
		ns, ok := tr.Selection().(*NodeSelection)
		if !ok || ns.From() != 7 {
			t.Errorf("mapped selection = %v, want node selection at 7", tr.Selection())
		}
	})

	t.Run("deleted_node", func(t *testing.T) {
		tr := st.Tr()
		if err := tr.DeleteSelection(); err != nil {
			t.Fatal(err)
		}
		if _, ok := tr.Selection().(*TextSelection); !ok {
			t.Errorf("selection = %T, want text selection", tr.Selection())
		}
		if tr.Doc().ChildCount() != 1 {
			t.Errorf("doc has %d children, want 1", tr.Doc().ChildCount())
		}
	})
}

func TestMeta(t *testing.T) {
	tr := NewState(testDoc(t), nil).Tr()
	if tr.Meta("x") != nil {
		t.Error("unexpected meta")
	}
	tr.SetMeta("x", true)
	if tr.Meta("x") != true {
		t.Error("meta not stored")
	}
}
