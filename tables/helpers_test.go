package tables

import (
	"testing"

	"tabular/editor"
	"tabular/model"
)

// cellDef describes a test cell: text of its single paragraph and attributes.
type cellDef struct {
	text   string
	attrs  model.Attrs
	header bool
}

func td(text string) cellDef { return cellDef{text: text} }

func th(text string) cellDef { return cellDef{text: text, header: true} }

func span(text string, cols, rows int) cellDef {
	return cellDef{text: text, attrs: model.Attrs{AttrColspan: cols, AttrRowspan: rows}}
}

func (c cellDef) with(name string, value any) cellDef {
	c.attrs = c.attrs.With(name, value)
	return c
}

func para(s *model.Schema, text string) *model.Node {
	if text == "" {
		return s.Node("paragraph").Create(nil, model.EmptyFragment)
	}
	return s.Node("paragraph").Create(nil, model.FragmentOf(s.Text(text)))
}

func buildTable(t *testing.T, tableAttrs model.Attrs, rows ...[]cellDef) *model.Node {
	t.Helper()
	s := DefaultSchema()
	types, err := TableNodeTypes(s)
	if err != nil {
		t.Fatalf("TableNodeTypes() error = %v", err)
	}
	rowNodes := make([]*model.Node, 0, len(rows))
	for _, row := range rows {
		cells := make([]*model.Node, 0, len(row))
		for _, c := range row {
			typ := types.Cell
			if c.header {
				typ = types.HeaderCell
			}
			cell, err := typ.CreateChecked(c.attrs, model.FragmentOf(para(s, c.text)))
			if err != nil {
				t.Fatalf("CreateChecked() error = %v", err)
			}
			cells = append(cells, cell)
		}
		rowNodes = append(rowNodes, types.Row.Create(nil, model.FragmentOf(cells...)))
	}
	table, err := types.Table.CreateChecked(tableAttrs, model.FragmentOf(rowNodes...))
	if err != nil {
		t.Fatalf("CreateChecked() error = %v", err)
	}
	return table
}

// buildDoc puts table at position 0 followed by a paragraph.
func buildDoc(table *model.Node) *model.Node {
	s := DefaultSchema()
	return s.Node("doc").Create(nil, model.FragmentOf(table, para(s, "end")))
}

// grid2x2 is doc(table(tr(A1, B1), tr(A2, B2)), p("end")). Cells start at
// 2, 8, 16 and 22, text of A1 at 4.
func grid2x2(t *testing.T, tableAttrs model.Attrs) *model.Node {
	t.Helper()
	return buildDoc(buildTable(t, tableAttrs,
		[]cellDef{td("A1"), td("B1")},
		[]cellDef{td("A2"), td("B2")},
	))
}

func cursorState(doc *model.Node, pos int) *editor.State {
	return editor.NewState(doc, editor.NewTextSelection(pos, pos))
}

func cellState(t *testing.T, doc *model.Node, anchor, head int) *editor.State {
	t.Helper()
	sel, err := CellSelectionCreate(doc, anchor, head)
	if err != nil {
		t.Fatalf("CellSelectionCreate(%d, %d) error = %v", anchor, head, err)
	}
	return editor.NewState(doc, sel)
}

// run executes command expecting it to apply and returns resulting state.
func run(t *testing.T, cmd Command, state *editor.State) *editor.State {
	t.Helper()
	var tr *editor.Transaction
	ok, err := cmd(state, func(d *editor.Transaction) { tr = d })
	if err != nil {
		t.Fatalf("command error = %v", err)
	}
	if !ok {
		t.Fatalf("command declined")
	}
	if tr == nil {
		t.Fatalf("command did not dispatch")
	}
	return state.Apply(tr)
}

func firstTable(t *testing.T, doc *model.Node) *model.Node {
	t.Helper()
	table := doc.FirstChild()
	if table == nil || table.Type().TableRole() != model.RoleTable {
		t.Fatalf("document does not start with a table: %s", doc)
	}
	return table
}

// texts returns text content of every cell grouped by rows.
func texts(table *model.Node) [][]string {
	res := make([][]string, table.ChildCount())
	for i := range table.ChildCount() {
		row := table.Child(i)
		res[i] = make([]string, row.ChildCount())
		for j := range row.ChildCount() {
			res[i][j] = row.Child(j).TextContent()
		}
	}
	return res
}

func mustMap(t *testing.T, table *model.Node) *TableMap {
	t.Helper()
	tm, err := ComputeMap(table)
	if err != nil {
		t.Fatalf("ComputeMap() error = %v", err)
	}
	return tm
}
