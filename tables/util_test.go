package tables

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tabular/model"
)

func TestColSpanAttrs(t *testing.T) {
	attrs := model.Attrs{AttrColspan: 2, AttrRowspan: 1, AttrColwidth: []int{100, 200}}

	removed, err := RemoveColSpan(attrs, 0, 1)
	if err != nil {
		t.Fatalf("RemoveColSpan() error = %v", err)
	}
	if removed.Int(AttrColspan) != 1 || !cmp.Equal(removed.Ints(AttrColwidth), []int{200}) {
		t.Errorf("RemoveColSpan() = %v", removed)
	}
	if attrs.Int(AttrColspan) != 2 || len(attrs.Ints(AttrColwidth)) != 2 {
		t.Errorf("RemoveColSpan() modified its argument: %v", attrs)
	}

	unknown, err := RemoveColSpan(model.Attrs{AttrColspan: 2, AttrColwidth: []int{0, 200}}, 1, 1)
	if err != nil {
		t.Fatalf("RemoveColSpan() error = %v", err)
	}
	if unknown[AttrColwidth] != nil {
		t.Errorf("colwidth without known widths = %v, want nil", unknown[AttrColwidth])
	}

	if _, err := RemoveColSpan(model.Attrs{}, 0, 1); err == nil {
		t.Errorf("RemoveColSpan() without colspan accepted")
	}

	added := AddColSpan(model.Attrs{AttrColspan: 1, AttrColwidth: []int{100}}, 1, 2)
	if added.Int(AttrColspan) != 3 || !cmp.Equal(added.Ints(AttrColwidth), []int{100, 0, 0}) {
		t.Errorf("AddColSpan() = %v", added)
	}
}

func TestCellLookup(t *testing.T) {
	doc := grid2x2(t, nil)
	text, err := doc.Resolve(10)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	cell := CellAround(text)
	if cell == nil || cell.Pos() != 8 {
		t.Fatalf("CellAround(10) = %v, want 8", cell)
	}
	if CellWrapping(text) != cell.NodeAfter() {
		t.Errorf("CellWrapping(10) is not the cell at 8")
	}
	if !PointsAtCell(cell) {
		t.Errorf("PointsAtCell(8) = false")
	}
	next, err := MoveCellForward(cell)
	if err != nil || next.Pos() != 14 {
		t.Errorf("MoveCellForward(8) = %v, %v", next, err)
	}
	r, err := FindCell(cell)
	if err != nil || r != (Rect{Left: 1, Top: 0, Right: 2, Bottom: 1}) {
		t.Errorf("FindCell(8) = %s, %v", r, err)
	}
	if col, err := ColCount(cell); err != nil || col != 1 {
		t.Errorf("ColCount(8) = %d, %v", col, err)
	}
	below, err := NextCell(cell, AxisVert, 1)
	if err != nil || below == nil || below.Pos() != 22 {
		t.Errorf("NextCell(8, vert, 1) = %v, %v", below, err)
	}
	if right, err := NextCell(cell, AxisHoriz, 1); err != nil || right != nil {
		t.Errorf("NextCell(8, horiz, 1) = %v, %v, want table edge", right, err)
	}

	near, err := doc.Resolve(1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if c := CellNear(near); c == nil || c.Pos() != 2 {
		t.Errorf("CellNear(1) = %v, want 2", c)
	}
}

func TestHeaderDetection(t *testing.T) {
	table := buildTable(t, nil,
		[]cellDef{th("H1"), th("H2")},
		[]cellDef{th("A2"), td("B2")},
	)
	tm := mustMap(t, table)
	if ok, err := RowIsHeader(tm, table, 0); err != nil || !ok {
		t.Errorf("RowIsHeader(0) = %v, %v", ok, err)
	}
	if ok, _ := RowIsHeader(tm, table, 1); ok {
		t.Errorf("RowIsHeader(1) = true")
	}
	if ok, err := ColumnIsHeader(tm, table, 0); err != nil || !ok {
		t.Errorf("ColumnIsHeader(0) = %v, %v", ok, err)
	}
	if ok, _ := ColumnIsHeader(tm, table, 1); ok {
		t.Errorf("ColumnIsHeader(1) = true")
	}
}

func TestTableNodeTypes(t *testing.T) {
	if _, err := TableNodeTypes(DefaultSchema()); err != nil {
		t.Fatalf("TableNodeTypes() error = %v", err)
	}
	plain, err := model.NewSchema("doc", model.BasicNodes()...)
	if err != nil {
		t.Fatalf("NewSchema() error = %v", err)
	}
	if _, err := TableNodeTypes(plain); err == nil {
		t.Errorf("TableNodeTypes() of schema without tables succeeded")
	}
}
