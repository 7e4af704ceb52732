package tables

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tabular/editor"
	"tabular/model"
)

func TestMergeCellsRow(t *testing.T) {
	state := run(t, MergeCells, cellState(t, grid2x2(t, nil), 2, 8))
	table := firstTable(t, state.Doc)
	tm := mustMap(t, table)
	if diff := cmp.Diff([]int{1, 1, 13, 19}, tm.Map); diff != "" {
		t.Errorf("map mismatch (-want +got):\n%s", diff)
	}
	merged := table.Child(0).Child(0)
	if colspan(merged) != 2 || rowspan(merged) != 1 {
		t.Errorf("merged cell spans %dx%d", colspan(merged), rowspan(merged))
	}
	if merged.ChildCount() != 2 || merged.TextContent() != "A1B1" {
		t.Errorf("merged content = %s", merged)
	}
	sel, ok := state.Selection.(*CellSelection)
	if !ok || sel.Anchor() != 2 || sel.Head() != 2 {
		t.Errorf("selection after merge = %v", state.Selection)
	}
}

func TestMergeCellsWholeTable(t *testing.T) {
	state := run(t, MergeCells, cellState(t, grid2x2(t, nil), 2, 22))
	table := firstTable(t, state.Doc)
	tm := mustMap(t, table)
	if tm.Width != 1 || tm.Height != 1 || tm.HasProblems() {
		t.Fatalf("map = %+v", tm)
	}
	cell := table.Child(0).Child(0)
	if got := cell.TextContent(); got != "A1B1A2B2" {
		t.Errorf("merged text = %q", got)
	}
	if colspan(cell) != 1 || rowspan(cell) != 1 {
		t.Errorf("merged cell spans %dx%d", colspan(cell), rowspan(cell))
	}
}

func TestMergeCellsDeclined(t *testing.T) {
	tests := []struct {
		name  string
		state func(t *testing.T) *editor.State
	}{
		{"text selection", func(t *testing.T) *editor.State { return cursorState(grid2x2(t, nil), 4) }},
		{"single cell", func(t *testing.T) *editor.State { return cellState(t, grid2x2(t, nil), 8, 8) }},
		{"overlapping cell", func(t *testing.T) *editor.State {
			// EE sticks out right of the rectangle between BB and DD
			doc := buildDoc(buildTable(t, nil,
				[]cellDef{td("AA"), td("BB"), td("CC")},
				[]cellDef{td("DD"), span("EE", 2, 1)},
			))
			return cellState(t, doc, 8, 22)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := MergeCells(tt.state(t), func(*editor.Transaction) { t.Errorf("dispatched") })
			if ok || err != nil {
				t.Errorf("MergeCells() = %v, %v, want declined", ok, err)
			}
		})
	}
}

func TestMergeSplitRoundTrip(t *testing.T) {
	rows := make([][]cellDef, 3)
	for i := range rows {
		rows[i] = []cellDef{td(""), td(""), td("")}
	}
	doc := buildDoc(buildTable(t, nil, rows...))
	// empty cells are 4 wide: top-left one at 2, middle one at 20
	merged := run(t, MergeCells, cellState(t, doc, 2, 20))
	mergedTable := firstTable(t, merged.Doc)
	if cell := mergedTable.Child(0).Child(0); colspan(cell) != 2 || rowspan(cell) != 2 {
		t.Fatalf("merged cell spans %dx%d", colspan(cell), rowspan(cell))
	}
	if tm := mustMap(t, mergedTable); tm.HasProblems() {
		t.Fatalf("problems after merge: %v", tm.Problems)
	}

	split := run(t, SplitCell, merged)
	if !firstTable(t, split.Doc).Eq(firstTable(t, doc)) {
		t.Errorf("split did not restore table:\n got %s\nwant %s", firstTable(t, split.Doc), firstTable(t, doc))
	}
	if sel, ok := split.Selection.(*CellSelection); !ok || len(sel.Ranges()) != 4 {
		t.Errorf("selection after split = %v", split.Selection)
	}
}

func TestSplitCellColwidth(t *testing.T) {
	doc := buildDoc(buildTable(t, nil,
		[]cellDef{span("M", 2, 1).with(AttrColwidth, []int{100, 200})},
	))
	// text selection inside the cell
	state := run(t, SplitCell, cursorState(doc, 4))
	row := firstTable(t, state.Doc).Child(0)
	if row.ChildCount() != 2 {
		t.Fatalf("row has %d cells, want 2", row.ChildCount())
	}
	want := [][]int{{100}, {200}}
	for i, cw := range want {
		cell := row.Child(i)
		if diff := cmp.Diff(cw, cell.Attrs().Ints(AttrColwidth)); diff != "" {
			t.Errorf("cell %d colwidth mismatch (-want +got):\n%s", i, diff)
		}
		if colspan(cell) != 1 {
			t.Errorf("cell %d colspan = %d", i, colspan(cell))
		}
	}
	if row.Child(0).TextContent() != "M" || row.Child(1).TextContent() != "" {
		t.Errorf("content after split = %s", row)
	}
}

func TestSplitCellWithType(t *testing.T) {
	doc := buildDoc(buildTable(t, nil,
		[]cellDef{span("M", 2, 1)},
		[]cellDef{td("A"), td("B")},
	))
	types, err := TableNodeTypes(DefaultSchema())
	if err != nil {
		t.Fatalf("TableNodeTypes() error = %v", err)
	}
	header := SplitCellWithType(func(_ *model.Node, row, _ int) *model.NodeType {
		if row == 0 {
			return types.HeaderCell
		}
		return types.Cell
	})
	state := run(t, header, cursorState(doc, 4))
	row := firstTable(t, state.Doc).Child(0)
	for i := range row.ChildCount() {
		if row.Child(i).Type() != types.HeaderCell {
			t.Errorf("cell %d is %s", i, row.Child(i).Type().Name)
		}
	}
	if ok, err := SplitCell(cursorState(doc, 4+7), nil); ok || err != nil {
		t.Errorf("SplitCell() of unspanned cell = %v, %v, want declined", ok, err)
	}
}

func TestCellsOverlapRectangle(t *testing.T) {
	// A spans columns 0-1 of the first row
	tm := mustMap(t, buildTable(t, nil,
		[]cellDef{span("A", 2, 1), td("C")},
		[]cellDef{td("D"), td("E"), td("F")},
	))
	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"span inside", Rect{Left: 0, Top: 0, Right: 2, Bottom: 2}, false},
		{"cuts span", Rect{Left: 1, Top: 0, Right: 3, Bottom: 1}, true},
		{"below span", Rect{Left: 1, Top: 1, Right: 2, Bottom: 2}, false},
		{"whole", Rect{Left: 0, Top: 0, Right: 3, Bottom: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellsOverlapRectangle(tm, tt.rect); got != tt.want {
				t.Errorf("CellsOverlapRectangle(%+v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
}

func TestMergeCellsAbortsOnBrokenTable(t *testing.T) {
	// last row is one cell short, merging AA and BB can not fix it
	doc := buildDoc(buildTable(t, nil,
		[]cellDef{td("AA"), td("BB")},
		[]cellDef{td("CC"), td("DD")},
		[]cellDef{td("EE")},
	))
	ok, err := MergeCells(cellState(t, doc, 2, 8), func(*editor.Transaction) { t.Errorf("dispatched") })
	if ok || err != nil {
		t.Errorf("MergeCells() = %v, %v, want declined", ok, err)
	}

	var tr *editor.Transaction
	if ok, err := MergeCells(cellState(t, grid2x2(t, nil), 2, 8), func(d *editor.Transaction) { tr = d }); !ok || err != nil || tr == nil {
		t.Errorf("MergeCells() on consistent table = %v, %v", ok, err)
	}
}
