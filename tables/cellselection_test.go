package tables

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tabular/editor"
	"tabular/model"
)

func TestCellSelectionRanges(t *testing.T) {
	doc := grid2x2(t, nil)
	sel, err := CellSelectionCreate(doc, 2, 22)
	if err != nil {
		t.Fatalf("CellSelectionCreate() error = %v", err)
	}
	want := []SelectionRange{{3, 7}, {9, 13}, {17, 21}, {23, 27}}
	if diff := cmp.Diff(want, sel.Ranges()); diff != "" {
		t.Errorf("ranges mismatch (-want +got):\n%s", diff)
	}
	if sel.From() != 3 || sel.To() != 27 {
		t.Errorf("From/To = %d/%d, want 3/27", sel.From(), sel.To())
	}
	if sel.String() != "cells(2,22)" {
		t.Errorf("String() = %s", sel)
	}
}

func TestCellSelectionErrors(t *testing.T) {
	doc := grid2x2(t, nil)
	// 4 is inside a paragraph, not before a cell
	if _, err := CellSelectionCreate(doc, 4, 8); !errors.Is(err, ErrCellNotFound) {
		t.Errorf("CellSelectionCreate(4, 8) error = %v, want ErrCellNotFound", err)
	}
	if _, err := CellSelectionCreate(doc, 2, 999); err == nil {
		t.Errorf("CellSelectionCreate(2, 999) accepted position outside document")
	}
}

func TestCellSelectionKind(t *testing.T) {
	doc := grid2x2(t, nil)
	tests := []struct {
		name         string
		anchor, head int
		isCol, isRow bool
	}{
		{"column", 2, 16, true, false},
		{"row", 2, 8, false, true},
		{"whole", 2, 22, true, true},
		{"single", 22, 22, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := CellSelectionCreate(doc, tt.anchor, tt.head)
			if err != nil {
				t.Fatalf("CellSelectionCreate() error = %v", err)
			}
			if sel.IsColSelection() != tt.isCol || sel.IsRowSelection() != tt.isRow {
				t.Errorf("col/row = %v/%v, want %v/%v", sel.IsColSelection(), sel.IsRowSelection(), tt.isCol, tt.isRow)
			}
		})
	}
}

func TestLineSelections(t *testing.T) {
	doc := grid2x2(t, nil)
	a1, err := doc.Resolve(2)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	col, err := ColSelection(a1, nil)
	if err != nil {
		t.Fatalf("ColSelection() error = %v", err)
	}
	if col.Anchor() != 2 || col.Head() != 16 || !col.IsColSelection() {
		t.Errorf("ColSelection() = %s", col)
	}
	row, err := RowSelection(a1, nil)
	if err != nil {
		t.Fatalf("RowSelection() error = %v", err)
	}
	if row.Anchor() != 2 || row.Head() != 8 || !row.IsRowSelection() {
		t.Errorf("RowSelection() = %s", row)
	}
}

func TestCellSelectionContent(t *testing.T) {
	t.Run("column", func(t *testing.T) {
		sel, err := CellSelectionCreate(grid2x2(t, nil), 8, 22)
		if err != nil {
			t.Fatalf("CellSelectionCreate() error = %v", err)
		}
		content, err := sel.Content()
		if err != nil {
			t.Fatalf("Content() error = %v", err)
		}
		if content.ChildCount() != 2 {
			t.Fatalf("content has %d rows", content.ChildCount())
		}
		for i, want := range []string{"B1", "B2"} {
			if got := content.Child(i).TextContent(); got != want {
				t.Errorf("row %d = %q, want %q", i, got, want)
			}
		}
	})
	t.Run("whole table", func(t *testing.T) {
		doc := grid2x2(t, nil)
		sel, err := CellSelectionCreate(doc, 2, 22)
		if err != nil {
			t.Fatalf("CellSelectionCreate() error = %v", err)
		}
		content, err := sel.Content()
		if err != nil {
			t.Fatalf("Content() error = %v", err)
		}
		if content.ChildCount() != 1 || !content.Child(0).Eq(firstTable(t, doc)) {
			t.Errorf("content = %s, want the table", content)
		}
	})
	t.Run("clipped", func(t *testing.T) {
		doc := buildDoc(buildTable(t, nil,
			[]cellDef{span("AA", 2, 1), td("CC")},
			[]cellDef{td("DD"), td("EE"), td("FF")},
		))
		// from CC to EE, AA sticks out on the left
		sel, err := CellSelectionCreate(doc, 8, 22)
		if err != nil {
			t.Fatalf("CellSelectionCreate() error = %v", err)
		}
		content, err := sel.Content()
		if err != nil {
			t.Fatalf("Content() error = %v", err)
		}
		rows := make([][]string, content.ChildCount())
		for i := range content.ChildCount() {
			row := content.Child(i)
			for j := range row.ChildCount() {
				rows[i] = append(rows[i], row.Child(j).TextContent())
			}
		}
		if diff := cmp.Diff([][]string{{"", "CC"}, {"EE", "FF"}}, rows); diff != "" {
			t.Errorf("content mismatch (-want +got):\n%s", diff)
		}
		if got := colspan(content.Child(0).Child(0)); got != 1 {
			t.Errorf("clipped cell colspan = %d, want 1", got)
		}
	})
}

func TestCellSelectionReplace(t *testing.T) {
	doc := grid2x2(t, nil)
	state := cellState(t, doc, 2, 8)
	tr := state.Tr()
	s := DefaultSchema()
	if err := state.Selection.Replace(tr, model.FragmentOf(para(s, "X"))); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	next := state.Apply(tr)
	want := [][]string{{"X", ""}, {"A2", "B2"}}
	if diff := cmp.Diff(want, texts(firstTable(t, next.Doc))); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
	if _, ok := next.Selection.(*editor.TextSelection); !ok {
		t.Errorf("selection after replace = %T", next.Selection)
	}
}

func TestCellSelectionMap(t *testing.T) {
	doc := grid2x2(t, nil)
	state := cellState(t, doc, 2, 8)
	tr := state.Tr()
	if err := tr.Insert(0, para(DefaultSchema(), "")); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	sel, ok := tr.Selection().(*CellSelection)
	if !ok {
		t.Fatalf("selection = %T, want cell selection", tr.Selection())
	}
	if sel.Anchor() != 4 || sel.Head() != 10 {
		t.Errorf("mapped selection = %s, want cells(4,10)", sel)
	}

	// deleting the table leaves a text selection behind
	tr = state.Tr()
	if err := tr.Delete(0, firstTable(t, doc).NodeSize()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := tr.Selection().(*editor.TextSelection); !ok {
		t.Errorf("selection after table removal = %T", tr.Selection())
	}
}

func TestSelectedRect(t *testing.T) {
	rect, err := SelectedRect(cellState(t, grid2x2(t, nil), 22, 8))
	if err != nil {
		t.Fatalf("SelectedRect() error = %v", err)
	}
	if want := (Rect{Left: 1, Top: 0, Right: 2, Bottom: 2}); rect.Rect != want {
		t.Errorf("rect = %s, want %s", rect.Rect, want)
	}
	if rect.TableStart != 1 || rect.TablePos() != 0 {
		t.Errorf("table start = %d", rect.TableStart)
	}
	doc := grid2x2(t, nil)
	if _, err := SelectedRect(cursorState(doc, doc.Content().Size()-1)); !errors.Is(err, ErrNotInTable) {
		t.Errorf("SelectedRect() outside table error = %v, want ErrNotInTable", err)
	}
}

func TestCellSelectionForEachCell(t *testing.T) {
	sel, err := CellSelectionCreate(grid2x2(t, nil), 2, 16)
	if err != nil {
		t.Fatalf("CellSelectionCreate() error = %v", err)
	}
	var (
		got       []string
		positions []int
	)
	if err := sel.ForEachCell(func(cell *model.Node, pos int) {
		got = append(got, cell.TextContent())
		positions = append(positions, pos)
	}); err != nil {
		t.Fatalf("ForEachCell() error = %v", err)
	}
	if diff := cmp.Diff([]string{"A1", "A2"}, got); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 16}, positions); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}
