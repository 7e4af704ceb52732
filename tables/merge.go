package tables

import (
	"errors"

	"tabular/editor"
	"tabular/model"
)

// errIllegalMerge aborts merge cleanup when the table can not be kept
// consistent, the merge is declined as a whole.
var errIllegalMerge = errors.New("merge leaves inconsistent table")

// MergeCells merges selected cells into the top-left one. Declined unless
// the selection covers more than one cell and no cell crosses its border.
// Rows left empty are dropped and columns left without own cells are
// coalesced.
func MergeCells(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
	sel, ok := state.Selection.(*CellSelection)
	if !ok || sel.AnchorCell().Pos() == sel.HeadCell().Pos() {
		return false, nil
	}
	rect, err := SelectedRect(state)
	if err != nil {
		return false, err
	}
	tm := rect.Map
	if CellsOverlapRectangle(tm, rect.Rect) || len(tm.CellsInRect(rect.Rect)) < 2 {
		return false, nil
	}

	tr := state.Tr()
	content := model.EmptyFragment
	var merged *model.Node
	mergedPos := 0
	seen := make(map[int]bool)
	for row := rect.Top; row < rect.Bottom; row++ {
		for col := rect.Left; col < rect.Right; col++ {
			pos := tm.Map[row*tm.Width+col]
			if pos == 0 || seen[pos] {
				continue
			}
			seen[pos] = true
			cell := rect.Table.NodeAt(pos)
			if merged == nil {
				merged, mergedPos = cell, pos
				continue
			}
			if !isEmptyCell(cell) {
				content = content.Append(cell.Content())
			}
			at := tr.Mapping().Map(pos + rect.TableStart)
			if err := tr.Delete(at, at+cell.NodeSize()); err != nil {
				return false, err
			}
		}
	}
	if merged == nil {
		return false, nil
	}
	attrs := AddColSpan(merged.Attrs(), colspan(merged), rect.Width()-colspan(merged)).With(AttrRowspan, rect.Height())
	if err := tr.SetNodeMarkup(mergedPos+rect.TableStart, nil, attrs); err != nil {
		return false, err
	}
	if content.Size() > 0 {
		end := mergedPos + 1 + merged.Content().Size()
		start := end
		if isEmptyCell(merged) {
			start = mergedPos + 1
		}
		if err := tr.ReplaceWith(start+rect.TableStart, end+rect.TableStart, content); err != nil {
			return false, err
		}
	}

	tablePos := rect.TablePos()
	if err := removeEmptyRows(tr, tablePos); err != nil {
		if errors.Is(err, errIllegalMerge) {
			return false, nil
		}
		return false, err
	}
	if err := removeEmptyColumns(tr, tablePos); err != nil {
		if errors.Is(err, errIllegalMerge) {
			return false, nil
		}
		return false, err
	}

	cell, err := tr.Doc().Resolve(tr.Mapping().Map(mergedPos + rect.TableStart))
	if err != nil {
		return false, err
	}
	cs, err := NewCellSelection(cell, nil)
	if err != nil {
		return false, err
	}
	tr.SetSelection(cs)
	if dispatch != nil {
		dispatch(tr)
	}
	return true, nil
}

func tableAt(tr *editor.Transaction, tablePos int) (*model.Node, *TableMap, error) {
	table := tr.Doc().NodeAt(tablePos)
	if table == nil || table.Type().TableRole() != model.RoleTable {
		return nil, nil, ErrNotTable
	}
	tm, err := GetMap(table)
	if err != nil {
		return nil, nil, err
	}
	return table, tm, nil
}

// removeEmptyRows drops rows without cells one at a time, shrinking cells
// which span over them.
func removeEmptyRows(tr *editor.Transaction, tablePos int) error {
	for {
		table, tm, err := tableAt(tr, tablePos)
		if err != nil {
			return err
		}
		empty := -1
		for i := range table.ChildCount() {
			if table.Child(i).ChildCount() == 0 {
				empty = i
				break
			}
		}
		if empty < 0 {
			return nil
		}
		if table.ChildCount() == 1 {
			return errIllegalMerge
		}
		tableStart := tablePos + 1
		seen := make(map[int]bool)
		for col := range tm.Width {
			pos := tm.Map[empty*tm.Width+col]
			if pos == 0 || seen[pos] {
				continue
			}
			seen[pos] = true
			cell := table.NodeAt(pos)
			span := rowspan(cell) - 1
			if span < 1 {
				return errIllegalMerge
			}
			if err := tr.SetNodeMarkup(tableStart+pos, nil, cell.Attrs().With(AttrRowspan, span)); err != nil {
				return err
			}
		}
		rowPos := tableStart
		for i := range empty {
			rowPos += table.Child(i).NodeSize()
		}
		if err := tr.Delete(rowPos, rowPos+table.Child(empty).NodeSize()); err != nil {
			return err
		}
	}
}

// removeEmptyColumns coalesces grid columns which are covered by the same
// cells as their left neighbour in every row.
func removeEmptyColumns(tr *editor.Transaction, tablePos int) error {
	for {
		table, tm, err := tableAt(tr, tablePos)
		if err != nil {
			return err
		}
		dup := -1
		for col := 1; col < tm.Width && dup < 0; col++ {
			same := true
			for row := range tm.Height {
				if tm.Map[row*tm.Width+col] != tm.Map[row*tm.Width+col-1] {
					same = false
					break
				}
			}
			if same {
				dup = col
			}
		}
		if dup < 0 {
			break
		}
		tableStart := tablePos + 1
		seen := make(map[int]bool)
		for row := range tm.Height {
			pos := tm.Map[row*tm.Width+dup]
			if pos == 0 || seen[pos] {
				continue
			}
			seen[pos] = true
			cell := table.NodeAt(pos)
			left, err := tm.ColCount(pos)
			if err != nil {
				return err
			}
			attrs, err := foldColwidth(cell.Attrs(), dup-left)
			if err != nil {
				return err
			}
			if err := tr.SetNodeMarkup(tableStart+pos, nil, attrs); err != nil {
				return err
			}
		}
		if widths := table.Attrs().Floats(AttrColwidths); len(widths) == tm.Width {
			widths[dup-1] += widths[dup]
			updated, err := RemoveColumnWidths(widths, dup, dup+1, currentWidthPolicy())
			if err != nil {
				return err
			}
			if err := tr.SetNodeAttribute(tablePos, AttrColwidths, updated); err != nil {
				return err
			}
		}
	}
	_, tm, err := tableAt(tr, tablePos)
	if err != nil {
		return err
	}
	if tm.HasProblems() {
		return errIllegalMerge
	}
	return nil
}

// foldColwidth drops span column index adding its pixel width to the
// previous one.
func foldColwidth(attrs model.Attrs, index int) (model.Attrs, error) {
	if cw := attrs.Ints(AttrColwidth); index > 0 && index < len(cw) && cw[index-1] > 0 && cw[index] > 0 {
		cw[index-1] += cw[index]
		attrs = attrs.With(AttrColwidth, cw)
	}
	return RemoveColSpan(attrs, index, 1)
}
