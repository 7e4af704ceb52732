package tables

import (
	"fmt"

	"tabular/editor"
	"tabular/model"
)

// Command checks whether an edit applies to state and, when dispatch is not
// nil, builds the transaction and passes it on. False means the edit was
// declined, error means the table and its map do not agree or an argument is
// invalid. Nothing is dispatched in both cases.
type Command func(state *editor.State, dispatch func(tr *editor.Transaction)) (bool, error)

// CellsOverlapRectangle reports whether any cell crosses the rectangle border.
func CellsOverlapRectangle(tm *TableMap, rect Rect) bool {
	indexTop := rect.Top*tm.Width + rect.Left
	indexLeft := indexTop
	indexBottom := (rect.Bottom-1)*tm.Width + rect.Left
	indexRight := indexTop + (rect.Right - rect.Left - 1)
	for i := rect.Top; i < rect.Bottom; i++ {
		if (rect.Left > 0 && tm.Map[indexLeft] == tm.Map[indexLeft-1]) ||
			(rect.Right < tm.Width && tm.Map[indexRight] == tm.Map[indexRight+1]) {
			return true
		}
		indexLeft += tm.Width
		indexRight += tm.Width
	}
	for i := rect.Left; i < rect.Right; i++ {
		if (rect.Top > 0 && tm.Map[indexTop] == tm.Map[indexTop-tm.Width]) ||
			(rect.Bottom < tm.Height && tm.Map[indexBottom] == tm.Map[indexBottom+tm.Width]) {
			return true
		}
		indexTop++
		indexBottom++
	}
	return false
}

// IsColSelectionRect reports whether rect spans the full table height.
func IsColSelectionRect(rect Rect, tm *TableMap) bool {
	return rect.Top == 0 && rect.Bottom == tm.Height
}

// IsRowSelectionRect reports whether rect spans the full table width.
func IsRowSelectionRect(rect Rect, tm *TableMap) bool {
	return rect.Left == 0 && rect.Right == tm.Width
}

// cellTypeAt returns type of the cell at slot, plain cell type for slots no
// cell covers.
func cellTypeAt(tm *TableMap, table *model.Node, index int, types NodeTypes) *model.NodeType {
	if index >= 0 && index < len(tm.Map) && tm.Map[index] != 0 {
		if n := table.NodeAt(tm.Map[index]); isCell(n) {
			return n.Type()
		}
	}
	return types.Cell
}

// AddColumn inserts a column at col. Cells spanning across col grow instead,
// new cells copy the type of the neighbouring column unless it is a header
// column at the table edge.
func AddColumn(tr *editor.Transaction, rect TableRect, col int) error {
	tm, table := rect.Map, rect.Table
	if col < 0 || col > tm.Width {
		return fmt.Errorf("%w: %d of %d", ErrInvalidColumn, col, tm.Width)
	}
	types, err := TableNodeTypes(table.Type().Schema())
	if err != nil {
		return err
	}
	refColumn, useRef := 0, true
	if col > 0 {
		refColumn = -1
	}
	if tm.Width > 0 {
		header, err := ColumnIsHeader(tm, table, col+refColumn)
		if err != nil {
			return err
		}
		if header && (col == 0 || col == tm.Width) {
			useRef = false
		} else if header {
			refColumn = 0
		}
	}
	mapFrom := tr.StepCount()
	for row := 0; row < tm.Height; row++ {
		index := row*tm.Width + col
		if col > 0 && col < tm.Width && tm.Map[index-1] == tm.Map[index] && tm.Map[index] != 0 {
			pos := tm.Map[index]
			cell := table.NodeAt(pos)
			left, err := tm.ColCount(pos)
			if err != nil {
				return err
			}
			at := tr.Mapping().Slice(mapFrom).Map(rect.TableStart + pos)
			if err := tr.SetNodeMarkup(at, nil, AddColSpan(cell.Attrs(), col-left, 1)); err != nil {
				return err
			}
			row += rowspan(cell) - 1
			continue
		}
		typ := types.Cell
		if useRef {
			typ = cellTypeAt(tm, table, index+refColumn, types)
		}
		pos := tm.PositionAt(row, col, table)
		if err := tr.Insert(tr.Mapping().Slice(mapFrom).Map(rect.TableStart+pos), typ.CreateAndFill(nil)); err != nil {
			return err
		}
	}
	if widths := table.Attrs().Floats(AttrColwidths); len(widths) > 0 && len(widths) == tm.Width {
		updated, err := InsertColumnWidth(widths, col, currentWidthPolicy())
		if err != nil {
			return err
		}
		return tr.SetNodeAttribute(rect.TablePos(), AttrColwidths, updated)
	}
	return nil
}

// RemoveColumn removes column col. Spanning cells shrink, single column
// cells are deleted.
func RemoveColumn(tr *editor.Transaction, rect TableRect, col int) error {
	tm, table := rect.Map, rect.Table
	if col < 0 || col >= tm.Width {
		return fmt.Errorf("%w: %d of %d", ErrInvalidColumn, col, tm.Width)
	}
	mapFrom := tr.StepCount()
	for row := 0; row < tm.Height; {
		index := row*tm.Width + col
		pos := tm.Map[index]
		if pos == 0 {
			row++
			continue
		}
		cell := table.NodeAt(pos)
		at := tr.Mapping().Slice(mapFrom).Map(rect.TableStart + pos)
		if (col > 0 && tm.Map[index-1] == pos) || (col < tm.Width-1 && tm.Map[index+1] == pos) {
			left, err := tm.ColCount(pos)
			if err != nil {
				return err
			}
			attrs, err := RemoveColSpan(cell.Attrs(), col-left, 1)
			if err != nil {
				return err
			}
			if err := tr.SetNodeMarkup(at, nil, attrs); err != nil {
				return err
			}
		} else if err := tr.Delete(at, at+cell.NodeSize()); err != nil {
			return err
		}
		row += rowspan(cell)
	}
	if widths := table.Attrs().Floats(AttrColwidths); len(widths) > 0 && len(widths) == tm.Width {
		updated, err := RemoveColumnWidths(widths, col, col+1, currentWidthPolicy())
		if err != nil {
			return err
		}
		return tr.SetNodeAttribute(rect.TablePos(), AttrColwidths, updated)
	}
	return nil
}

// AddRow inserts a row at index row. Cells spanning across it grow instead.
func AddRow(tr *editor.Transaction, rect TableRect, row int) error {
	tm, table := rect.Map, rect.Table
	if row < 0 || row > tm.Height {
		return fmt.Errorf("row %d out of range of %d", row, tm.Height)
	}
	types, err := TableNodeTypes(table.Type().Schema())
	if err != nil {
		return err
	}
	rowPos := rect.TableStart
	for i := range row {
		rowPos += table.Child(i).NodeSize()
	}
	refRow, useRef := 0, true
	if row > 0 {
		refRow = -1
	}
	if tm.Height > 0 {
		header, err := RowIsHeader(tm, table, row+refRow)
		if err != nil {
			return err
		}
		if header && (row == 0 || row == tm.Height) {
			useRef = false
		} else if header {
			refRow = 0
		}
	}
	var cells []*model.Node
	for col, index := 0, tm.Width*row; col < tm.Width; col, index = col+1, index+1 {
		if row > 0 && row < tm.Height && tm.Map[index] == tm.Map[index-tm.Width] && tm.Map[index] != 0 {
			pos := tm.Map[index]
			cell := table.NodeAt(pos)
			if err := tr.SetNodeMarkup(rect.TableStart+pos, nil, cell.Attrs().With(AttrRowspan, rowspan(cell)+1)); err != nil {
				return err
			}
			col += colspan(cell) - 1
			index += colspan(cell) - 1
			continue
		}
		typ := types.Cell
		if useRef {
			typ = cellTypeAt(tm, table, index+refRow*tm.Width, types)
		}
		cells = append(cells, typ.CreateAndFill(nil))
	}
	return tr.Insert(rowPos, types.Row.Create(nil, model.FragmentOf(cells...)))
}

// RemoveRow removes row. Cells spanning into it from above shrink, cells
// spanning down from it are moved to the next row.
func RemoveRow(tr *editor.Transaction, rect TableRect, row int) error {
	tm, table := rect.Map, rect.Table
	if row < 0 || row >= tm.Height {
		return fmt.Errorf("row %d out of range of %d", row, tm.Height)
	}
	rowPos := 0
	for i := range row {
		rowPos += table.Child(i).NodeSize()
	}
	nextRow := rowPos + table.Child(row).NodeSize()
	mapFrom := tr.StepCount()
	if err := tr.Delete(rowPos+rect.TableStart, nextRow+rect.TableStart); err != nil {
		return err
	}
	seen := make(map[int]bool)
	for col, index := 0, row*tm.Width; col < tm.Width; col, index = col+1, index+1 {
		pos := tm.Map[index]
		if pos == 0 || seen[pos] {
			continue
		}
		seen[pos] = true
		switch {
		case row > 0 && pos == tm.Map[index-tm.Width]:
			cell := table.NodeAt(pos)
			at := tr.Mapping().Slice(mapFrom).Map(pos + rect.TableStart)
			if err := tr.SetNodeMarkup(at, nil, cell.Attrs().With(AttrRowspan, rowspan(cell)-1)); err != nil {
				return err
			}
			col += colspan(cell) - 1
			index += colspan(cell) - 1
		case row+1 < tm.Height && pos == tm.Map[index+tm.Width]:
			cell := table.NodeAt(pos)
			moved := cell.Type().Create(cell.Attrs().With(AttrRowspan, rowspan(cell)-1), cell.Content())
			newPos := tm.PositionAt(row+1, col, table)
			if err := tr.Insert(tr.Mapping().Slice(mapFrom).Map(rect.TableStart+newPos), moved); err != nil {
				return err
			}
			col += colspan(cell) - 1
			index += colspan(cell) - 1
		}
	}
	return nil
}

func refreshRect(tr *editor.Transaction, rect TableRect) (TableRect, error) {
	table := tr.Doc().NodeAt(rect.TablePos())
	if table == nil || table.Type().TableRole() != model.RoleTable {
		return rect, fmt.Errorf("%w at %d", ErrNotTable, rect.TablePos())
	}
	tm, err := GetMap(table)
	if err != nil {
		return rect, err
	}
	rect.Table, rect.Map = table, tm
	return rect, nil
}

func deleteTableAt(tr *editor.Transaction, rect TableRect) error {
	return tr.Delete(rect.TablePos(), rect.TablePos()+rect.Table.NodeSize())
}

func addColumnCommand(after bool) Command {
	return func(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
		if !IsInTable(state) {
			return false, nil
		}
		rect, err := SelectedRect(state)
		if err != nil {
			return false, err
		}
		col := rect.Left
		if after {
			col = rect.Right
		}
		tr := state.Tr()
		if err := AddColumn(tr, rect, col); err != nil {
			return false, err
		}
		if dispatch != nil {
			dispatch(tr)
		}
		return true, nil
	}
}

// AddColumnBefore inserts a column left of the selection.
func AddColumnBefore(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
	return addColumnCommand(false)(state, dispatch)
}

// AddColumnAfter inserts a column right of the selection.
func AddColumnAfter(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
	return addColumnCommand(true)(state, dispatch)
}

// DeleteColumn removes selected columns, the whole table when all columns
// are selected.
func DeleteColumn(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
	if !IsInTable(state) {
		return false, nil
	}
	rect, err := SelectedRect(state)
	if err != nil {
		return false, err
	}
	tr := state.Tr()
	if rect.Left == 0 && rect.Right == rect.Map.Width {
		err = deleteTableAt(tr, rect)
	} else {
		for i := rect.Right - 1; err == nil; i-- {
			if err = RemoveColumn(tr, rect, i); err != nil || i == rect.Left {
				break
			}
			rect, err = refreshRect(tr, rect)
		}
	}
	if err != nil {
		return false, err
	}
	if dispatch != nil {
		dispatch(tr)
	}
	return true, nil
}

func addRowCommand(after bool) Command {
	return func(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
		if !IsInTable(state) {
			return false, nil
		}
		rect, err := SelectedRect(state)
		if err != nil {
			return false, err
		}
		row := rect.Top
		if after {
			row = rect.Bottom
		}
		tr := state.Tr()
		if err := AddRow(tr, rect, row); err != nil {
			return false, err
		}
		if dispatch != nil {
			dispatch(tr)
		}
		return true, nil
	}
}

// AddRowBefore inserts a row above the selection.
func AddRowBefore(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
	return addRowCommand(false)(state, dispatch)
}

// AddRowAfter inserts a row below the selection.
func AddRowAfter(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
	return addRowCommand(true)(state, dispatch)
}

// DeleteRow removes selected rows, the whole table when all rows are selected.
func DeleteRow(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
	if !IsInTable(state) {
		return false, nil
	}
	rect, err := SelectedRect(state)
	if err != nil {
		return false, err
	}
	tr := state.Tr()
	if rect.Top == 0 && rect.Bottom == rect.Map.Height {
		err = deleteTableAt(tr, rect)
	} else {
		for i := rect.Bottom - 1; err == nil; i-- {
			if err = RemoveRow(tr, rect, i); err != nil || i == rect.Top {
				break
			}
			rect, err = refreshRect(tr, rect)
		}
	}
	if err != nil {
		return false, err
	}
	if dispatch != nil {
		dispatch(tr)
	}
	return true, nil
}

// DeleteTable removes the table around the selection anchor.
func DeleteTable(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
	pos, err := state.Doc.Resolve(state.Selection.Anchor())
	if err != nil {
		return false, err
	}
	for d := pos.Depth(); d > 0; d-- {
		if pos.Node(d).Type().TableRole() != model.RoleTable {
			continue
		}
		tr := state.Tr()
		if err := tr.Delete(pos.Before(d), pos.After(d)); err != nil {
			return false, err
		}
		if dispatch != nil {
			dispatch(tr)
		}
		return true, nil
	}
	return false, nil
}

// DeleteCellSelection resets content of selected cells to their default.
func DeleteCellSelection(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
	sel, ok := state.Selection.(*CellSelection)
	if !ok {
		return false, nil
	}
	tr := state.Tr()
	var stepErr error
	err := sel.ForEachCell(func(cell *model.Node, pos int) {
		base := cell.Type().CreateAndFill(nil).Content()
		if stepErr != nil || cell.Content().Eq(base) {
			return
		}
		from := tr.Mapping().Map(pos + 1)
		to := tr.Mapping().Map(pos + cell.NodeSize() - 1)
		stepErr = tr.ReplaceWith(from, to, base)
	})
	if err == nil {
		err = stepErr
	}
	if err != nil {
		return false, err
	}
	if dispatch != nil && tr.DocChanged() {
		dispatch(tr)
	}
	return true, nil
}

// SetCellAttr sets attribute on selected cells.
func SetCellAttr(name string, value any) Command {
	return func(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
		if !IsInTable(state) {
			return false, nil
		}
		cell, err := SelectionCell(state)
		if err != nil {
			return false, err
		}
		if model.AttrEqual(cell.NodeAfter().Attr(name), value) {
			return false, nil
		}
		tr := state.Tr()
		set := func(node *model.Node, pos int) error {
			if model.AttrEqual(node.Attr(name), value) {
				return nil
			}
			return tr.SetNodeMarkup(pos, nil, node.Attrs().With(name, value))
		}
		if sel, ok := state.Selection.(*CellSelection); ok {
			var stepErr error
			err = sel.ForEachCell(func(node *model.Node, pos int) {
				if stepErr == nil {
					stepErr = set(node, pos)
				}
			})
			if err == nil {
				err = stepErr
			}
		} else {
			err = set(cell.NodeAfter(), cell.Pos())
		}
		if err != nil {
			return false, err
		}
		if dispatch != nil {
			dispatch(tr)
		}
		return true, nil
	}
}

// ToggleHeader switches cells of the selected rows, columns or cells between
// header and plain cells. When any of them is a header they all become plain.
func ToggleHeader(kind HeaderKind) Command {
	return func(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
		if !IsInTable(state) {
			return false, nil
		}
		types, err := TableNodeTypes(state.Schema())
		if err != nil {
			return false, err
		}
		rect, err := SelectedRect(state)
		if err != nil {
			return false, err
		}
		area := rect.Rect
		switch kind {
		case HeaderKindColumn:
			area = Rect{Left: rect.Left, Top: 0, Right: rect.Right, Bottom: rect.Map.Height}
		case HeaderKindRow:
			area = Rect{Left: 0, Top: rect.Top, Right: rect.Map.Width, Bottom: rect.Bottom}
		}
		cells := rect.Map.CellsInRect(area)
		nodes := make([]*model.Node, len(cells))
		for i, pos := range cells {
			nodes[i] = rect.Table.NodeAt(pos)
		}
		tr := state.Tr()
		for i, pos := range cells {
			if nodes[i].Type() == types.HeaderCell {
				if err := tr.SetNodeMarkup(rect.TableStart+pos, types.Cell, nodes[i].Attrs()); err != nil {
					return false, err
				}
			}
		}
		if !tr.DocChanged() {
			for i, pos := range cells {
				if err := tr.SetNodeMarkup(rect.TableStart+pos, types.HeaderCell, nodes[i].Attrs()); err != nil {
					return false, err
				}
			}
		}
		if dispatch != nil {
			dispatch(tr)
		}
		return true, nil
	}
}

var (
	ToggleHeaderRow    = ToggleHeader(HeaderKindRow)
	ToggleHeaderColumn = ToggleHeader(HeaderKindColumn)
	ToggleHeaderCell   = ToggleHeader(HeaderKindCell)
)

// GoToNextCell selects content of the next (dir > 0) or previous cell in
// reading order.
func GoToNextCell(dir int) Command {
	return func(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
		if !IsInTable(state) {
			return false, nil
		}
		cell, err := SelectionCell(state)
		if err != nil {
			return false, err
		}
		next, ok := findNextCell(cell, dir)
		if !ok {
			return false, nil
		}
		if dispatch != nil {
			target := state.Doc.NodeAt(next)
			from := editor.FindTextPosition(state.Doc, next+1, 1)
			to := editor.FindTextPosition(state.Doc, next+target.NodeSize()-1, -1)
			tr := state.Tr()
			if from >= 0 && to >= from {
				tr.SetSelection(editor.NewTextSelection(from, to))
			} else {
				sel, err := NewCellSelection(mustResolve(state.Doc, next), nil)
				if err != nil {
					return false, err
				}
				tr.SetSelection(sel)
			}
			dispatch(tr)
		}
		return true, nil
	}
}

func mustResolve(doc *model.Node, pos int) *model.ResolvedPos {
	rp, err := doc.Resolve(pos)
	if err != nil {
		panic(fmt.Sprintf("position %d computed from the document does not resolve: %v", pos, err))
	}
	return rp
}

func findNextCell(cell *model.ResolvedPos, dir int) (int, bool) {
	table := cell.Node(-1)
	if dir < 0 {
		if before := cell.NodeBefore(); before != nil {
			return cell.Pos() - before.NodeSize(), true
		}
		for row, rowEnd := cell.Index(-1)-1, cell.Before(cell.Depth()); row >= 0; row-- {
			rowNode := table.Child(row)
			if last := rowNode.LastChild(); last != nil {
				return rowEnd - 1 - last.NodeSize(), true
			}
			rowEnd -= rowNode.NodeSize()
		}
		return 0, false
	}
	if cell.Index(cell.Depth()) < cell.Parent().ChildCount()-1 {
		return cell.Pos() + cell.NodeAfter().NodeSize(), true
	}
	for row, rowStart := cell.IndexAfter(-1), cell.After(cell.Depth()); row < table.ChildCount(); row++ {
		rowNode := table.Child(row)
		if rowNode.ChildCount() > 0 {
			return rowStart + 1, true
		}
		rowStart += rowNode.NodeSize()
	}
	return 0, false
}

// SetColumnWidth sets pixel colwidth of the column at the right edge of the
// selected cell in every row.
func SetColumnWidth(width int) Command {
	return func(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
		if !IsInTable(state) {
			return false, nil
		}
		if width <= 0 {
			return false, fmt.Errorf("column width must be positive, got %d", width)
		}
		cell, err := SelectionCell(state)
		if err != nil {
			return false, err
		}
		table, tm, start, err := tableOf(cell)
		if err != nil {
			return false, err
		}
		left, err := tm.ColCount(cell.Pos() - start)
		if err != nil {
			return false, err
		}
		col := left + colspan(cell.NodeAfter()) - 1
		tr := state.Tr()
		for row := range tm.Height {
			index := row*tm.Width + col
			if row > 0 && tm.Map[index] == tm.Map[index-tm.Width] {
				continue
			}
			pos := tm.Map[index]
			if pos == 0 {
				continue
			}
			node := table.NodeAt(pos)
			cellLeft, err := tm.ColCount(pos)
			if err != nil {
				return false, err
			}
			i := col - cellLeft
			cw := node.Attrs().Ints(AttrColwidth)
			if i < len(cw) && cw[i] == width {
				continue
			}
			if len(cw) < colspan(node) {
				cw = append(cw, make([]int, colspan(node)-len(cw))...)
			}
			cw[i] = width
			if err := tr.SetNodeMarkup(start+pos, nil, node.Attrs().With(AttrColwidth, cw)); err != nil {
				return false, err
			}
		}
		if !tr.DocChanged() {
			return false, nil
		}
		if dispatch != nil {
			dispatch(tr)
		}
		return true, nil
	}
}

// ResizeColumn sets percentage width of column col in table colwidths, the
// neighbouring column absorbs the difference. Tables without colwidths start
// from even widths.
func ResizeColumn(col int, percent float64) Command {
	return func(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
		if !IsInTable(state) {
			return false, nil
		}
		rect, err := SelectedRect(state)
		if err != nil {
			return false, err
		}
		if col < 0 || col >= rect.Map.Width {
			return false, fmt.Errorf("%w: %d of %d", ErrInvalidColumn, col, rect.Map.Width)
		}
		policy := currentWidthPolicy()
		widths := rect.Table.Attrs().Floats(AttrColwidths)
		if len(widths) != rect.Map.Width {
			widths = EvenWidths(rect.Map.Width, policy)
		}
		updated, err := ResizeColumnWidth(widths, col, percent, policy)
		if err != nil {
			return false, err
		}
		tr := state.Tr()
		if err := tr.SetNodeAttribute(rect.TablePos(), AttrColwidths, updated); err != nil {
			return false, err
		}
		if dispatch != nil {
			dispatch(tr)
		}
		return true, nil
	}
}
