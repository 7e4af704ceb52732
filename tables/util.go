package tables

import (
	"fmt"
	"slices"

	"tabular/editor"
	"tabular/model"
)

// CellAround returns position before the cell containing pos, nil when pos
// is not inside a cell.
func CellAround(pos *model.ResolvedPos) *model.ResolvedPos {
	for d := pos.Depth() - 1; d > 0; d-- {
		if pos.Node(d).Type().TableRole() == model.RoleRow {
			rp, err := pos.Doc().Resolve(pos.Before(d + 1))
			if err != nil {
				return nil
			}
			return rp
		}
	}
	return nil
}

// CellWrapping returns the cell node containing pos.
func CellWrapping(pos *model.ResolvedPos) *model.Node {
	for d := pos.Depth(); d > 0; d-- {
		if pos.Node(d).Type().IsCell() {
			return pos.Node(d)
		}
	}
	return nil
}

// IsInTable reports whether selection head is inside a table row.
func IsInTable(state *editor.State) bool {
	head, err := state.Doc.Resolve(state.Selection.Head())
	if err != nil {
		return false
	}
	for d := head.Depth(); d > 0; d-- {
		if head.Node(d).Type().TableRole() == model.RoleRow {
			return true
		}
	}
	return false
}

// SelectionCell returns position before the cell the selection is in.
func SelectionCell(state *editor.State) (*model.ResolvedPos, error) {
	if cs, ok := state.Selection.(*CellSelection); ok {
		if cs.AnchorCell().Pos() > cs.HeadCell().Pos() {
			return cs.AnchorCell(), nil
		}
		return cs.HeadCell(), nil
	}
	if ns, ok := state.Selection.(*editor.NodeSelection); ok && isCell(ns.Node()) {
		return state.Doc.Resolve(ns.From())
	}
	head, err := state.Doc.Resolve(state.Selection.Head())
	if err != nil {
		return nil, err
	}
	if cell := CellAround(head); cell != nil {
		return cell, nil
	}
	if cell := CellNear(head); cell != nil {
		return cell, nil
	}
	return nil, fmt.Errorf("%w: selection at %d", ErrNotInTable, state.Selection.Head())
}

// CellNear looks for a cell directly around pos descending into first or
// last children.
func CellNear(pos *model.ResolvedPos) *model.ResolvedPos {
	for after, p := pos.NodeAfter(), pos.Pos(); after != nil; after, p = after.FirstChild(), p+1 {
		if isCell(after) {
			rp, _ := pos.Doc().Resolve(p)
			return rp
		}
	}
	for before, p := pos.NodeBefore(), pos.Pos(); before != nil; before, p = before.LastChild(), p-1 {
		if isCell(before) {
			rp, _ := pos.Doc().Resolve(p - before.NodeSize())
			return rp
		}
	}
	return nil
}

// PointsAtCell reports whether pos is directly before a cell in a row.
func PointsAtCell(pos *model.ResolvedPos) bool {
	return pos.Parent().Type().TableRole() == model.RoleRow && isCell(pos.NodeAfter())
}

// MoveCellForward returns position after the cell pos points at.
func MoveCellForward(pos *model.ResolvedPos) (*model.ResolvedPos, error) {
	return pos.Doc().Resolve(pos.Pos() + pos.NodeAfter().NodeSize())
}

// InSameTable reports whether two cell positions belong to the same table.
func InSameTable(a, b *model.ResolvedPos) bool {
	return a.Depth() == b.Depth() && a.Pos() >= b.Start(-1) && a.Pos() <= b.End(-1)
}

// tableOf returns table node, its map and content start for a cell position.
func tableOf(cell *model.ResolvedPos) (*model.Node, *TableMap, int, error) {
	if cell.Depth() < 1 || cell.Node(-1).Type().TableRole() != model.RoleTable {
		return nil, nil, 0, fmt.Errorf("%w: %d", ErrNotInTable, cell.Pos())
	}
	table := cell.Node(-1)
	tm, err := GetMap(table)
	if err != nil {
		return nil, nil, 0, err
	}
	return table, tm, cell.Start(-1), nil
}

// FindCell returns grid rectangle of the cell pos points at.
func FindCell(cell *model.ResolvedPos) (Rect, error) {
	_, tm, start, err := tableOf(cell)
	if err != nil {
		return Rect{}, err
	}
	return tm.FindCell(cell.Pos() - start)
}

// ColCount returns leftmost column of the cell pos points at.
func ColCount(cell *model.ResolvedPos) (int, error) {
	_, tm, start, err := tableOf(cell)
	if err != nil {
		return 0, err
	}
	return tm.ColCount(cell.Pos() - start)
}

// NextCell returns position of the adjacent cell, nil at the table edge.
func NextCell(cell *model.ResolvedPos, axis Axis, dir int) (*model.ResolvedPos, error) {
	_, tm, start, err := tableOf(cell)
	if err != nil {
		return nil, err
	}
	next, ok, err := tm.NextCell(cell.Pos()-start, axis, dir)
	if err != nil || !ok {
		return nil, err
	}
	return cell.Doc().Resolve(start + next)
}

// RemoveColSpan returns attrs with n columns starting at pos removed from
// the span and its colwidth.
func RemoveColSpan(attrs model.Attrs, pos, n int) (model.Attrs, error) {
	span, ok := attrs[AttrColspan].(int)
	if !ok {
		return nil, fmt.Errorf("cell attributes have no %s", AttrColspan)
	}
	res := attrs.With(AttrColspan, span-n)
	if cw := attrs.Ints(AttrColwidth); cw != nil {
		if pos < len(cw) {
			cw = slices.Delete(cw, pos, min(pos+n, len(cw)))
		}
		if slices.ContainsFunc(cw, func(w int) bool { return w > 0 }) {
			res[AttrColwidth] = cw
		} else {
			res[AttrColwidth] = nil
		}
	}
	return res, nil
}

// AddColSpan returns attrs with span grown by n columns at pos, colwidth gets
// unknown widths for them.
func AddColSpan(attrs model.Attrs, pos, n int) model.Attrs {
	res := attrs.With(AttrColspan, attrs.Int(AttrColspan)+n)
	if cw := attrs.Ints(AttrColwidth); cw != nil {
		pos = min(pos, len(cw))
		res[AttrColwidth] = slices.Insert(cw, pos, make([]int, n)...)
	}
	return res
}

// ColumnIsHeader reports whether every cell of the column is a header cell.
func ColumnIsHeader(tm *TableMap, table *model.Node, col int) (bool, error) {
	types, err := TableNodeTypes(table.Type().Schema())
	if err != nil {
		return false, err
	}
	for row := range tm.Height {
		pos := tm.Map[col+row*tm.Width]
		if pos == 0 {
			return false, nil
		}
		if n := table.NodeAt(pos); n == nil || n.Type() != types.HeaderCell {
			return false, nil
		}
	}
	return true, nil
}

// RowIsHeader reports whether every cell of the row is a header cell.
func RowIsHeader(tm *TableMap, table *model.Node, row int) (bool, error) {
	types, err := TableNodeTypes(table.Type().Schema())
	if err != nil {
		return false, err
	}
	for col := range tm.Width {
		pos := tm.Map[col+row*tm.Width]
		if pos == 0 {
			return false, nil
		}
		if n := table.NodeAt(pos); n == nil || n.Type() != types.HeaderCell {
			return false, nil
		}
	}
	return true, nil
}

// SelectedRect returns selected rectangle of the table the selection is in.
func SelectedRect(state *editor.State) (TableRect, error) {
	sel := state.Selection
	cell, err := SelectionCell(state)
	if err != nil {
		return TableRect{}, err
	}
	table, tm, start, err := tableOf(cell)
	if err != nil {
		return TableRect{}, err
	}
	var rect Rect
	if cs, ok := sel.(*CellSelection); ok {
		rect, err = tm.RectBetween(cs.AnchorCell().Pos()-start, cs.HeadCell().Pos()-start)
	} else {
		rect, err = tm.FindCell(cell.Pos() - start)
	}
	if err != nil {
		return TableRect{}, err
	}
	return TableRect{Rect: rect, TableStart: start, Map: tm, Table: table}, nil
}

// isEmptyCell reports whether cell holds nothing but a single empty textblock.
func isEmptyCell(cell *model.Node) bool {
	c := cell.Content()
	if c.ChildCount() == 0 {
		return true
	}
	return c.ChildCount() == 1 && c.Child(0).IsTextblock() && c.Child(0).ChildCount() == 0
}
