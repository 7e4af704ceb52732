package tables

import (
	"tabular/editor"
	"tabular/model"
)

// CellTypeFunc picks node type for a cell created by splitting node at
// the given grid slot.
type CellTypeFunc func(node *model.Node, row, col int) *model.NodeType

// SplitCell splits selected spanning cell into cells of its own type.
func SplitCell(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
	return SplitCellWithType(func(node *model.Node, _, _ int) *model.NodeType {
		return node.Type()
	})(state, dispatch)
}

// SplitCellWithType splits a cell spanning several slots into 1x1 cells.
// The original cell stays at its top-left slot, every slot i of a row gets
// colwidth[i] of the original.
func SplitCellWithType(cellType CellTypeFunc) Command {
	return func(state *editor.State, dispatch func(*editor.Transaction)) (bool, error) {
		var cellNode *model.Node
		cellPos := -1
		sel, isCellSel := state.Selection.(*CellSelection)
		if isCellSel {
			if sel.AnchorCell().Pos() != sel.HeadCell().Pos() {
				return false, nil
			}
			cellNode, cellPos = sel.AnchorCell().NodeAfter(), sel.AnchorCell().Pos()
		} else {
			from, err := state.Doc.Resolve(state.Selection.From())
			if err != nil {
				return false, err
			}
			cellNode = CellWrapping(from)
			if around := CellAround(from); around != nil {
				cellPos = around.Pos()
			}
		}
		if cellNode == nil || cellPos < 0 {
			return false, nil
		}
		if colspan(cellNode) == 1 && rowspan(cellNode) == 1 {
			return false, nil
		}

		base := cellNode.Attrs().With(AttrColspan, 1).With(AttrRowspan, 1)
		colwidth := cellNode.Attrs().Ints(AttrColwidth)
		rect, err := SelectedRect(state)
		if err != nil {
			return false, err
		}
		attrs := make([]model.Attrs, rect.Width())
		for i := range attrs {
			attrs[i] = base
			if colwidth != nil {
				var cw []int
				if i < len(colwidth) && colwidth[i] > 0 {
					cw = []int{colwidth[i]}
				}
				attrs[i] = base.With(AttrColwidth, cw)
			}
		}

		tr := state.Tr()
		lastCell := -1
		for row := rect.Top; row < rect.Bottom; row++ {
			pos := rect.Map.PositionAt(row, rect.Left, rect.Table)
			if row == rect.Top {
				pos += cellNode.NodeSize()
			}
			for col, i := rect.Left, 0; col < rect.Right; col, i = col+1, i+1 {
				if col == rect.Left && row == rect.Top {
					continue
				}
				lastCell = tr.Mapping().Map(pos + rect.TableStart)
				if err := tr.Insert(lastCell, cellType(cellNode, row, col).CreateAndFill(attrs[i])); err != nil {
					return false, err
				}
			}
		}
		if err := tr.SetNodeMarkup(cellPos, cellType(cellNode, rect.Top, rect.Left), attrs[0]); err != nil {
			return false, err
		}
		if isCellSel {
			anchor, err := tr.Doc().Resolve(sel.AnchorCell().Pos())
			if err != nil {
				return false, err
			}
			var head *model.ResolvedPos
			if lastCell >= 0 {
				if head, err = tr.Doc().Resolve(lastCell); err != nil {
					return false, err
				}
			}
			cs, err := NewCellSelection(anchor, head)
			if err != nil {
				return false, err
			}
			tr.SetSelection(cs)
		}
		if dispatch != nil {
			dispatch(tr)
		}
		return true, nil
	}
}
