package tables

import (
	"fmt"

	"tabular/editor"
	"tabular/model"
	"tabular/transform"
)

// SelectionRange is a document range covering content of one selected cell.
type SelectionRange struct {
	From, To int
}

// CellSelection selects the rectangle spanned by anchor and head cells.
// Positions point directly before cells.
type CellSelection struct {
	anchorCell *model.ResolvedPos
	headCell   *model.ResolvedPos
	ranges     []SelectionRange
}

// NewCellSelection creates selection between two cells of the same table,
// nil head selects anchor cell only.
func NewCellSelection(anchorCell, headCell *model.ResolvedPos) (*CellSelection, error) {
	if headCell == nil {
		headCell = anchorCell
	}
	if !PointsAtCell(anchorCell) || !PointsAtCell(headCell) {
		return nil, fmt.Errorf("%w: cell selection ends must point at cells", ErrCellNotFound)
	}
	if !InSameTable(anchorCell, headCell) {
		return nil, fmt.Errorf("%w: cell selection spans several tables", ErrNotInTable)
	}
	table, tm, start, err := tableOf(anchorCell)
	if err != nil {
		return nil, err
	}
	rect, err := tm.RectBetween(anchorCell.Pos()-start, headCell.Pos()-start)
	if err != nil {
		return nil, err
	}
	cells := tm.CellsInRect(rect)
	ranges := make([]SelectionRange, 0, len(cells))
	for _, pos := range cells {
		cell := table.NodeAt(pos)
		from := start + pos + 1
		ranges = append(ranges, SelectionRange{From: from, To: from + cell.Content().Size()})
	}
	return &CellSelection{anchorCell: anchorCell, headCell: headCell, ranges: ranges}, nil
}

// CellSelectionCreate resolves both cell positions in doc.
func CellSelectionCreate(doc *model.Node, anchorCell, headCell int) (*CellSelection, error) {
	a, err := doc.Resolve(anchorCell)
	if err != nil {
		return nil, err
	}
	h, err := doc.Resolve(headCell)
	if err != nil {
		return nil, err
	}
	return NewCellSelection(a, h)
}

// ColSelection selects full columns between the two cells.
func ColSelection(anchorCell, headCell *model.ResolvedPos) (*CellSelection, error) {
	return lineSelection(anchorCell, headCell, true)
}

// RowSelection selects full rows between the two cells.
func RowSelection(anchorCell, headCell *model.ResolvedPos) (*CellSelection, error) {
	return lineSelection(anchorCell, headCell, false)
}

func lineSelection(anchorCell, headCell *model.ResolvedPos, cols bool) (*CellSelection, error) {
	if headCell == nil {
		headCell = anchorCell
	}
	_, tm, start, err := tableOf(anchorCell)
	if err != nil {
		return nil, err
	}
	anchorRect, err := tm.FindCell(anchorCell.Pos() - start)
	if err != nil {
		return nil, err
	}
	headRect, err := tm.FindCell(headCell.Pos() - start)
	if err != nil {
		return nil, err
	}
	doc := anchorCell.Doc()

	resolve := func(row, col int) (*model.ResolvedPos, error) {
		return doc.Resolve(start + tm.Map[row*tm.Width+col])
	}
	if cols {
		// the selection runs from top of the anchor column to the bottom of
		// the head column or the other way round
		if anchorRect.Top <= headRect.Top {
			if anchorRect.Top > 0 {
				anchorCell, err = resolve(0, anchorRect.Left)
			}
			if err == nil && headRect.Bottom < tm.Height {
				headCell, err = resolve(tm.Height-1, headRect.Right-1)
			}
		} else {
			if headRect.Top > 0 {
				headCell, err = resolve(0, headRect.Left)
			}
			if err == nil && anchorRect.Bottom < tm.Height {
				anchorCell, err = resolve(tm.Height-1, anchorRect.Right-1)
			}
		}
	} else {
		if anchorRect.Left <= headRect.Left {
			if anchorRect.Left > 0 {
				anchorCell, err = resolve(anchorRect.Top, 0)
			}
			if err == nil && headRect.Right < tm.Width {
				headCell, err = resolve(headRect.Bottom-1, tm.Width-1)
			}
		} else {
			if headRect.Left > 0 {
				headCell, err = resolve(headRect.Top, 0)
			}
			if err == nil && anchorRect.Right < tm.Width {
				anchorCell, err = resolve(anchorRect.Bottom-1, tm.Width-1)
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return NewCellSelection(anchorCell, headCell)
}

func (s *CellSelection) AnchorCell() *model.ResolvedPos { return s.anchorCell }
func (s *CellSelection) HeadCell() *model.ResolvedPos   { return s.headCell }
func (s *CellSelection) Anchor() int                    { return s.anchorCell.Pos() }
func (s *CellSelection) Head() int                      { return s.headCell.Pos() }

// Ranges returns content ranges of selected cells.
func (s *CellSelection) Ranges() []SelectionRange {
	return append([]SelectionRange(nil), s.ranges...)
}

func (s *CellSelection) From() int {
	res := s.ranges[0].From
	for _, r := range s.ranges[1:] {
		res = min(res, r.From)
	}
	return res
}

func (s *CellSelection) To() int {
	res := s.ranges[0].To
	for _, r := range s.ranges[1:] {
		res = max(res, r.To)
	}
	return res
}

// Map keeps cell selection when both ends still point at cells of one
// table, otherwise falls back to text selection between mapped ends.
func (s *CellSelection) Map(doc *model.Node, mapping transform.Mappable) editor.Selection {
	anchorPos := mapping.Map(s.anchorCell.Pos())
	headPos := mapping.Map(s.headCell.Pos())
	anchor, errA := doc.Resolve(anchorPos)
	head, errH := doc.Resolve(headPos)
	if errA == nil && errH == nil && PointsAtCell(anchor) && PointsAtCell(head) && InSameTable(anchor, head) {
		tableChanged := s.anchorCell.Node(-1) != anchor.Node(-1)
		if tableChanged && s.IsRowSelection() {
			if sel, err := RowSelection(anchor, head); err == nil {
				return sel
			}
		} else if tableChanged && s.IsColSelection() {
			if sel, err := ColSelection(anchor, head); err == nil {
				return sel
			}
		} else if sel, err := NewCellSelection(anchor, head); err == nil {
			return sel
		}
	}
	if p := editor.FindTextPosition(doc, min(max(headPos, 0), doc.Content().Size()), 1); p >= 0 {
		a := editor.FindTextPosition(doc, min(max(anchorPos, 0), doc.Content().Size()), 1)
		if a >= 0 {
			return editor.NewTextSelection(a, p)
		}
	}
	return editor.Near(doc, headPos, 1)
}

// Content returns the selected rectangle as a fragment of rows, or the whole
// table when everything is selected. Cells sticking out of the rectangle are
// clipped: spans are reduced and cells starting outside lose their content.
func (s *CellSelection) Content() (model.Fragment, error) {
	table, tm, start, err := tableOf(s.anchorCell)
	if err != nil {
		return model.EmptyFragment, err
	}
	rect, err := tm.RectBetween(s.anchorCell.Pos()-start, s.headCell.Pos()-start)
	if err != nil {
		return model.EmptyFragment, err
	}
	seen := make(map[int]bool)
	var rows []*model.Node
	for row := rect.Top; row < rect.Bottom; row++ {
		var cells []*model.Node
		for index, col := row*tm.Width+rect.Left, rect.Left; col < rect.Right; col, index = col+1, index+1 {
			pos := tm.Map[index]
			if pos == 0 || seen[pos] {
				continue
			}
			seen[pos] = true
			cellRect, err := tm.FindCell(pos)
			if err != nil {
				return model.EmptyFragment, err
			}
			cell := table.NodeAt(pos)
			extraLeft := rect.Left - cellRect.Left
			extraRight := cellRect.Right - rect.Right
			if extraLeft > 0 || extraRight > 0 {
				attrs := cell.Attrs()
				if extraLeft > 0 {
					if attrs, err = RemoveColSpan(attrs, 0, extraLeft); err != nil {
						return model.EmptyFragment, err
					}
				}
				if extraRight > 0 {
					if attrs, err = RemoveColSpan(attrs, attrs.Int(AttrColspan)-extraRight, extraRight); err != nil {
						return model.EmptyFragment, err
					}
				}
				if cellRect.Left < rect.Left {
					cell = cell.Type().CreateAndFill(attrs)
				} else {
					cell = cell.Type().Create(attrs, cell.Content())
				}
			}
			if cellRect.Top < rect.Top || cellRect.Bottom > rect.Bottom {
				attrs := cell.Attrs().With(AttrRowspan, min(cellRect.Bottom, rect.Bottom)-max(cellRect.Top, rect.Top))
				if cellRect.Top < rect.Top {
					cell = cell.Type().CreateAndFill(attrs)
				} else {
					cell = cell.Type().Create(attrs, cell.Content())
				}
			}
			cells = append(cells, cell)
		}
		rows = append(rows, table.Child(row).Copy(model.FragmentOf(cells...)))
	}
	if s.IsColSelection() && s.IsRowSelection() {
		return model.FragmentOf(table), nil
	}
	return model.FragmentOf(rows...), nil
}

// Replace clears all selected cells except the first, which gets content.
// Cleared cells get their default fill.
func (s *CellSelection) Replace(tr *editor.Transaction, content model.Fragment) error {
	mapFrom := tr.StepCount()
	for i, r := range s.ranges {
		m := tr.Mapping().Slice(mapFrom)
		from, to := m.Map(r.From), m.Map(r.To)
		fill := content
		if i > 0 || content.Size() == 0 {
			rp, err := tr.Doc().Resolve(from)
			if err != nil {
				return err
			}
			fill = rp.Parent().Type().CreateAndFill(nil).Content()
		}
		if err := tr.ReplaceWith(from, to, fill); err != nil {
			return err
		}
	}
	sel := editor.FindTextPosition(tr.Doc(), tr.Mapping().Slice(mapFrom).Map(s.To()), -1)
	if sel >= 0 {
		tr.SetSelection(editor.NewTextSelection(sel, sel))
	}
	return nil
}

// ReplaceWith fills the first selected cell with node clearing the others.
func (s *CellSelection) ReplaceWith(tr *editor.Transaction, node *model.Node) error {
	return s.Replace(tr, model.FragmentOf(node))
}

// ForEachCell calls fn for each selected cell with its document position.
func (s *CellSelection) ForEachCell(fn func(cell *model.Node, pos int)) error {
	table, tm, start, err := tableOf(s.anchorCell)
	if err != nil {
		return err
	}
	rect, err := tm.RectBetween(s.anchorCell.Pos()-start, s.headCell.Pos()-start)
	if err != nil {
		return err
	}
	for _, pos := range tm.CellsInRect(rect) {
		fn(table.NodeAt(pos), start+pos)
	}
	return nil
}

// IsColSelection reports whether selection covers full columns top to bottom.
func (s *CellSelection) IsColSelection() bool {
	anchorTop := s.anchorCell.Index(-1)
	headTop := s.headCell.Index(-1)
	if min(anchorTop, headTop) > 0 {
		return false
	}
	anchorBottom := anchorTop + rowspan(s.anchorCell.NodeAfter())
	headBottom := headTop + rowspan(s.headCell.NodeAfter())
	return max(anchorBottom, headBottom) == s.headCell.Node(-1).ChildCount()
}

// IsRowSelection reports whether selection covers full rows left to right.
func (s *CellSelection) IsRowSelection() bool {
	_, tm, start, err := tableOf(s.anchorCell)
	if err != nil {
		return false
	}
	anchorLeft, err := tm.ColCount(s.anchorCell.Pos() - start)
	if err != nil {
		return false
	}
	headLeft, err := tm.ColCount(s.headCell.Pos() - start)
	if err != nil {
		return false
	}
	if min(anchorLeft, headLeft) > 0 {
		return false
	}
	anchorRight := anchorLeft + colspan(s.anchorCell.NodeAfter())
	headRight := headLeft + colspan(s.headCell.NodeAfter())
	return max(anchorRight, headRight) == tm.Width
}

func (s *CellSelection) Eq(other editor.Selection) bool {
	o, ok := other.(*CellSelection)
	return ok && o.anchorCell.Pos() == s.anchorCell.Pos() && o.headCell.Pos() == s.headCell.Pos()
}

func (s *CellSelection) String() string {
	return fmt.Sprintf("cells(%d,%d)", s.anchorCell.Pos(), s.headCell.Pos())
}
