package tables

import (
	"errors"
	"fmt"

	"tabular/model"
)

var (
	ErrNotTable      = errors.New("not a table node")
	ErrCellNotFound  = errors.New("no cell at offset")
	ErrNotInTable    = errors.New("position is not inside a table")
	ErrInvalidColumn = errors.New("column out of range")
	ErrTableTooLarge = errors.New("table grid is too large")
)

// MaxMapSlots limits width*height of a table grid.
const MaxMapSlots = 1 << 20

// TableMap is a width by height grid of table-relative cell offsets. A cell
// spanning several slots has its offset in each of them, slots no cell covers
// hold 0. Maps are shared through the cache and must not be modified.
type TableMap struct {
	Width    int
	Height   int
	Map      []int
	Problems []Problem
}

type colWidthVote struct {
	width int
	count int
}

// ComputeMap builds grid map of a table node, recording structural problems
// instead of failing on them.
func ComputeMap(table *model.Node) (*TableMap, error) {
	if table.Type().TableRole() != model.RoleTable {
		return nil, fmt.Errorf("%w: %s", ErrNotTable, table.Type().Name)
	}
	width, height := findWidth(table), table.ChildCount()
	if height > 0 && width > MaxMapSlots/height {
		return nil, fmt.Errorf("%w: %d columns by %d rows", ErrTableTooLarge, width, height)
	}
	tm := &TableMap{Width: width, Height: height, Map: make([]int, width*height)}
	votes := make([]colWidthVote, width)

	mapPos := 0
	for row, pos := 0, 0; row < height; row++ {
		rowNode := table.Child(row)
		pos++
		for i := 0; ; i++ {
			for mapPos < len(tm.Map) && tm.Map[mapPos] != 0 {
				mapPos++
			}
			if i == rowNode.ChildCount() {
				break
			}
			cell := rowNode.Child(i)
			cs, rs := colspan(cell), rowspan(cell)
			cw := cell.Attrs().Ints(AttrColwidth)
			for h := range rs {
				if h+row >= height {
					tm.Problems = append(tm.Problems, Problem{Kind: ProblemKindOverlongRowspan, Pos: pos, N: rs - h})
					break
				}
				start := mapPos + h*width
				for w := range cs {
					idx := start + w
					if idx < len(tm.Map) && tm.Map[idx] == 0 {
						tm.Map[idx] = pos
					} else {
						tm.Problems = append(tm.Problems, Problem{Kind: ProblemKindCollision, Row: row, Pos: pos, N: cs - w})
					}
					if w < len(cw) && cw[w] > 0 && width > 0 {
						v := &votes[idx%width]
						switch {
						case v.count == 0 || (v.width != cw[w] && v.count == 1):
							v.width, v.count = cw[w], 1
						case v.width == cw[w]:
							v.count++
						}
					}
				}
			}
			mapPos += cs
			pos += cell.NodeSize()
		}
		expected, missing := (row+1)*width, 0
		for ; mapPos < expected; mapPos++ {
			if tm.Map[mapPos] == 0 {
				missing++
			}
		}
		if missing > 0 {
			tm.Problems = append(tm.Problems, Problem{Kind: ProblemKindMissing, Row: row, N: missing})
		}
		pos++
	}
	if width == 0 || height == 0 {
		tm.Problems = append(tm.Problems, Problem{Kind: ProblemKindZeroSized})
	}

	for _, v := range votes {
		if v.count > 0 && v.count < height {
			tm.findBadColWidths(votes, table)
			break
		}
	}
	return tm, nil
}

// findWidth returns the widest row width, counting slots covered by cells
// spanning down from previous rows. Widths above MaxMapSlots are reported as
// MaxMapSlots+1.
func findWidth(table *model.Node) int {
	width, hasRowspan := -1, false
	for row := range table.ChildCount() {
		rowNode := table.Child(row)
		rowWidth := 0
		if hasRowspan {
			for j := range row {
				prev := table.Child(j)
				for i := range prev.ChildCount() {
					cell := prev.Child(i)
					if rowspan(cell) > row-j {
						rowWidth = addSpan(rowWidth, colspan(cell))
					}
				}
			}
		}
		for i := range rowNode.ChildCount() {
			cell := rowNode.Child(i)
			rowWidth = addSpan(rowWidth, colspan(cell))
			if rowspan(cell) > 1 {
				hasRowspan = true
			}
		}
		width = max(width, rowWidth)
	}
	return max(width, 0)
}

func addSpan(width, span int) int {
	return min(width, MaxMapSlots+1) + min(span, MaxMapSlots+1)
}

func (tm *TableMap) findBadColWidths(votes []colWidthVote, table *model.Node) {
	var found []Problem
	seen := make(map[int]bool)
	for i, pos := range tm.Map {
		if pos == 0 || seen[pos] {
			continue
		}
		seen[pos] = true
		node := table.NodeAt(pos)
		if node == nil {
			continue
		}
		cw := node.Attrs().Ints(AttrColwidth)
		var updated []int
		for j := range colspan(node) {
			v := votes[(i+j)%tm.Width]
			if v.count == 0 || (j < len(cw) && cw[j] == v.width) {
				continue
			}
			if updated == nil {
				updated = make([]int, colspan(node))
				copy(updated, cw)
			}
			updated[j] = v.width
		}
		if updated != nil {
			found = append(found, Problem{Kind: ProblemKindColwidthMismatch, Pos: pos, Colwidth: updated})
		}
	}
	tm.Problems = append(found, tm.Problems...)
}

// FindCell returns rectangle covered by the cell at table-relative offset.
func (tm *TableMap) FindCell(pos int) (Rect, error) {
	if pos <= 0 {
		return Rect{}, fmt.Errorf("%w %d", ErrCellNotFound, pos)
	}
	for i, cur := range tm.Map {
		if cur != pos {
			continue
		}
		left, top := i%tm.Width, i/tm.Width
		right, bottom := left+1, top+1
		for j := 1; right < tm.Width && tm.Map[i+j] == cur; j++ {
			right++
		}
		for j := 1; bottom < tm.Height && tm.Map[i+tm.Width*j] == cur; j++ {
			bottom++
		}
		return Rect{Left: left, Top: top, Right: right, Bottom: bottom}, nil
	}
	return Rect{}, fmt.Errorf("%w %d", ErrCellNotFound, pos)
}

// ColCount returns leftmost column of the cell at offset.
func (tm *TableMap) ColCount(pos int) (int, error) {
	if pos <= 0 {
		return 0, fmt.Errorf("%w %d", ErrCellNotFound, pos)
	}
	for i, cur := range tm.Map {
		if cur == pos {
			return i % tm.Width, nil
		}
	}
	return 0, fmt.Errorf("%w %d", ErrCellNotFound, pos)
}

// NextCell returns offset of the adjacent cell in direction dir along axis.
// ok is false at the table edge.
func (tm *TableMap) NextCell(pos int, axis Axis, dir int) (next int, ok bool, err error) {
	r, err := tm.FindCell(pos)
	if err != nil {
		return 0, false, err
	}
	switch axis {
	case AxisHoriz:
		if (dir < 0 && r.Left == 0) || (dir >= 0 && r.Right == tm.Width) {
			return 0, false, nil
		}
		col := r.Right
		if dir < 0 {
			col = r.Left - 1
		}
		next = tm.Map[r.Top*tm.Width+col]
	default:
		if (dir < 0 && r.Top == 0) || (dir >= 0 && r.Bottom == tm.Height) {
			return 0, false, nil
		}
		row := r.Bottom
		if dir < 0 {
			row = r.Top - 1
		}
		next = tm.Map[r.Left+tm.Width*row]
	}
	return next, next != 0, nil
}

// RectBetween returns the smallest rectangle containing both cells.
func (tm *TableMap) RectBetween(a, b int) (Rect, error) {
	ra, err := tm.FindCell(a)
	if err != nil {
		return Rect{}, err
	}
	rb, err := tm.FindCell(b)
	if err != nil {
		return Rect{}, err
	}
	return Rect{
		Left:   min(ra.Left, rb.Left),
		Top:    min(ra.Top, rb.Top),
		Right:  max(ra.Right, rb.Right),
		Bottom: max(ra.Bottom, rb.Bottom),
	}, nil
}

// CellsInRect returns offsets of cells whose top-left corner is inside rect,
// in row-major order. Cells entering rect from the left or from above are
// excluded.
func (tm *TableMap) CellsInRect(rect Rect) []int {
	var res []int
	seen := make(map[int]bool)
	for row := rect.Top; row < rect.Bottom; row++ {
		for col := rect.Left; col < rect.Right; col++ {
			index := row*tm.Width + col
			pos := tm.Map[index]
			if pos == 0 || seen[pos] {
				continue
			}
			seen[pos] = true
			if (col == rect.Left && col > 0 && tm.Map[index-1] == pos) ||
				(row == rect.Top && row > 0 && tm.Map[index-tm.Width] == pos) {
				continue
			}
			res = append(res, pos)
		}
	}
	return res
}

// PositionAt returns table-relative offset where a cell placed at row and col
// would start. Slots covered by cells from previous rows are skipped, the end
// of row is returned when nothing follows.
func (tm *TableMap) PositionAt(row, col int, table *model.Node) int {
	rowStart := 0
	for i := range table.ChildCount() {
		rowEnd := rowStart + table.Child(i).NodeSize()
		if i == row {
			index := col + row*tm.Width
			rowEndIndex := (row + 1) * tm.Width
			for index < rowEndIndex && (tm.Map[index] < rowStart || tm.Map[index] == 0) {
				index++
			}
			if index == rowEndIndex {
				return rowEnd - 1
			}
			return tm.Map[index]
		}
		rowStart = rowEnd
	}
	return rowStart
}

// HasProblems reports whether the table needs fixing.
func (tm *TableMap) HasProblems() bool {
	return len(tm.Problems) > 0
}
