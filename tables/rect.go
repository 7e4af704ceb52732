package tables

import (
	"fmt"

	"tabular/model"
)

// Rect is a half-open rectangle of grid slots.
type Rect struct {
	Left, Top, Right, Bottom int
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

func (r Rect) Contains(row, col int) bool {
	return row >= r.Top && row < r.Bottom && col >= r.Left && col < r.Right
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d)x[%d,%d)", r.Top, r.Bottom, r.Left, r.Right)
}

// TableRect is a selected rectangle with the table it belongs to.
type TableRect struct {
	Rect
	// TableStart is document position of the table content start.
	TableStart int
	Map        *TableMap
	Table      *model.Node
}

// TablePos is document position of the table node.
func (r TableRect) TablePos() int {
	return r.TableStart - 1
}
