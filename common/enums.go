// Package common holds enums shared by configuration and command line.
package common

// Structural edit applied by edit command.
// ENUM(add-column-before, add-column-after, delete-column, add-row-before, add-row-after, delete-row, merge-cells, split-cell, toggle-header-row, toggle-header-column, toggle-header-cell, set-cell-attr, set-column-width, resize-column, delete-table, delete-cell-selection)
type EditOp int

// NeedsValue reports whether operation takes --value argument.
func (op EditOp) NeedsValue() bool {
	switch op {
	case EditOpSetCellAttr, EditOpSetColumnWidth, EditOpResizeColumn:
		return true
	}
	return false
}

// Node type given to cells produced by splitting a spanning cell.
// ENUM(inherit, header-edges)
type SplitCellType int
