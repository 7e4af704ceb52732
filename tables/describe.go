package tables

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"tabular/model"
	"tabular/utils/debug"
)

// Describe writes human readable report of a table found at document
// position tablePos: its size, problems and grid of cell offsets.
func Describe(w io.Writer, table *model.Node, tablePos int) error {
	tm, err := GetMap(table)
	if err != nil {
		return err
	}
	tw := debug.NewTreeWriter()
	tw.Line(0, "table@%d %dx%d", tablePos, tm.Width, tm.Height)
	if widths := table.Attrs().Floats(AttrColwidths); len(widths) > 0 {
		tw.Line(1, "colwidths: %v", widths)
	}
	if len(tm.Problems) == 0 {
		tw.Line(1, "problems: none")
	} else {
		tw.Line(1, "problems: %d", len(tm.Problems))
		for _, p := range tm.Problems {
			tw.Line(2, "%s", p)
		}
	}
	if _, err := io.WriteString(w, tw.String()); err != nil {
		return err
	}
	if tm.Width == 0 || tm.Height == 0 {
		return nil
	}

	grid := tablewriter.NewTable(w)
	header := make([]any, 0, tm.Width+1)
	header = append(header, "")
	for col := range tm.Width {
		header = append(header, strconv.Itoa(col))
	}
	grid.Header(header...)
	for row := range tm.Height {
		line := make([]any, 0, tm.Width+1)
		line = append(line, strconv.Itoa(row))
		for col := range tm.Width {
			line = append(line, slotLabel(tm, table, row, col))
		}
		if err := grid.Append(line...); err != nil {
			return fmt.Errorf("unable to render row %d: %w", row, err)
		}
	}
	return grid.Render()
}

// slotLabel shows cell offset at its top-left slot and arrows pointing to it
// from the slots it spans over.
func slotLabel(tm *TableMap, table *model.Node, row, col int) string {
	index := row*tm.Width + col
	pos := tm.Map[index]
	switch {
	case pos == 0:
		return "."
	case col > 0 && tm.Map[index-1] == pos:
		return "<"
	case row > 0 && tm.Map[index-tm.Width] == pos:
		return "^"
	}
	cell := table.NodeAt(pos)
	label := strconv.Itoa(pos)
	if cell.Type().TableRole() == model.RoleHeaderCell {
		label += " th"
	}
	if text := strings.TrimSpace(cell.TextContent()); text != "" {
		if r := []rune(text); len(r) > 12 {
			text = string(r[:12]) + "…"
		}
		label += " " + text
	}
	return label
}
