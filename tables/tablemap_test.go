package tables

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tabular/model"
)

func TestComputeMap(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]cellDef
		width    int
		height   int
		grid     []int
		problems []Problem
	}{
		{
			name:   "plain",
			rows:   [][]cellDef{{td("A1"), td("B1")}, {td("A2"), td("B2")}},
			width:  2,
			height: 2,
			grid:   []int{1, 7, 15, 21},
		},
		{
			name:   "spans",
			rows:   [][]cellDef{{span("AA", 2, 1), span("CC", 1, 2)}, {td("DD"), td("EE")}},
			width:  3,
			height: 2,
			grid:   []int{1, 1, 7, 15, 21, 7},
		},
		{
			name:   "collision and missing",
			rows:   [][]cellDef{{td("AA"), span("BB", 1, 2), td("CC")}, {span("DD", 2, 1), td("EE")}},
			width:  4,
			height: 2,
			grid:   []int{1, 7, 13, 0, 21, 7, 27, 0},
			problems: []Problem{
				{Kind: ProblemKindMissing, Row: 0, N: 1},
				{Kind: ProblemKindCollision, Row: 1, Pos: 21, N: 1},
				{Kind: ProblemKindMissing, Row: 1, N: 1},
			},
		},
		{
			name:     "overlong rowspan",
			rows:     [][]cellDef{{span("AA", 1, 3), td("BB")}, {td("CC")}},
			width:    2,
			height:   2,
			grid:     []int{1, 7, 1, 15},
			problems: []Problem{{Kind: ProblemKindOverlongRowspan, Pos: 1, N: 1}},
		},
		{
			name: "colwidth mismatch",
			rows: [][]cellDef{
				{td("A1").with(AttrColwidth, []int{100}), td("B1").with(AttrColwidth, []int{200})},
				{td("A2").with(AttrColwidth, []int{100}), td("B2").with(AttrColwidth, []int{150})},
			},
			width:    2,
			height:   2,
			grid:     []int{1, 7, 15, 21},
			problems: []Problem{{Kind: ProblemKindColwidthMismatch, Pos: 7, Colwidth: []int{150}}},
		},
		{
			name:     "zero sized",
			rows:     [][]cellDef{{}},
			width:    0,
			height:   1,
			grid:     []int{},
			problems: []Problem{{Kind: ProblemKindZeroSized}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := mustMap(t, buildTable(t, nil, tt.rows...))
			if tm.Width != tt.width || tm.Height != tt.height {
				t.Fatalf("size = %dx%d, want %dx%d", tm.Width, tm.Height, tt.width, tt.height)
			}
			if diff := cmp.Diff(tt.grid, tm.Map); diff != "" {
				t.Errorf("map mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.problems, tm.Problems); diff != "" {
				t.Errorf("problems mismatch (-want +got):\n%s", diff)
			}
			if tm.HasProblems() != (len(tt.problems) > 0) {
				t.Errorf("HasProblems() = %v", tm.HasProblems())
			}
		})
	}
}

func TestComputeMapNotTable(t *testing.T) {
	_, err := ComputeMap(para(DefaultSchema(), "x"))
	if !errors.Is(err, ErrNotTable) {
		t.Fatalf("ComputeMap() error = %v, want ErrNotTable", err)
	}
}

func TestFindCell(t *testing.T) {
	tm := mustMap(t, buildTable(t, nil,
		[]cellDef{span("AA", 2, 1), span("CC", 1, 2)},
		[]cellDef{td("DD"), td("EE")},
	))
	tests := []struct {
		pos  int
		want Rect
	}{
		{1, Rect{Left: 0, Top: 0, Right: 2, Bottom: 1}},
		{7, Rect{Left: 2, Top: 0, Right: 3, Bottom: 2}},
		{15, Rect{Left: 0, Top: 1, Right: 1, Bottom: 2}},
		{21, Rect{Left: 1, Top: 1, Right: 2, Bottom: 2}},
	}
	for _, tt := range tests {
		got, err := tm.FindCell(tt.pos)
		if err != nil {
			t.Fatalf("FindCell(%d) error = %v", tt.pos, err)
		}
		if got != tt.want {
			t.Errorf("FindCell(%d) = %s, want %s", tt.pos, got, tt.want)
		}
	}
	if _, err := tm.FindCell(99); !errors.Is(err, ErrCellNotFound) {
		t.Errorf("FindCell(99) error = %v, want ErrCellNotFound", err)
	}
	if col, err := tm.ColCount(21); err != nil || col != 1 {
		t.Errorf("ColCount(21) = %d, %v", col, err)
	}
	if _, err := tm.ColCount(2); !errors.Is(err, ErrCellNotFound) {
		t.Errorf("ColCount(2) error = %v, want ErrCellNotFound", err)
	}
}

func TestCellsInRect(t *testing.T) {
	tm := mustMap(t, buildTable(t, nil,
		[]cellDef{span("AA", 2, 1), span("CC", 1, 2)},
		[]cellDef{td("DD"), td("EE")},
	))
	tests := []struct {
		name string
		rect Rect
		want []int
	}{
		{"whole", Rect{0, 0, 3, 2}, []int{1, 7, 15, 21}},
		{"entering from left", Rect{1, 0, 3, 2}, []int{7, 21}},
		{"entering from above", Rect{0, 1, 3, 2}, []int{15, 21}},
		{"single", Rect{1, 1, 2, 2}, []int{21}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tm.CellsInRect(tt.rect)); diff != "" {
				t.Errorf("CellsInRect(%s) mismatch (-want +got):\n%s", tt.rect, diff)
			}
		})
	}

	// every cell of a consistent table is found back at its own rectangle
	for _, pos := range tm.CellsInRect(Rect{0, 0, tm.Width, tm.Height}) {
		r, err := tm.FindCell(pos)
		if err != nil {
			t.Fatalf("FindCell(%d) error = %v", pos, err)
		}
		if got := tm.CellsInRect(r); len(got) != 1 || got[0] != pos {
			t.Errorf("CellsInRect(FindCell(%d)) = %v", pos, got)
		}
	}
}

func TestPositionAt(t *testing.T) {
	table := buildTable(t, nil,
		[]cellDef{span("AA", 2, 1), span("CC", 1, 2)},
		[]cellDef{td("DD"), td("EE")},
	)
	tm := mustMap(t, table)
	tests := []struct {
		row, col, want int
	}{
		{0, 0, 1},
		{0, 2, 7},
		{1, 0, 15},
		{1, 1, 21},
		// only the cell spanning from above is left, end of row
		{1, 2, 27},
	}
	for _, tt := range tests {
		if got := tm.PositionAt(tt.row, tt.col, table); got != tt.want {
			t.Errorf("PositionAt(%d, %d) = %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestTableMapNextCell(t *testing.T) {
	tm := mustMap(t, buildTable(t, nil,
		[]cellDef{td("A1"), td("B1")},
		[]cellDef{td("A2"), td("B2")},
	))
	tests := []struct {
		pos  int
		axis Axis
		dir  int
		want int
		ok   bool
	}{
		{1, AxisHoriz, 1, 7, true},
		{7, AxisHoriz, 1, 0, false},
		{7, AxisHoriz, -1, 1, true},
		{1, AxisVert, 1, 15, true},
		{15, AxisVert, -1, 1, true},
		{21, AxisVert, 1, 0, false},
	}
	for _, tt := range tests {
		got, ok, err := tm.NextCell(tt.pos, tt.axis, tt.dir)
		if err != nil {
			t.Fatalf("NextCell(%d, %s, %d) error = %v", tt.pos, tt.axis, tt.dir, err)
		}
		if got != tt.want || ok != tt.ok {
			t.Errorf("NextCell(%d, %s, %d) = %d, %v, want %d, %v", tt.pos, tt.axis, tt.dir, got, ok, tt.want, tt.ok)
		}
	}
	rect, err := tm.RectBetween(7, 15)
	if err != nil {
		t.Fatalf("RectBetween() error = %v", err)
	}
	if want := (Rect{0, 0, 2, 2}); rect != want {
		t.Errorf("RectBetween(7, 15) = %s, want %s", rect, want)
	}
}

func TestMapCache(t *testing.T) {
	t1 := buildTable(t, nil, []cellDef{td("a")})
	t2 := buildTable(t, nil, []cellDef{td("b")})
	t3 := buildTable(t, nil, []cellDef{td("c")})

	c := NewMapCache(2)
	m1, err := c.Get(t1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	again, _ := c.Get(t1)
	if m1 != again {
		t.Errorf("second Get() computed new map")
	}
	// equal table built separately shares the entry
	same, _ := c.Get(buildTable(t, nil, []cellDef{td("a")}))
	if same != m1 {
		t.Errorf("Get() of equal table computed new map")
	}
	if _, err := c.Get(t2); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, err := c.Get(t3); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() after overflow = %d, want 1", c.Len())
	}

	off := NewMapCache(0)
	if _, err := off.Get(t1); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if off.Len() != 0 {
		t.Errorf("disabled cache Len() = %d", off.Len())
	}
}

func TestDescribe(t *testing.T) {
	var buf strings.Builder
	table := buildTable(t, model.Attrs{AttrColwidths: []float64{40, 60}},
		[]cellDef{th("A1"), td("B1")},
		[]cellDef{td("A2"), td("B2")},
	)
	if err := Describe(&buf, table, 0); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"table@0 2x2", "colwidths: [40 60]", "problems: none", "1 th A1", "21 B2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Describe() output has no %q:\n%s", want, out)
		}
	}
}

func TestFindCellEmptySlot(t *testing.T) {
	// second row is one cell short, its last slot holds 0
	tm := mustMap(t, buildTable(t, nil,
		[]cellDef{td("A1"), td("B1")},
		[]cellDef{td("A2")},
	))
	if diff := cmp.Diff([]int{1, 7, 15, 0}, tm.Map); diff != "" {
		t.Fatalf("map mismatch (-want +got):\n%s", diff)
	}
	for _, pos := range []int{0, -1} {
		if r, err := tm.FindCell(pos); !errors.Is(err, ErrCellNotFound) {
			t.Errorf("FindCell(%d) = %v, %v, want ErrCellNotFound", pos, r, err)
		}
		if _, err := tm.ColCount(pos); !errors.Is(err, ErrCellNotFound) {
			t.Errorf("ColCount(%d) error = %v, want ErrCellNotFound", pos, err)
		}
	}
}

func TestComputeMapTooLarge(t *testing.T) {
	tests := []struct {
		name string
		rows [][]cellDef
	}{
		{"overflowing colspan", [][]cellDef{
			{span("a", 1<<62, 1)}, {td("b")}, {td("c")}, {td("d")},
		}},
		{"spans summing past limit", [][]cellDef{
			{span("a", MaxMapSlots/2, 1), span("b", MaxMapSlots/2, 1)}, {td("c")},
		}},
		{"overflowing sum", [][]cellDef{
			{span("a", 1<<62, 1), span("b", 1<<62, 1), span("c", 1<<62, 1)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, err := ComputeMap(buildTable(t, nil, tt.rows...))
			if !errors.Is(err, ErrTableTooLarge) {
				t.Errorf("ComputeMap() = %v, %v, want ErrTableTooLarge", tm, err)
			}
		})
	}

	// a wide single row is still fine
	tm := mustMap(t, buildTable(t, nil, []cellDef{span("a", 1000, 1)}))
	if tm.Width != 1000 || tm.HasProblems() {
		t.Errorf("map %dx%d, problems %v", tm.Width, tm.Height, tm.Problems)
	}
}
