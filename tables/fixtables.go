package tables

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"tabular/editor"
	"tabular/model"
)

// MetaFixTables marks transactions produced by FixTables.
const MetaFixTables = "fix_tables"

// FixTables inspects tables of state and returns transaction repairing their
// structural problems, nil when nothing needs fixing. With oldState only
// parts of the document which changed since then are inspected.
func FixTables(state, oldState *editor.State, log *zap.Logger) (*editor.Transaction, error) {
	var (
		tr      *editor.Transaction
		failure error
	)
	check := func(node *model.Node, pos int, _ *model.Node, _ int) bool {
		if failure != nil {
			return false
		}
		if node.Type().TableRole() == model.RoleTable {
			tr, failure = FixTable(state, node, pos, tr, log)
		}
		return true
	}
	switch {
	case oldState == nil:
		state.Doc.Descendants(check)
	case oldState.Doc != state.Doc:
		changedDescendants(oldState.Doc, state.Doc, 0, check)
	}
	if failure != nil {
		return nil, failure
	}
	return tr, nil
}

// changedDescendants calls fn for nodes of cur which are not present in old,
// looking for moved nodes a few children ahead.
func changedDescendants(old, cur *model.Node, offset int, fn func(*model.Node, int, *model.Node, int) bool) {
	oldSize, curSize := old.ChildCount(), cur.ChildCount()
outer:
	for i, j := 0, 0; i < curSize; i++ {
		child := cur.Child(i)
		for scan, e := j, min(oldSize, i+3); scan < e; scan++ {
			if old.Child(scan) == child {
				j = scan + 1
				offset += child.NodeSize()
				continue outer
			}
		}
		if fn(child, offset, cur, i) {
			if j < oldSize && old.Child(j).SameMarkup(child) {
				changedDescendants(old.Child(j), child, offset+1, fn)
			} else {
				child.NodesBetween(0, child.Content().Size(), fn, offset+1)
			}
		}
		offset += child.NodeSize()
	}
}

// FixTable adds steps repairing problems of table at tablePos to tr, creating
// it when nil. Positions refer to state document and are mapped through tr.
func FixTable(state *editor.State, table *model.Node, tablePos int, tr *editor.Transaction, log *zap.Logger) (*editor.Transaction, error) {
	tm, err := GetMap(table)
	if err != nil {
		return tr, err
	}
	if !tm.HasProblems() {
		return tr, nil
	}
	types, err := TableNodeTypes(state.Schema())
	if err != nil {
		return tr, err
	}
	if tr == nil {
		tr = state.Tr()
	}
	tr.SetMeta(MetaFixTables, true)

	mustAdd := make([]int, tm.Height)
	pending := make(map[int]model.Attrs)
	attrsOf := func(pos int) model.Attrs {
		if a, ok := pending[pos]; ok {
			return a
		}
		return table.NodeAt(pos).Attrs()
	}
	fixed := make(map[int]bool)
	for _, p := range tm.Problems {
		log.Debug("Fixing table", zap.Int("table", tablePos), zap.Stringer("problem", p))
		switch p.Kind {
		case ProblemKindCollision:
			cell := table.NodeAt(p.Pos)
			if !isCell(cell) || fixed[p.Pos] {
				continue
			}
			fixed[p.Pos] = true
			attrs, err := tm.shrinkCollided(cell, p, attrsOf(p.Pos), mustAdd)
			if err != nil {
				return tr, err
			}
			pending[p.Pos] = attrs
		case ProblemKindMissing:
			mustAdd[p.Row] += p.N
		case ProblemKindOverlongRowspan:
			cell := table.NodeAt(p.Pos)
			if !isCell(cell) {
				continue
			}
			attrs := attrsOf(p.Pos)
			pending[p.Pos] = attrs.With(AttrRowspan, min(max(attrs.Int(AttrRowspan), 1), rowspan(cell)-p.N))
		case ProblemKindColwidthMismatch:
			cell := table.NodeAt(p.Pos)
			if !isCell(cell) {
				continue
			}
			attrs := attrsOf(p.Pos)
			cw := p.Colwidth
			if n := max(attrs.Int(AttrColspan), 1); n < len(cw) {
				cw = cw[:n]
			}
			pending[p.Pos] = attrs.With(AttrColwidth, cw)
		case ProblemKindZeroSized:
			pos := tr.Mapping().Map(tablePos)
			return tr, tr.Delete(pos, pos+table.NodeSize())
		}
	}
	for _, pos := range slices.Sorted(maps.Keys(pending)) {
		if err := tr.SetNodeMarkup(tr.Mapping().Map(tablePos+1+pos), nil, pending[pos]); err != nil {
			return tr, err
		}
	}

	first, last := -1, -1
	for i, n := range mustAdd {
		if n > 0 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	for i, pos := 0, tablePos+1; i < tm.Height; i++ {
		row := table.Child(i)
		end := pos + row.NodeSize()
		if add := mustAdd[i]; add > 0 {
			typ := types.Cell
			if fc := row.FirstChild(); fc != nil && fc.Type().TableRole() == model.RoleHeaderCell {
				typ = types.HeaderCell
			}
			nodes := make([]*model.Node, add)
			for j := range nodes {
				nodes[j] = typ.CreateAndFill(nil)
			}
			// a run of rows short of cells on the left side looks like a bite
			// taken out of the table, fill it at the row start
			side := end - 1
			if (i == 0 || first == i-1) && last == i {
				side = pos + 1
			}
			if err := tr.Insert(tr.Mapping().Map(side), nodes...); err != nil {
				return tr, err
			}
		}
		pos = end
	}
	return tr, nil
}

// shrinkCollided cuts colspan of cell down to the columns it holds in its
// first row. Lower rows of the cell collide only where the first one does.
// Slots given up by the cell are added to mustAdd of their rows.
func (tm *TableMap) shrinkCollided(cell *model.Node, p Problem, attrs model.Attrs, mustAdd []int) (model.Attrs, error) {
	left := -1
	for col := range tm.Width {
		if tm.Map[p.Row*tm.Width+col] == p.Pos {
			left = col
			break
		}
	}
	if left < 0 {
		return nil, fmt.Errorf("%w %d", ErrCellNotFound, p.Pos)
	}
	cs, rows := colspan(cell), min(rowspan(cell), tm.Height-p.Row)
	held := func(h, w int) bool {
		return left+w < tm.Width && tm.Map[(p.Row+h)*tm.Width+left+w] == p.Pos
	}

	keep := 0
	for keep < cs && held(0, keep) {
		keep++
	}
	for h := range rows {
		for w := keep; w < cs; w++ {
			if held(h, w) {
				mustAdd[p.Row+h]++
			}
		}
	}
	if keep == cs {
		return attrs, nil
	}
	return RemoveColSpan(attrs.With(AttrColspan, cs), keep, cs-keep)
}
