package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"tabular/common"
	"tabular/editor"
	"tabular/model"
	"tabular/state"
	"tabular/tables"
	"tabular/xmldoc"
)

var errNotApplicable = errors.New("operation is not applicable to selection")

// CellRef addresses table slot by row and column.
type CellRef struct {
	Row, Col int
}

func (c CellRef) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// ParseCellRef parses "row:col".
func ParseCellRef(s string) (CellRef, error) {
	r, c, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return CellRef{}, fmt.Errorf("cell reference %q is not in row:col form", s)
	}
	row, err := strconv.Atoi(r)
	if err != nil {
		return CellRef{}, fmt.Errorf("bad row in cell reference %q: %w", s, err)
	}
	col, err := strconv.Atoi(c)
	if err != nil {
		return CellRef{}, fmt.Errorf("bad column in cell reference %q: %w", s, err)
	}
	if row < 0 || col < 0 {
		return CellRef{}, fmt.Errorf("cell reference %q is negative", s)
	}
	return CellRef{Row: row, Col: col}, nil
}

// EditRequest describes single structural edit. Selection spans from Anchor
// to Head cells of the Table-th table of the document.
type EditRequest struct {
	Op     common.EditOp
	Table  int
	Anchor CellRef
	Head   CellRef
	Value  string
}

// Edit is the action of edit command.
func Edit(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("edit")

	src, dst, err := sourceAndDestination(cmd, log)
	if err != nil {
		return err
	}
	req, err := requestFromCommand(cmd)
	if err != nil {
		return err
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	setCodePage(env, cmd.String("force-zip-cp"), log)

	log.Info("Editing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("op", req.Op))
	defer func(start time.Time) {
		log.Info("Editing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return edit(ctx, src, dst, req, log)
}

func requestFromCommand(cmd *cli.Command) (EditRequest, error) {
	op, err := common.ParseEditOp(cmd.String("op"))
	if err != nil {
		return EditRequest{}, fmt.Errorf("unknown operation, expected one of %s: %w", strings.Join(common.EditOpNames(), ", "), err)
	}
	req := EditRequest{Op: op, Table: int(cmd.Int("table")), Value: cmd.String("value")}
	if req.Anchor, err = ParseCellRef(cmd.String("anchor")); err != nil {
		return EditRequest{}, err
	}
	req.Head = req.Anchor
	if h := cmd.String("head"); h != "" {
		if req.Head, err = ParseCellRef(h); err != nil {
			return EditRequest{}, err
		}
	}
	if op.NeedsValue() && req.Value == "" {
		return EditRequest{}, fmt.Errorf("operation %s requires value", op)
	}
	return req, nil
}

func edit(ctx context.Context, src, dst string, req EditRequest, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)
	return walk(ctx, src, func(ctx context.Context, r io.Reader, name string, log *zap.Logger) error {
		d, err := loadDocument(ctx, r, name, log)
		if err != nil {
			return err
		}
		if err := applyEdit(env, d, req, log); err != nil {
			return err
		}
		return saveDocument(ctx, d, buildOutputPath(d, name, dst, env), log)
	}, log)
}

// cellPos returns document position of the cell covering slot c.
func cellPos(ref TableRef, tm *tables.TableMap, c CellRef) (int, error) {
	if c.Row >= tm.Height || c.Col >= tm.Width {
		return 0, fmt.Errorf("cell %s is outside of %dx%d table", c, tm.Height, tm.Width)
	}
	offset := tm.Map[c.Row*tm.Width+c.Col]
	if offset == 0 {
		return 0, fmt.Errorf("no cell at %s", c)
	}
	return ref.Pos + 1 + offset, nil
}

// applyEdit runs requested command on the document, repairing touched tables
// afterwards when configured.
func applyEdit(env *state.LocalEnv, d *Document, req EditRequest, log *zap.Logger) error {
	ref, err := d.Table(req.Table)
	if err != nil {
		return err
	}
	tm, err := tables.GetMap(ref.Node)
	if err != nil {
		return err
	}
	anchor, err := cellPos(ref, tm, req.Anchor)
	if err != nil {
		return err
	}
	head, err := cellPos(ref, tm, req.Head)
	if err != nil {
		return err
	}
	sel, err := tables.CellSelectionCreate(d.Root, anchor, head)
	if err != nil {
		return err
	}

	command, err := editCommand(env, req, ref.Node, tm)
	if err != nil {
		return err
	}

	st := editor.NewState(d.Root, sel)
	var result *editor.Transaction
	ok, err := command(st, func(tr *editor.Transaction) { result = tr })
	if err != nil {
		return fmt.Errorf("%s: %w", req.Op, err)
	}
	if !ok || result == nil {
		return fmt.Errorf("%s at %s-%s: %w", req.Op, req.Anchor, req.Head, errNotApplicable)
	}
	next := st.Apply(result)
	log.Debug("Edit applied", zap.Stringer("op", req.Op), zap.Int("steps", result.StepCount()))

	if env.Cfg.Tables.FixAfterEdit {
		fixed, steps, err := settle(next, st, log)
		if err != nil {
			return err
		}
		if steps > 0 {
			log.Info("Tables repaired after edit", zap.Int("steps", steps))
		}
		next = fixed
	}
	d.Root = next.Doc
	return nil
}

func editCommand(env *state.LocalEnv, req EditRequest, table *model.Node, tm *tables.TableMap) (tables.Command, error) {
	switch req.Op {
	case common.EditOpAddColumnBefore:
		return tables.AddColumnBefore, nil
	case common.EditOpAddColumnAfter:
		return tables.AddColumnAfter, nil
	case common.EditOpDeleteColumn:
		return tables.DeleteColumn, nil
	case common.EditOpAddRowBefore:
		return tables.AddRowBefore, nil
	case common.EditOpAddRowAfter:
		return tables.AddRowAfter, nil
	case common.EditOpDeleteRow:
		return tables.DeleteRow, nil
	case common.EditOpMergeCells:
		return tables.MergeCells, nil
	case common.EditOpSplitCell:
		if env.Cfg.Tables.SplitCells == common.SplitCellTypeHeaderEdges {
			types, err := tables.TableNodeTypes(table.Type().Schema())
			if err != nil {
				return nil, err
			}
			return tables.SplitCellWithType(headerEdges(types, tm, table)), nil
		}
		return tables.SplitCell, nil
	case common.EditOpToggleHeaderRow:
		return tables.ToggleHeader(tables.HeaderKindRow), nil
	case common.EditOpToggleHeaderColumn:
		return tables.ToggleHeader(tables.HeaderKindColumn), nil
	case common.EditOpToggleHeaderCell:
		return tables.ToggleHeader(tables.HeaderKindCell), nil
	case common.EditOpSetCellAttr:
		name, value, ok := strings.Cut(req.Value, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("attribute value %q is not in name=value form", req.Value)
		}
		types, err := tables.TableNodeTypes(table.Type().Schema())
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		v, err := xmldoc.ParseAttr(types.Cell, name, value)
		if err != nil {
			return nil, err
		}
		return tables.SetCellAttr(name, v), nil
	case common.EditOpSetColumnWidth:
		width, err := strconv.Atoi(strings.TrimSpace(req.Value))
		if err != nil {
			return nil, fmt.Errorf("bad column width %q: %w", req.Value, err)
		}
		return tables.SetColumnWidth(width), nil
	case common.EditOpResizeColumn:
		percent, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(req.Value), "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("bad column percentage %q: %w", req.Value, err)
		}
		return tables.ResizeColumn(req.Anchor.Col, percent), nil
	case common.EditOpDeleteTable:
		return tables.DeleteTable, nil
	case common.EditOpDeleteCellSelection:
		return tables.DeleteCellSelection, nil
	}
	return nil, fmt.Errorf("unsupported operation %s", req.Op)
}

// headerEdges makes cells split off a spanning cell headers when they land in
// a header row or a header column of the table as it was before the split.
func headerEdges(types tables.NodeTypes, tm *tables.TableMap, table *model.Node) tables.CellTypeFunc {
	return func(_ *model.Node, row, col int) *model.NodeType {
		if ok, err := tables.RowIsHeader(tm, table, row); err == nil && ok {
			return types.HeaderCell
		}
		if ok, err := tables.ColumnIsHeader(tm, table, col); err == nil && ok {
			return types.HeaderCell
		}
		return types.Cell
	}
}

func sourceAndDestination(cmd *cli.Command, log *zap.Logger) (string, string, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return "", "", errNoSource
	}
	src, err := filepath.Abs(src)
	if err != nil {
		return "", "", err
	}
	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = "."
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return "", "", fmt.Errorf("unable to get destination directory: %w", err)
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	return src, dst, nil
}
