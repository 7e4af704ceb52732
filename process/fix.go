package process

import (
	"context"
	"io"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"tabular/editor"
	"tabular/state"
	"tabular/tables"
)

// Fix is the action of fix command.
func Fix(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("fix")

	src, dst, err := sourceAndDestination(cmd, log)
	if err != nil {
		return err
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	setCodePage(env, cmd.String("force-zip-cp"), log)

	log.Info("Fixing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Fixing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return fix(ctx, src, dst, log)
}

func fix(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)
	return walk(ctx, src, func(ctx context.Context, r io.Reader, name string, log *zap.Logger) error {
		d, err := loadDocument(ctx, r, name, log)
		if err != nil {
			return err
		}
		if err := repair(d, log); err != nil {
			return err
		}
		return saveDocument(ctx, d, buildOutputPath(d, name, dst, env), log)
	}, log)
}

// repair fixes structural problems of every table in the document.
func repair(d *Document, log *zap.Logger) error {
	st, steps, err := settle(d.State(), nil, log)
	if err != nil {
		return err
	}
	if steps == 0 {
		log.Debug("No table problems found", zap.Int("tables", len(d.Tables())))
		return nil
	}
	d.Root = st.Doc
	log.Info("Tables repaired", zap.Int("problems", d.Problems), zap.Int("steps", steps))
	return nil
}

// maxRepairPasses bounds repeated repairs of tables where fixing one problem
// exposes another.
const maxRepairPasses = 4

// settle applies FixTables until nothing is left to fix. Passes after the
// first inspect only tables changed by the previous one.
func settle(st, old *editor.State, log *zap.Logger) (*editor.State, int, error) {
	steps := 0
	for range maxRepairPasses {
		tr, err := tables.FixTables(st, old, log)
		if err != nil {
			return nil, steps, err
		}
		if tr == nil {
			return st, steps, nil
		}
		steps += tr.StepCount()
		old, st = st, st.Apply(tr)
	}
	if tr, err := tables.FixTables(st, old, log); err == nil && tr != nil {
		log.Warn("Tables still have problems after repair", zap.Int("passes", maxRepairPasses))
	}
	return st, steps, nil
}

// setCodePage forces archaic code page for file names in old archives since
// zip does not define name encoding.
func setCodePage(env *state.LocalEnv, cp string, log *zap.Logger) {
	if len(cp) == 0 {
		return
	}
	enc, err := ianaindex.IANA.Encoding(cp)
	if err != nil || enc == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		env.CodePage = nil
		return
	}
	env.CodePage = enc
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
}
