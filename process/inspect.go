package process

import (
	"context"
	"fmt"
	"io"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"tabular/state"
	"tabular/tables"
)

// Inspect is the action of inspect command. It prints table maps and
// problems of every document found.
func Inspect(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("inspect")

	src, _, err := sourceAndDestination(cmd, log)
	if err != nil {
		return err
	}
	setCodePage(env, cmd.String("force-zip-cp"), log)

	return inspect(ctx, src, cmd.Root().Writer, log)
}

func inspect(ctx context.Context, src string, w io.Writer, log *zap.Logger) error {
	return walk(ctx, src, func(ctx context.Context, r io.Reader, name string, log *zap.Logger) error {
		d, err := loadDocument(ctx, r, name, log)
		if err != nil {
			return err
		}
		return describeDocument(w, d)
	}, log)
}

func describeDocument(w io.Writer, d *Document) error {
	refs := d.Tables()
	if _, err := fmt.Fprintf(w, "%s id=%s tables=%d problems=%d\n", d.SrcName, d.ID(), len(refs), d.Problems); err != nil {
		return err
	}
	for _, ref := range refs {
		if err := tables.Describe(w, ref.Node, ref.Pos); err != nil {
			return fmt.Errorf("unable to describe table at %d: %w", ref.Pos, err)
		}
	}
	return nil
}
