package process

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tabular/editor"
	"tabular/model"
	"tabular/state"
	"tabular/tables"
	"tabular/xmldoc"
)

const attrID = "id"

// Document is a parsed source document along with information used to name
// the output.
type Document struct {
	SrcName string
	Root    *model.Node

	// problems found in tables when document was loaded
	Problems int
}

// TableRef is a table with its position in the document.
type TableRef struct {
	Node *model.Node
	Pos  int
}

func (d *Document) ID() string {
	return d.Root.Attrs().String(attrID)
}

// Tables returns all tables of the document in document order. Nested tables
// are included.
func (d *Document) Tables() []TableRef {
	var res []TableRef
	d.Root.Descendants(func(node *model.Node, pos int, _ *model.Node, _ int) bool {
		if node.Type().TableRole() == model.RoleTable {
			res = append(res, TableRef{Node: node, Pos: pos})
		}
		return !node.IsTextblock()
	})
	return res
}

// Table returns n-th table of the document counting from 0.
func (d *Document) Table(n int) (TableRef, error) {
	all := d.Tables()
	if n < 0 || n >= len(all) {
		return TableRef{}, fmt.Errorf("document has %d tables, table %d requested", len(all), n)
	}
	return all[n], nil
}

func countProblems(refs []TableRef) (int, error) {
	count := 0
	for _, ref := range refs {
		tm, err := tables.GetMap(ref.Node)
		if err != nil {
			return 0, err
		}
		count += len(tm.Problems)
	}
	return count, nil
}

// State returns editor state for the document.
func (d *Document) State() *editor.State {
	return editor.NewState(d.Root, nil)
}

func declaresAttr(typ *model.NodeType, name string) bool {
	for _, as := range typ.Spec().Attrs {
		if as.Name == name {
			return true
		}
	}
	return false
}

// loadDocument reads and parses document making sure it has valid ID.
func loadDocument(ctx context.Context, r io.Reader, src string, log *zap.Logger) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	root, source, err := xmldoc.Read(r, env.Schema, log)
	if err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}

	// Make sure document ID is not empty and is valid UUID
	if id := root.Attrs().String(attrID); declaresAttr(root.Type(), attrID) {
		if _, err := uuid.Parse(id); err != nil {
			refID, err := uuid.NewV7()
			if err != nil {
				return nil, fmt.Errorf("unable to generate new document UUID: %w", err)
			}
			log.Warn("Document has invalid ID, correcting", zap.String("old_id", id), zap.Stringer("new_id", refID))
			if root, err = root.WithMarkup(nil, root.Attrs().With(attrID, refID.String())); err != nil {
				return nil, err
			}
		}
	}

	d := &Document{SrcName: src, Root: root}
	if d.Problems, err = countProblems(d.Tables()); err != nil {
		return nil, err
	}

	if env.Rpt != nil {
		if data, err := source.WriteToString(); err == nil {
			env.Rpt.StoreData(fmt.Sprintf("source-%s%s", d.ID(), filepath.Ext(src)), []byte(data))
		}
		env.Rpt.StoreData(fmt.Sprintf("tree-%s.txt", d.ID()), []byte(root.Dump()))
	}
	return d, nil
}

// saveDocument writes document to outputName honoring overwrite setting.
func saveDocument(ctx context.Context, d *Document, outputName string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	f, err := os.Create(outputName)
	if err != nil {
		return err
	}
	if err := xmldoc.WriteTo(f, d.Root); err != nil {
		f.Close()
		return fmt.Errorf("unable to write document: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	// Store result for debugging
	env.Rpt.Store(fmt.Sprintf("result-%s%s", d.ID(), filepath.Ext(outputName)), outputName)
	return nil
}
