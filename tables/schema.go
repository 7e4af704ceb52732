// Package tables implements table grid geometry and structural editing of
// tables in a document tree.
package tables

import (
	"errors"
	"fmt"
	"sync"

	"tabular/model"
)

// Attribute names used by table nodes.
const (
	AttrColspan   = "colspan"
	AttrRowspan   = "rowspan"
	AttrColwidth  = "colwidth"
	AttrColwidths = "colwidths"
)

var ErrNoTableTypes = errors.New("schema has no table node types")

type SchemaOptions struct {
	// CellContent is the node type cells are filled with.
	CellContent string
	// CellAttrs are added to both cell types.
	CellAttrs []model.AttrSpec
}

// NodeSpecs returns specs for table, table_row, table_cell and table_header.
func NodeSpecs(opts SchemaOptions) []model.NodeSpec {
	fill := opts.CellContent
	if fill == "" {
		fill = "paragraph"
	}
	cellAttrs := append([]model.AttrSpec{
		{Name: AttrColspan, Kind: model.AttrInt, Default: 1},
		{Name: AttrRowspan, Kind: model.AttrInt, Default: 1},
		{Name: AttrColwidth, Kind: model.AttrInts},
	}, opts.CellAttrs...)
	return []model.NodeSpec{
		{
			Name:      "table",
			TableRole: model.RoleTable,
			Fill:      "table_row",
			Attrs:     []model.AttrSpec{{Name: AttrColwidths, Kind: model.AttrFloats}},
		},
		{Name: "table_row", TableRole: model.RoleRow, Fill: "table_cell", Tags: []string{"tr"}},
		{Name: "table_cell", TableRole: model.RoleCell, Fill: fill, Attrs: cellAttrs, Tags: []string{"td"}},
		{Name: "table_header", TableRole: model.RoleHeaderCell, Fill: fill, Attrs: cellAttrs, Tags: []string{"th"}},
	}
}

// NewSchema returns basic document schema extended with table nodes.
func NewSchema(opts SchemaOptions) (*model.Schema, error) {
	return model.NewSchema("doc", append(model.BasicNodes(), NodeSpecs(opts)...)...)
}

var defaultSchema = sync.OnceValue(func() *model.Schema {
	s, err := NewSchema(SchemaOptions{CellAttrs: []model.AttrSpec{
		{Name: "background", Kind: model.AttrString},
	}})
	if err != nil {
		panic(fmt.Sprintf("default table schema: %v", err))
	}
	return s
})

// DefaultSchema is a document schema with tables, cells support background
// attribute.
func DefaultSchema() *model.Schema {
	return defaultSchema()
}

// NodeTypes lists node types by table role.
type NodeTypes struct {
	Table      *model.NodeType
	Row        *model.NodeType
	Cell       *model.NodeType
	HeaderCell *model.NodeType
}

var nodeTypesCache sync.Map // *model.Schema -> NodeTypes

// TableNodeTypes finds table node types in the schema.
func TableNodeTypes(s *model.Schema) (NodeTypes, error) {
	if v, ok := nodeTypesCache.Load(s); ok {
		return v.(NodeTypes), nil
	}
	var nt NodeTypes
	for _, t := range s.Nodes() {
		switch t.TableRole() {
		case model.RoleTable:
			nt.Table = t
		case model.RoleRow:
			nt.Row = t
		case model.RoleCell:
			nt.Cell = t
		case model.RoleHeaderCell:
			nt.HeaderCell = t
		}
	}
	if nt.Table == nil || nt.Row == nil || nt.Cell == nil || nt.HeaderCell == nil {
		return NodeTypes{}, ErrNoTableTypes
	}
	nodeTypesCache.Store(s, nt)
	return nt, nil
}

func isCell(n *model.Node) bool {
	return n != nil && n.Type().IsCell()
}

func colspan(n *model.Node) int {
	return max(n.Attrs().Int(AttrColspan), 1)
}

func rowspan(n *model.Node) int {
	return max(n.Attrs().Int(AttrRowspan), 1)
}
