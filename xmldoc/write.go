package xmldoc

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"tabular/model"
)

const indentUnit = "  "

// Write converts document tree into etree document. Element names are node
// type names, attributes equal to their defaults are omitted. Block level
// elements are indented, content of textblocks is written as is.
func Write(node *model.Node) *etree.Document {
	doc := NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(writeNode(node, 0))
	doc.CreateText("\n")
	return doc
}

// WriteTo serializes document tree to w.
func WriteTo(w io.Writer, node *model.Node) error {
	if _, err := Write(node).WriteTo(w); err != nil {
		return fmt.Errorf("unable to write XML: %w", err)
	}
	return nil
}

func writeNode(node *model.Node, depth int) *etree.Element {
	el := etree.NewElement(node.Type().Name)
	writeAttrs(el, node)

	switch {
	case node.IsLeaf():
	case node.IsTextblock():
		for _, child := range node.Content().Nodes() {
			writeInline(el, child)
		}
	case node.ChildCount() > 0:
		inner := "\n" + strings.Repeat(indentUnit, depth+1)
		for _, child := range node.Content().Nodes() {
			el.CreateText(inner)
			el.AddChild(writeNode(child, depth+1))
		}
		el.CreateText("\n" + strings.Repeat(indentUnit, depth))
	}
	return el
}

func writeInline(parent *etree.Element, node *model.Node) {
	if !node.IsText() {
		el := etree.NewElement(node.Type().Name)
		writeAttrs(el, node)
		parent.AddChild(el)
		return
	}
	for _, mark := range node.Marks() {
		parent = parent.CreateElement(mark)
	}
	parent.CreateText(node.Text())
}

func writeAttrs(el *etree.Element, node *model.Node) {
	typ := node.Type()
	defaults, _ := typ.ComputeAttrs(nil)
	for _, spec := range typ.Spec().Attrs {
		v := node.Attr(spec.Name)
		if v == nil || model.AttrEqual(v, defaults[spec.Name]) {
			continue
		}
		el.CreateAttr(spec.Name, formatAttrValue(v))
	}
}

func formatAttrValue(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case int:
		return strconv.Itoa(tv)
	case bool:
		return strconv.FormatBool(tv)
	case []int:
		parts := make([]string, len(tv))
		for i, n := range tv {
			if n > 0 {
				parts[i] = strconv.Itoa(n)
			}
		}
		return strings.Join(parts, ",")
	case []float64:
		parts := make([]string, len(tv))
		for i, f := range tv {
			parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
