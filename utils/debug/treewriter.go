// Package debug has helpers producing human readable dumps of document trees.
package debug

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const defaultIndent = "  "

type TreeWriter struct {
	w      *strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: defaultIndent,
	}
}

// WithIndent changes the string written once per depth level.
func (tw *TreeWriter) WithIndent(indent string) *TreeWriter {
	tw.indent = indent
	return tw
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Node writes a node header: its name followed by attributes in key order.
// Attributes with nil values are skipped.
func (tw *TreeWriter) Node(depth int, name string, attrs map[string]any) {
	tw.pad(depth)
	tw.w.WriteString(name)
	keys := make([]string, 0, len(attrs))
	for k, v := range attrs {
		if v != nil {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(tw.w, " %s=%v", k, attrs[k])
	}
	tw.w.WriteByte('\n')
}

// Lines writes pre-rendered multi-line text, each line at the given depth.
func (tw *TreeWriter) Lines(depth int, text string) {
	for line := range strings.Lines(text) {
		tw.pad(depth)
		tw.w.WriteString(strings.TrimRight(line, "\r\n"))
		tw.w.WriteByte('\n')
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
