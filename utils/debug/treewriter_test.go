package debug

import (
	"strings"
	"testing"
)

func TestNewTreeWriter(t *testing.T) {
	tw := NewTreeWriter()
	if tw == nil {
		t.Fatal("NewTreeWriter() returned nil")
	}
	if tw.w == nil {
		t.Error("TreeWriter builder is nil")
	}
	if tw.String() != "" {
		t.Error("Expected empty string from new TreeWriter")
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no_depth", depth: 0, format: "table", want: "table\n"},
		{name: "depth_1", depth: 1, format: "row", want: "  row\n"},
		{name: "depth_2", depth: 2, format: "cell", want: "    cell\n"},
		{name: "with_formatting", depth: 1, format: "width: %d", args: []any{3}, want: "  width: 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{name: "empty_value", depth: 0, label: "text", value: "", want: "text: \n"},
		{name: "with_value", depth: 1, label: "text", value: "A1", want: "  text: \"A1\"\n"},
		{name: "with_quotes", depth: 0, label: "text", value: `say "hi"`, want: "text: \"say \\\"hi\\\"\"\n"},
		{name: "with_newline", depth: 0, label: "text", value: "a\nb", want: "text: \"a\\nb\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Node(t *testing.T) {
	tw := NewTreeWriter()
	tw.Node(1, "table_cell", map[string]any{"rowspan": 1, "colspan": 2, "colwidth": nil})
	want := "  table_cell colspan=2 rowspan=1\n"
	if got := tw.String(); got != want {
		t.Errorf("Node() = %q, want %q", got, want)
	}
}

func TestTreeWriter_Lines(t *testing.T) {
	tw := NewTreeWriter().WithIndent("\t")
	tw.Lines(1, "a\nb\r\n")
	if got, want := tw.String(), "\ta\n\tb\n"; got != want {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestTreeWriter_ComplexTree(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "doc")
	tw.Node(1, "table", map[string]any{"colwidths": []float64{50, 50}})
	tw.Line(2, "table_row")
	tw.TextBlock(3, "text", "A1")

	result := tw.String()
	for _, want := range []string{"doc\n", "  table colwidths=[50 50]\n", "    table_row\n", "      text: \"A1\"\n"} {
		if !strings.Contains(result, want) {
			t.Errorf("Missing %q in:\n%s", want, result)
		}
	}
}

func TestEncodeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "simple", input: "hello", want: `"hello"`},
		{name: "tab", input: "a\tb", want: `"a\tb"`},
		{name: "backslash", input: `a\b`, want: `"a\\b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeText(tt.input); got != tt.want {
				t.Errorf("encodeText() = %q, want %q", got, tt.want)
			}
		})
	}
}
