// Package css reads inline style declarations of document elements.
package css

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Value is a single parsed property value.
type Value struct {
	Raw     string  // original value text, e.g. "1.2em", "bold", "#ff0000"
	Value   float64 // numeric value if applicable
	Unit    string  // "px", "%", "pt" etc.
	Keyword string  // keyword, color or multi-token value
}

// IsNumeric returns true if the value has a numeric component, "0" included.
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Keyword != "" {
		return false
	}
	if v.Value != 0 {
		return true
	}
	if v.Raw != "" {
		c := rune(v.Raw[0])
		return unicode.IsDigit(c) || c == '.' || c == '-' || c == '+'
	}
	return false
}

// Pixels returns value rounded to whole pixels. Unitless numbers are taken
// as pixels.
func (v Value) Pixels() (int, bool) {
	if !v.IsNumeric() || (v.Unit != "" && v.Unit != "px") {
		return 0, false
	}
	return int(v.Value + 0.5), true
}

// Declarations maps lower-cased property names to values. Later declarations
// of the same property win.
type Declarations map[string]Value

// Get returns value of the first property present in names.
func (d Declarations) Get(names ...string) (Value, bool) {
	for _, n := range names {
		if v, ok := d[n]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// ParseInline parses content of style attribute. Malformed declarations are
// skipped.
func ParseInline(style string, log *zap.Logger) Declarations {
	if log == nil {
		log = zap.NewNop()
	}
	decls := make(Declarations)
	if strings.TrimSpace(style) == "" {
		return decls
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader([]byte(style))), true)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				log.Debug("Style parse error", zap.String("style", style), zap.Error(err))
			}
			return decls
		case css.DeclarationGrammar:
			if values := parser.Values(); len(values) > 0 {
				decls[strings.ToLower(string(data))] = parseValue(values)
			}
		default:
			log.Debug("Unexpected style content, ignoring", zap.String("style", style), zap.String("data", string(data)))
		}
	}
}

func parseValue(tokens []css.Token) Value {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(parts, ""))
	val := Value{Raw: raw}

	if len(tokens) == 1 || (len(tokens) == 2 && tokens[1].TokenType == css.WhitespaceToken) {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		default:
			val.Keyword = raw
		}
		return val
	}

	// functions (rgb(), url()) and multi-token values
	val.Keyword = raw
	return val
}

func parseDimension(s string) (float64, string) {
	end := 0
	for i, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != '-' && r != '+' {
			break
		}
		end = i + 1
	}
	if end == 0 {
		return 0, ""
	}
	num, _ := strconv.ParseFloat(s[:end], 64)
	return num, strings.ToLower(s[end:])
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
