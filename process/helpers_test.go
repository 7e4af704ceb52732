package process

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"tabular/config"
	"tabular/state"
	"tabular/xmldoc"
)

const docID = "0190f5c2-7d3a-7b4e-9c1d-2f4e5a6b7c8d"

// brokenDoc has second row one cell short.
const brokenDoc = `<?xml version="1.0" encoding="UTF-8"?>
<doc id="` + docID + `">
  <p>Intro</p>
  <table>
    <tr><th><p>A</p></th><th><p>B</p></th></tr>
    <tr><td><p>1</p></td></tr>
  </table>
</doc>
`

// collisionDoc has second row cell running under a rowspan of the first row
// and past the table edge.
const collisionDoc = `<?xml version="1.0" encoding="UTF-8"?>
<doc id="` + docID + `">
  <table>
    <tr><td><p>A</p></td><td rowspan="2"><p>B</p></td><td><p>C</p></td></tr>
    <tr><td colspan="3"><p>D</p></td></tr>
    <tr><td colspan="2"><p>E</p></td><td><p>F</p></td><td><p>G</p></td></tr>
  </table>
</doc>
`

const gridDoc = `<?xml version="1.0" encoding="UTF-8"?>
<doc id="` + docID + `">
  <table>
    <tr><th><p>A</p></th><th><p>B</p></th><th><p>C</p></th></tr>
    <tr><td><p>1</p></td><td><p>2</p></td><td><p>3</p></td></tr>
    <tr><td><p>4</p></td><td><p>5</p></td><td><p>6</p></td></tr>
  </table>
</doc>
`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

func parseDoc(t *testing.T, ctx context.Context, src, name string) *Document {
	t.Helper()
	d, err := loadDocument(ctx, strings.NewReader(src), name, state.EnvFromContext(ctx).Log)
	if err != nil {
		t.Fatalf("loadDocument() error = %v", err)
	}
	return d
}

func readOutput(t *testing.T, ctx context.Context, path string) *Document {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unable to read output: %v", err)
	}
	return parseDoc(t, ctx, string(data), filepath.Base(path))
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func writeZip(t *testing.T, path string, files map[string][]byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, data := range files {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
		if err != nil {
			t.Fatalf("Failed to create file in zip: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("Failed to write to zip: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func readerForEncoding(t *testing.T, data []byte, enc srcEncoding) *bytes.Reader {
	t.Helper()
	var encoded []byte
	switch enc {
	case encUnknown:
		encoded = data
	case encUTF8:
		encoded = append([]byte{0xEF, 0xBB, 0xBF}, data...)
	case encUTF16BigEndian:
		encoded = encodeWithTransformer(t, data, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder())
	case encUTF16LittleEndian:
		encoded = encodeWithTransformer(t, data, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder())
	case encUTF32BigEndian:
		encoded = encodeWithTransformer(t, data, utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewEncoder())
	case encUTF32LittleEndian:
		encoded = encodeWithTransformer(t, data, utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewEncoder())
	default:
		t.Fatalf("unsupported encoding: %v", enc)
	}
	return bytes.NewReader(encoded)
}

func encodeWithTransformer(t *testing.T, data []byte, encoder transform.Transformer) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, encoder)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("finalize encoded sample: %v", err)
	}
	return buf.Bytes()
}

func dumpDoc(d *Document) string {
	var buf bytes.Buffer
	_ = xmldoc.WriteTo(&buf, d.Root)
	return buf.String()
}
