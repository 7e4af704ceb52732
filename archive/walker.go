// Package archive walks documents stored in zip archives.
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/text/encoding"
)

// WalkFunc is called for every file in archive visited by Walk. The name is
// entry name, decoded when code page was requested and entry is not marked
// as UTF-8. If an error is returned, processing stops.
type WalkFunc func(archive, name string, file *zip.File) error

type walkOptions struct {
	codePage encoding.Encoding
}

// Option changes how Walk treats archive entries.
type Option func(*walkOptions)

// WithCodePage forces decoding of entry names not marked as UTF-8. Zip does
// not define name encoding and old archives often use local code pages.
func WithCodePage(enc encoding.Encoding) Option {
	return func(o *walkOptions) {
		o.codePage = enc
	}
}

// Walk visits files in the archive with names starting with prefix in
// natural order of their names. Archives having entries with absolute names
// or ".." components are rejected.
func Walk(archive, prefix string, walkFn WalkFunc, options ...Option) error {
	var opts walkOptions
	for _, o := range options {
		o(&opts)
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	type item struct {
		name string
		file *zip.File
	}
	items := make([]item, 0, len(r.File))
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		name := decodeName(f, opts.codePage)
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		items = append(items, item{name: name, file: f})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return natural.Less(items[i].name, items[j].name)
	})

	for _, it := range items {
		if err := walkFn(archive, it.name, it.file); err != nil {
			return err
		}
	}
	return nil
}

func decodeName(f *zip.File, cp encoding.Encoding) string {
	if cp == nil || !f.NonUTF8 {
		return f.Name
	}
	if n, err := cp.NewDecoder().String(f.Name); err == nil {
		return n
	}
	return f.Name
}

// isSafePath returns false for absolute names and names with ".." parts.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(strings.ReplaceAll(name, `\`, "/"), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
