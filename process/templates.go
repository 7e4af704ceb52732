package process

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"tabular/config"
)

// Values holds variables available for template expansion.
type Values struct {
	Context  string
	Name     string
	Ext      string
	Dir      string
	Source   string
	ID       string
	Tables   int
	Problems int
}

func buildValues(d *Document, name config.TemplateFieldName) Values {
	ext := filepath.Ext(d.SrcName)
	dir := filepath.ToSlash(filepath.Dir(d.SrcName))
	if dir == "." {
		dir = ""
	}
	return Values{
		Context:  string(name),
		Name:     strings.TrimSuffix(filepath.Base(d.SrcName), ext),
		Ext:      strings.TrimPrefix(ext, "."),
		Dir:      dir,
		Source:   filepath.ToSlash(d.SrcName),
		ID:       d.ID(),
		Tables:   len(d.Tables()),
		Problems: d.Problems,
	}
}

func expandTemplate(d *Document, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, buildValues(d, name)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
