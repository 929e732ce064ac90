// Package readme renders a README.md from merged project metadata.
package readme

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/matzehuels/writeme/pkg/errors"
	"github.com/matzehuels/writeme/pkg/metadata"
)

// DefaultFilename is the file Write creates when given a directory.
const DefaultFilename = "README.md"

//go:embed templates/README.md.tmpl
var defaultTemplate string

var tmpl = template.Must(template.New("README.md").Funcs(template.FuncMap{
	"badge":       badge,
	"base":        func(p string) string { return path.Base(strings.ReplaceAll(p, "\\", "/")) },
	"contributor": contributor,
}).Parse(defaultTemplate))

// Document is everything the README shows.
type Document struct {
	Record     metadata.Record
	Techs      []string
	Ecosystems []string
}

// view flattens a Document for the template.
type view struct {
	Title        string
	Description  string
	Version      string
	Techs        []string
	Install      []string
	Contributors metadata.Contributors
	License      *metadata.License
	Repository   *metadata.Repository
}

// Untitled is the heading used when no name was found.
const Untitled = "Untitled project"

func newView(doc Document) view {
	r := doc.Record
	title := metadata.Deref(r.Name)
	if title == "" {
		title = Untitled
	}
	return view{
		Title:        title,
		Description:  metadata.Deref(r.Description),
		Version:      metadata.Deref(r.Version),
		Techs:        doc.Techs,
		Install:      InstallCommands(metadata.Deref(r.Name), doc.Ecosystems),
		Contributors: r.Contributors,
		License:      r.License,
		Repository:   r.Repository,
	}
}

// Render writes the README for doc to w.
func Render(w io.Writer, doc Document) error {
	if err := tmpl.Execute(w, newView(doc)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render README")
	}
	return nil
}

// Bytes renders the README into memory.
func Bytes(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ErrExists is returned by Write when the target exists and overwrite is off.
var ErrExists = errors.New(errors.ErrCodeInvalidPath, "README already exists")

// Write renders doc to dest. A directory dest receives DefaultFilename.
// An existing file is only replaced when overwrite is set.
func Write(dest string, doc Document, overwrite bool) (string, error) {
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, DefaultFilename)
	}
	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			return dest, errors.Wrap(errors.ErrCodeInvalidPath, ErrExists, "%s", dest)
		}
	}

	data, err := Bytes(doc)
	if err != nil {
		return dest, err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return dest, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", dest)
	}
	return dest, nil
}

var installers = map[string]func(name string) string{
	"javascript": func(n string) string { return "npm install " + n },
	"rust":       func(n string) string { return "cargo add " + n },
	"python":     func(n string) string { return "pip install " + n },
	"go":         func(string) string { return "go build ./..." },
	"php":        func(n string) string { return "composer require " + n },
	"java":       func(string) string { return "mvn install" },
	"ruby":       func(n string) string { return "gem install " + n },
	"dotnet":     func(n string) string { return "dotnet add package " + n },
	"dart":       func(n string) string { return "dart pub add " + n },
	"elixir":     func(string) string { return "mix deps.get" },
	"haskell":    func(string) string { return "cabal build" },
	"swift":      func(string) string { return "swift build" },
}

// InstallCommands returns one install hint per known ecosystem, in the
// given order. Ecosystems without a hint are skipped; so is everything
// when name is empty.
func InstallCommands(name string, ecosystems []string) []string {
	if name == "" {
		return nil
	}
	var out []string
	for _, eco := range ecosystems {
		if f, ok := installers[eco]; ok {
			out = append(out, f(name))
		}
	}
	return out
}

func badge(s string) string {
	r := strings.NewReplacer("-", "--", "_", "__", " ", "_")
	return r.Replace(s)
}

func contributor(c metadata.Contributor) string {
	switch {
	case c.URL != "":
		return "[" + c.Name + "](" + c.URL + ")"
	case c.Email != "":
		return c.Name + " <" + c.Email + ">"
	default:
		return c.Name
	}
}
