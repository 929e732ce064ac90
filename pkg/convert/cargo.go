package convert

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/writeme/pkg/metadata"
)

// CargoToml converts Rust Cargo.toml manifests. Fields inherited from a
// workspace ({ workspace = true }) are treated as absent.
type CargoToml struct{}

func (c *CargoToml) Type() string              { return "Cargo.toml" }
func (c *CargoToml) Supports(name string) bool { return strings.EqualFold(name, "cargo.toml") }

func (c *CargoToml) Convert(path string) (*metadata.Record, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var cargo cargoFile
	if err := toml.Unmarshal(data, &cargo); err != nil {
		return nil, malformed(path, err)
	}

	pkg := cargo.Package
	rec := metadata.NewRecord(path)
	rec.Name = metadata.String(pkg.Name)
	rec.Description = metadata.String(tomlString(pkg.Description))
	rec.Version = metadata.String(tomlString(pkg.Version))
	rec.Repository = repository(tomlString(pkg.Repository))
	rec.License = license(tomlString(pkg.License))

	if authors, ok := pkg.Authors.([]any); ok {
		var people []metadata.Contributor
		for _, a := range authors {
			s, _ := a.(string)
			if p, ok := parsePerson(s); ok {
				people = append(people, p)
			}
		}
		if len(people) > 0 {
			rec.Contributors = people
		}
	}

	rec.Dependencies = dependencies(nil,
		cargoDeps(cargo.Dependencies),
		cargoDeps(cargo.DevDependencies),
		cargoDeps(cargo.BuildDependencies))
	return rec, nil
}

type cargoFile struct {
	Package struct {
		Name        string `toml:"name"`
		Version     any    `toml:"version"`
		Description any    `toml:"description"`
		Authors     any    `toml:"authors"`
		Repository  any    `toml:"repository"`
		License     any    `toml:"license"`
	} `toml:"package"`
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

// tomlString returns v when it is a plain string. Workspace-inherited
// tables yield "".
func tomlString(v any) string {
	s, _ := v.(string)
	return s
}

// cargoDeps flattens `name = "1.0"` and `name = { version = "1.0" }` entries.
func cargoDeps(table map[string]any) map[string]string {
	out := make(map[string]string, len(table))
	for name, v := range table {
		switch d := v.(type) {
		case string:
			out[name] = d
		case map[string]any:
			out[name] = tomlString(d["version"])
		default:
			out[name] = ""
		}
	}
	return out
}
