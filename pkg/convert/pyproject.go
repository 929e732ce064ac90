package convert

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/writeme/pkg/metadata"
)

// PyProject converts pyproject.toml files. The PEP 621 [project] table is
// read first; [tool.poetry] fills whatever it leaves empty.
type PyProject struct{}

func (p *PyProject) Type() string              { return "pyproject.toml" }
func (p *PyProject) Supports(name string) bool { return strings.EqualFold(name, "pyproject.toml") }

func (p *PyProject) Convert(path string) (*metadata.Record, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var py pyprojectFile
	if err := toml.Unmarshal(data, &py); err != nil {
		return nil, malformed(path, err)
	}
	proj, poetry := py.Project, py.Tool.Poetry

	rec := metadata.NewRecord(path)
	rec.Name = metadata.String(firstNonEmpty(proj.Name, poetry.Name))
	rec.Description = metadata.String(firstNonEmpty(proj.Description, poetry.Description))
	rec.Version = metadata.String(firstNonEmpty(proj.Version, poetry.Version))
	rec.License = license(firstNonEmpty(pep621License(proj.License), poetry.License))

	repo := poetry.Repository
	for _, key := range []string{"Repository", "repository", "Source", "source", "Homepage", "homepage"} {
		if u := proj.URLs[key]; u != "" && repo == "" {
			repo = u
		}
	}
	rec.Repository = repository(repo)

	var people []metadata.Contributor
	for _, a := range proj.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			people = append(people, metadata.Contributor{Name: name, Email: a.Email})
		}
	}
	if len(people) == 0 {
		for _, a := range poetry.Authors {
			if c, ok := parsePerson(a); ok {
				people = append(people, c)
			}
		}
	}
	if len(people) > 0 {
		rec.Contributors = people
	}

	reqs := make(map[string]string)
	for _, req := range proj.Dependencies {
		if name, spec := splitRequirement(req); name != "" {
			reqs[name] = spec
		}
	}
	rec.Dependencies = dependencies(func(name string) bool { return strings.EqualFold(name, "python") },
		reqs, cargoDeps(poetry.Dependencies))
	return rec, nil
}

type pyprojectFile struct {
	Project struct {
		Name         string            `toml:"name"`
		Version      string            `toml:"version"`
		Description  string            `toml:"description"`
		License      any               `toml:"license"`
		Authors      []pyAuthor        `toml:"authors"`
		URLs         map[string]string `toml:"urls"`
		Dependencies []string          `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name         string         `toml:"name"`
			Version      string         `toml:"version"`
			Description  string         `toml:"description"`
			License      string         `toml:"license"`
			Authors      []string       `toml:"authors"`
			Repository   string         `toml:"repository"`
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

type pyAuthor struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// pep621License accepts `license = "MIT"` and `license = { text = "MIT" }`.
// A { file = ... } reference carries no identifier and yields "".
func pep621License(v any) string {
	switch l := v.(type) {
	case string:
		return l
	case map[string]any:
		return tomlString(l["text"])
	}
	return ""
}

// splitRequirement splits a PEP 508 requirement such as
// "requests[socks]>=2.31; python_version>'3.8'" into its name and version
// specifier.
func splitRequirement(req string) (name, spec string) {
	req = strings.TrimSpace(req)
	if i := strings.Index(req, ";"); i >= 0 {
		req = req[:i]
	}
	end := strings.IndexAny(req, "<>=!~[( @")
	if end < 0 {
		return req, ""
	}
	name = req[:end]
	rest := req[end:]
	if i := strings.Index(rest, "]"); strings.HasPrefix(rest, "[") && i >= 0 {
		rest = rest[i+1:]
	}
	rest = strings.Trim(strings.TrimSpace(rest), "()")
	return name, strings.TrimSpace(rest)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
