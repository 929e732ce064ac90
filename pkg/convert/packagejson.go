package convert

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/writeme/pkg/metadata"
)

// PackageJSON converts npm package.json files. It reads name, description,
// version, author and contributors, repository, license and the
// dependencies, devDependencies and peerDependencies tables.
type PackageJSON struct{}

func (p *PackageJSON) Type() string              { return "package.json" }
func (p *PackageJSON) Supports(name string) bool { return strings.EqualFold(name, "package.json") }

func (p *PackageJSON) Convert(path string) (*metadata.Record, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var pkg packageFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, malformed(path, err)
	}

	rec := metadata.NewRecord(path)
	rec.Name = metadata.String(pkg.Name)
	rec.Description = metadata.String(pkg.Description)
	rec.Version = metadata.String(pkg.Version)
	rec.Repository = npmRepository(pkg.Repository)
	rec.License = license(npmLicense(pkg.License))

	var people []metadata.Contributor
	if c, ok := npmPerson(pkg.Author); ok {
		people = append(people, c)
	}
	for _, raw := range pkg.Contributors {
		if c, ok := npmPerson(raw); ok {
			people = append(people, c)
		}
	}
	if len(people) > 0 {
		rec.Contributors = people
	}

	rec.Dependencies = dependencies(nil, pkg.Dependencies, pkg.DevDependencies, pkg.PeerDependencies)
	return rec, nil
}

type packageFile struct {
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Version          string            `json:"version"`
	Author           json.RawMessage   `json:"author"`
	Contributors     []json.RawMessage `json:"contributors"`
	Repository       json.RawMessage   `json:"repository"`
	License          json.RawMessage   `json:"license"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

// npmPerson accepts both the "Name <email> (url)" string and the
// {name, email, url} object forms.
func npmPerson(raw json.RawMessage) (metadata.Contributor, bool) {
	if len(raw) == 0 {
		return metadata.Contributor{}, false
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return parsePerson(s)
	}
	var obj struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		URL   string `json:"url"`
	}
	if json.Unmarshal(raw, &obj) != nil || strings.TrimSpace(obj.Name) == "" {
		return metadata.Contributor{}, false
	}
	return metadata.Contributor{Name: strings.TrimSpace(obj.Name), Email: obj.Email, URL: obj.URL}, true
}

// npmRepository accepts a URL string, the "github:owner/repo" and
// "owner/repo" shorthands, or a {type, url} object.
func npmRepository(raw json.RawMessage) *metadata.Repository {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		var obj struct {
			URL string `json:"url"`
		}
		if json.Unmarshal(raw, &obj) != nil {
			return nil
		}
		s = obj.URL
	}

	for prefix, host := range map[string]string{
		"github:":    "github.com",
		"gitlab:":    "gitlab.com",
		"bitbucket:": "bitbucket.org",
	} {
		if strings.HasPrefix(s, prefix) {
			return repository("https://" + host + "/" + strings.TrimPrefix(s, prefix))
		}
	}
	if !strings.Contains(s, ":") && strings.Count(s, "/") == 1 {
		return repository("https://github.com/" + s)
	}
	return repository(s)
}

// npmLicense accepts an SPDX string or the deprecated {type} object.
func npmLicense(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(raw, &obj)
	return obj.Type
}
