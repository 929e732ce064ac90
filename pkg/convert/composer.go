package convert

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/writeme/pkg/metadata"
)

// ComposerJSON converts PHP composer.json files. Platform requirements
// (php, ext-*, lib-*) are not dependencies.
type ComposerJSON struct{}

func (c *ComposerJSON) Type() string              { return "composer.json" }
func (c *ComposerJSON) Supports(name string) bool { return strings.EqualFold(name, "composer.json") }

func (c *ComposerJSON) Convert(path string) (*metadata.Record, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var comp composerFile
	if err := json.Unmarshal(data, &comp); err != nil {
		return nil, malformed(path, err)
	}

	rec := metadata.NewRecord(path)
	rec.Name = metadata.String(comp.Name)
	rec.Description = metadata.String(comp.Description)
	rec.Version = metadata.String(comp.Version)
	rec.Repository = repository(comp.Support.Source)
	rec.License = license(composerLicense(comp.License))

	var people []metadata.Contributor
	for _, a := range comp.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			people = append(people, metadata.Contributor{Name: name, Email: a.Email, URL: a.Homepage})
		}
	}
	if len(people) > 0 {
		rec.Contributors = people
	}

	rec.Dependencies = dependencies(isPlatformPackage, comp.Require, comp.RequireDev)
	return rec, nil
}

type composerFile struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Version     string            `json:"version"`
	License     json.RawMessage   `json:"license"`
	Require     map[string]string `json:"require"`
	RequireDev  map[string]string `json:"require-dev"`
	Authors     []struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Homepage string `json:"homepage"`
	} `json:"authors"`
	Support struct {
		Source string `json:"source"`
	} `json:"support"`
}

// composerLicense accepts a single identifier or a list, joined as an
// SPDX "OR" expression.
func composerLicense(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var list []string
	if json.Unmarshal(raw, &list) != nil {
		return ""
	}
	if len(list) > 1 {
		return "(" + strings.Join(list, " OR ") + ")"
	}
	return strings.Join(list, "")
}

func isPlatformPackage(name string) bool {
	return name == "php" || strings.HasPrefix(name, "ext-") || strings.HasPrefix(name, "lib-")
}
