package convert

import (
	"encoding/xml"
	"strings"

	"github.com/matzehuels/writeme/pkg/metadata"
)

// POM converts Maven pom.xml files. Dependencies are named
// groupId:artifactId; test, provided and optional dependencies and those
// with unresolved properties are skipped.
type POM struct{}

func (p *POM) Type() string              { return "pom.xml" }
func (p *POM) Supports(name string) bool { return name == "pom.xml" }

func (p *POM) Convert(path string) (*metadata.Record, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var pom pomProject
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, malformed(path, err)
	}

	rec := metadata.NewRecord(path)
	rec.Name = metadata.String(firstNonEmpty(pom.Name, pom.ArtifactID))
	rec.Description = metadata.String(pom.Description)
	if !strings.HasPrefix(pom.Version, "${") {
		rec.Version = metadata.String(pom.Version)
	}
	rec.Repository = repository(firstNonEmpty(pom.SCM.URL, pom.URL))
	if len(pom.Licenses) > 0 {
		rec.License = license(pom.Licenses[0].Name)
	}

	var people []metadata.Contributor
	for _, d := range pom.Developers {
		if name := strings.TrimSpace(d.Name); name != "" {
			people = append(people, metadata.Contributor{Name: name, Email: d.Email, URL: d.URL})
		}
	}
	if len(people) > 0 {
		rec.Contributors = people
	}

	rec.Dependencies = pomDependencies(pom.Dependencies)
	return rec, nil
}

func pomDependencies(deps []pomDependency) []metadata.Dependency {
	var out []metadata.Dependency
	seen := make(map[string]bool)
	for _, dep := range deps {
		if dep.Scope == "test" || dep.Scope == "provided" || dep.Optional == "true" {
			continue
		}
		if strings.HasPrefix(dep.GroupID, "${") || strings.HasPrefix(dep.ArtifactID, "${") {
			continue
		}
		coord := dep.GroupID + ":" + dep.ArtifactID
		if seen[coord] {
			continue
		}
		seen[coord] = true
		version := dep.Version
		if strings.HasPrefix(version, "${") {
			version = ""
		}
		out = append(out, metadata.Dependency{Name: coord, Version: version})
	}
	sortDependencies(out)
	return out
}

type pomProject struct {
	GroupID      string          `xml:"groupId"`
	ArtifactID   string          `xml:"artifactId"`
	Version      string          `xml:"version"`
	Name         string          `xml:"name"`
	Description  string          `xml:"description"`
	URL          string          `xml:"url"`
	Dependencies []pomDependency `xml:"dependencies>dependency"`
	Licenses     []struct {
		Name string `xml:"name"`
	} `xml:"licenses>license"`
	Developers []struct {
		Name  string `xml:"name"`
		Email string `xml:"email"`
		URL   string `xml:"url"`
	} `xml:"developers>developer"`
	SCM struct {
		URL string `xml:"url"`
	} `xml:"scm"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}
