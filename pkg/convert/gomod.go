package convert

import (
	"bufio"
	"bytes"
	"path"
	"strings"

	"github.com/matzehuels/writeme/pkg/errors"
	"github.com/matzehuels/writeme/pkg/metadata"
)

// GoMod converts go.mod files. The module path gives the name (its last
// element) and, for hosted paths such as github.com/owner/repo, the
// repository. Indirect requirements are skipped.
type GoMod struct{}

func (g *GoMod) Type() string              { return "go.mod" }
func (g *GoMod) Supports(name string) bool { return name == "go.mod" }

func (g *GoMod) Convert(file string) (*metadata.Record, error) {
	data, err := readFile(file)
	if err != nil {
		return nil, err
	}

	module, reqs := parseGoMod(data)
	if module == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: missing module directive", file)
	}

	rec := metadata.NewRecord(file)
	rec.Name = metadata.String(path.Base(module))
	if host, _, ok := strings.Cut(module, "/"); ok && metadata.PlatformForHost(host) != metadata.PlatformUnknown {
		rec.Repository = repository("https://" + module)
	}
	if len(reqs) > 0 {
		rec.Dependencies = reqs
		sortDependencies(rec.Dependencies)
	}
	return rec, nil
}

func parseGoMod(data []byte) (module string, deps []metadata.Dependency) {
	seen := make(map[string]bool)
	inRequire := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "module ") {
			module = strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "module ")), `"`)
			continue
		}

		if strings.HasPrefix(line, "require (") || line == "require(" {
			inRequire = true
			continue
		}
		if inRequire && line == ")" {
			inRequire = false
			continue
		}

		if strings.HasPrefix(line, "require ") && !strings.Contains(line, "(") {
			line = strings.TrimPrefix(line, "require ")
		} else if !inRequire {
			continue
		}

		if dep, ok := parseRequireLine(line); ok && !seen[dep.Name] {
			seen[dep.Name] = true
			deps = append(deps, dep)
		}
	}
	return module, deps
}

func parseRequireLine(line string) (metadata.Dependency, bool) {
	if strings.Contains(line, "// indirect") {
		return metadata.Dependency{}, false
	}
	if idx := strings.Index(line, "//"); idx != -1 {
		line = line[:idx]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return metadata.Dependency{}, false
	}
	dep := metadata.Dependency{Name: fields[0]}
	if len(fields) > 1 {
		dep.Version = fields[1]
	}
	return dep, true
}
