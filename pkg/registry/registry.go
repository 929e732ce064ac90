// Package registry loads the pattern tables that drive project detection.
//
// Two tables make up a registry:
//
//   - configs.yaml maps an ecosystem (javascript, rust, ...) to the canonical
//     config filenames it uses. The config scanner anchors each filename to
//     the end of a path.
//   - techs.yaml maps a technology name to its config-file patterns and
//     dependency-name patterns. Both lists hold regular expressions.
//
// The bundled tables are embedded in the binary and returned by [Default].
// A user-supplied directory holding the same two files can replace them:
//
//	reg, err := registry.Load(os.DirFS("./my-registry"))
//
// A Registry is immutable after loading; every accessor returns a copy, so it
// is safe to share between goroutines.
package registry

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/writeme/pkg/errors"
)

// Table filenames inside a registry filesystem.
const (
	ConfigsFile = "configs.yaml"
	TechsFile   = "techs.yaml"
)

//go:embed data/*.yaml
var bundled embed.FS

// Tech holds the detection patterns for one technology.
type Tech struct {
	ConfigFiles     []string `yaml:"config_files"`
	DependencyNames []string `yaml:"dependency_names"`
}

// Registry is a loaded pair of pattern tables.
type Registry struct {
	configs map[string][]string
	techs   map[string]Tech
}

// Load reads configs.yaml and techs.yaml from the root of fsys.
// Missing files, YAML errors, empty tables and blank entries are reported
// with code [errors.ErrCodeInvalidRegistry].
func Load(fsys fs.FS) (*Registry, error) {
	var configs map[string][]string
	if err := decode(fsys, ConfigsFile, &configs); err != nil {
		return nil, err
	}
	var techs map[string]Tech
	if err := decode(fsys, TechsFile, &techs); err != nil {
		return nil, err
	}

	r := &Registry{configs: configs, techs: techs}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the registry embedded in the binary. It is loaded once per
// process.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(bundled, "data")
		if err != nil {
			defaultErr = errors.Wrap(errors.ErrCodeInvalidRegistry, err, "bundled registry")
			return
		}
		defaultReg, defaultErr = Load(sub)
	})
	return defaultReg, defaultErr
}

func decode(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRegistry, err, "read %s", name)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRegistry, err, "parse %s", name)
	}
	return nil
}

func (r *Registry) validate() error {
	if len(r.configs) == 0 {
		return errors.New(errors.ErrCodeInvalidRegistry, "%s: no ecosystems defined", ConfigsFile)
	}
	if len(r.techs) == 0 {
		return errors.New(errors.ErrCodeInvalidRegistry, "%s: no technologies defined", TechsFile)
	}

	for eco, names := range r.configs {
		if strings.TrimSpace(eco) == "" {
			return errors.New(errors.ErrCodeInvalidRegistry, "%s: blank ecosystem name", ConfigsFile)
		}
		for _, name := range names {
			if err := errors.ValidateConfigFilename(name); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidRegistry, err, "%s: ecosystem %s", ConfigsFile, eco)
			}
		}
	}

	for name, tech := range r.techs {
		if err := errors.ValidateTechName(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRegistry, err, "%s", TechsFile)
		}
		for _, p := range append(append([]string(nil), tech.ConfigFiles...), tech.DependencyNames...) {
			if p == "" {
				return errors.New(errors.ErrCodeInvalidRegistry, "%s: %s has an empty pattern", TechsFile, name)
			}
		}
	}
	return nil
}

// Configs returns a copy of the ecosystem to config-filename table.
func (r *Registry) Configs() map[string][]string {
	out := make(map[string][]string, len(r.configs))
	for eco, names := range r.configs {
		out[eco] = append([]string(nil), names...)
	}
	return out
}

// Techs returns a copy of the technology table.
func (r *Registry) Techs() map[string]Tech {
	out := make(map[string]Tech, len(r.techs))
	for name := range r.techs {
		out[name], _ = r.Tech(name)
	}
	return out
}

// Tech returns a copy of the patterns for one technology.
func (r *Registry) Tech(name string) (Tech, bool) {
	t, ok := r.techs[name]
	if !ok {
		return Tech{}, false
	}
	return Tech{
		ConfigFiles:     append([]string(nil), t.ConfigFiles...),
		DependencyNames: append([]string(nil), t.DependencyNames...),
	}, true
}

// TechNames returns the technology names sorted case-insensitively.
// Scanners iterate the registry in this order.
func (r *Registry) TechNames() []string {
	return sortedKeys(r.techs)
}

// Ecosystems returns the ecosystem names in sorted order.
func (r *Registry) Ecosystems() []string {
	return sortedKeys(r.configs)
}

// ConfigFilenames returns every config filename across ecosystems, sorted
// and deduplicated.
func (r *Registry) ConfigFilenames() []string {
	seen := make(map[string]struct{})
	for _, names := range r.configs {
		for _, n := range names {
			seen[n] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// EcosystemOf returns the first ecosystem, in sorted order, that lists
// filename as a config file.
func (r *Registry) EcosystemOf(filename string) (string, bool) {
	for _, eco := range r.Ecosystems() {
		for _, n := range r.configs[eco] {
			if n == filename {
				return eco, true
			}
		}
	}
	return "", false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := strings.ToLower(keys[i]), strings.ToLower(keys[j])
		if li != lj {
			return li < lj
		}
		return keys[i] < keys[j]
	})
	return keys
}
