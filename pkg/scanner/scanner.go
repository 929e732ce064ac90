package scanner

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/writeme/pkg/errors"
	"github.com/matzehuels/writeme/pkg/metadata"
	"github.com/matzehuels/writeme/pkg/registry"
)

// MaxTechs is the default number of technologies evaluated per scan.
const MaxTechs = 40

// Option configures a Scanner.
type Option func(*Scanner)

// WithTechLimit sets how many technologies the technology scans evaluate.
// Values of zero or less restore [MaxTechs].
func WithTechLimit(n int) Option {
	return func(s *Scanner) {
		if n <= 0 {
			n = MaxTechs
		}
		s.limit = n
	}
}

// WithLogger sets the logger used for history warnings.
func WithLogger(l *log.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scanner matches project paths and dependencies against a registry and
// reads history and license data from disk.
type Scanner struct {
	configs *regexp.Regexp
	techs   []techPatterns
	limit   int
	logger  *log.Logger
}

type techPatterns struct {
	name    string
	configs *regexp.Regexp // nil when the technology has no config patterns
	deps    *regexp.Regexp // nil when the technology has no dependency patterns
}

// New compiles the registry's patterns. Every technology is compiled, even
// those past the evaluation cap, so a broken table is always reported. The
// error carries code [errors.ErrCodeInvalidPattern].
func New(reg *registry.Registry, opts ...Option) (*Scanner, error) {
	if reg == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scanner: nil registry")
	}
	s := &Scanner{limit: MaxTechs, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}

	var anchored []string
	for _, name := range reg.ConfigFilenames() {
		anchored = append(anchored, `(^|/)`+regexp.QuoteMeta(name)+`$`)
	}
	var err error
	if s.configs, err = compileSet("configs", anchored); err != nil {
		return nil, err
	}

	for _, name := range reg.TechNames() {
		tech, _ := reg.Tech(name)
		tp := techPatterns{name: name}
		if tp.configs, err = compileSet(name+" config_files", tech.ConfigFiles); err != nil {
			return nil, err
		}
		if tp.deps, err = compileSet(name+" dependency_names", tech.DependencyNames); err != nil {
			return nil, err
		}
		s.techs = append(s.techs, tp)
	}
	return s, nil
}

// compileSet joins patterns into one alternation. Each pattern is compiled
// on its own first so the error names the offending entry. An empty list
// yields nil, which matches nothing.
func compileSet(category string, patterns []string) (*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	groups := make([]string, len(patterns))
	for i, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "%s: pattern %q", category, p)
		}
		groups[i] = "(?:" + p + ")"
	}
	re, err := regexp.Compile(strings.Join(groups, "|"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "%s", category)
	}
	return re, nil
}

// ScanConfigs returns the paths whose filename is a known config file, in
// input order. Only the final path components are matched, so "package.json"
// matches "web/package.json" but not "package.json.bak".
func (s *Scanner) ScanConfigs(paths []string) []string {
	var out []string
	if s.configs == nil {
		return out
	}
	for _, p := range paths {
		if s.configs.MatchString(filepath.ToSlash(p)) {
			out = append(out, p)
		}
	}
	return out
}

// ScanTechs returns the technologies with a config pattern matching at
// least one path, in sorted order.
func (s *Scanner) ScanTechs(paths []string) []string {
	return s.detect(func(tp techPatterns) bool {
		if tp.configs == nil {
			return false
		}
		for _, p := range paths {
			if tp.configs.MatchString(filepath.ToSlash(p)) {
				return true
			}
		}
		return false
	})
}

// ScanDependencies returns the technologies with a dependency pattern
// matching at least one declared dependency name, in sorted order.
func (s *Scanner) ScanDependencies(deps []metadata.Dependency) []string {
	return s.detect(func(tp techPatterns) bool {
		if tp.deps == nil {
			return false
		}
		for _, d := range deps {
			if tp.deps.MatchString(d.Name) {
				return true
			}
		}
		return false
	})
}

// Evaluated returns the technology names the scans consider, in order.
func (s *Scanner) Evaluated() []string {
	n := min(s.limit, len(s.techs))
	names := make([]string, n)
	for i := range n {
		names[i] = s.techs[i].name
	}
	return names
}

func (s *Scanner) detect(match func(techPatterns) bool) []string {
	var found []string
	for i, tp := range s.techs {
		if i >= s.limit {
			break
		}
		if match(tp) {
			found = append(found, tp.name)
		}
	}
	return found
}
