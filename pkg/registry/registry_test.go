package registry

import (
	"reflect"
	"sort"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/matzehuels/writeme/pkg/errors"
)

func testFS(configs, techs string) fstest.MapFS {
	return fstest.MapFS{
		ConfigsFile: &fstest.MapFile{Data: []byte(configs)},
		TechsFile:   &fstest.MapFile{Data: []byte(techs)},
	}
}

const (
	sampleConfigs = `
javascript: [package.json, yarn.lock]
rust: [Cargo.toml]
`
	sampleTechs = `
node:
  config_files: ['package.json$']
  dependency_names: ['^react$']
Cargo:
  config_files: ['Cargo\.toml$']
`
)

func TestLoad(t *testing.T) {
	reg, err := Load(testFS(sampleConfigs, sampleTechs))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got, want := reg.Ecosystems(), []string{"javascript", "rust"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Ecosystems = %v, want %v", got, want)
	}
	if got, want := reg.TechNames(), []string{"Cargo", "node"}; !reflect.DeepEqual(got, want) {
		t.Errorf("TechNames = %v, want %v", got, want)
	}

	node, ok := reg.Tech("node")
	if !ok {
		t.Fatal("node missing")
	}
	if !reflect.DeepEqual(node.DependencyNames, []string{"^react$"}) {
		t.Errorf("node deps = %v", node.DependencyNames)
	}

	cargo, _ := reg.Tech("Cargo")
	if cargo.DependencyNames != nil {
		t.Errorf("Cargo deps = %v, want nil", cargo.DependencyNames)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
	}{
		{"missing configs", fstest.MapFS{TechsFile: &fstest.MapFile{Data: []byte(sampleTechs)}}},
		{"missing techs", fstest.MapFS{ConfigsFile: &fstest.MapFile{Data: []byte(sampleConfigs)}}},
		{"bad yaml", testFS("javascript: [package.json", sampleTechs)},
		{"wrong shape", testFS("javascript: package.json", sampleTechs)},
		{"empty configs", testFS("", sampleTechs)},
		{"empty techs", testFS(sampleConfigs, "{}")},
		{"blank filename", testFS("javascript: ['']", sampleTechs)},
		{"empty pattern", testFS(sampleConfigs, "node:\n  config_files: ['']\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fs)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidRegistry) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidRegistry)
			}
		})
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	reg, err := Load(testFS(sampleConfigs, sampleTechs))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	reg.Configs()["javascript"][0] = "mutated"
	techs := reg.Techs()
	techs["node"].ConfigFiles[0] = "mutated"
	delete(techs, "Cargo")

	if reg.Configs()["javascript"][0] != "package.json" {
		t.Error("Configs() exposed internal slice")
	}
	if node, _ := reg.Tech("node"); node.ConfigFiles[0] != "package.json$" {
		t.Error("Techs() exposed internal slice")
	}
	if _, ok := reg.Tech("Cargo"); !ok {
		t.Error("Techs() exposed internal map")
	}
}

func TestEcosystemOf(t *testing.T) {
	reg, err := Load(testFS(sampleConfigs, sampleTechs))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if eco, ok := reg.EcosystemOf("yarn.lock"); !ok || eco != "javascript" {
		t.Errorf("EcosystemOf(yarn.lock) = %q, %v", eco, ok)
	}
	if _, ok := reg.EcosystemOf("Makefile"); ok {
		t.Error("Makefile should not belong to an ecosystem")
	}
}

func TestDefault(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	again, _ := Default()
	if reg != again {
		t.Error("Default should load once")
	}

	names := reg.TechNames()
	if !foldSorted(names) {
		t.Errorf("TechNames not sorted: %v", names)
	}
	if len(names) > 40 {
		t.Errorf("bundled registry has %d technologies, more than the scan cap", len(names))
	}
	if _, ok := reg.Tech("node"); !ok {
		t.Error("bundled registry should define node")
	}
	if eco, ok := reg.EcosystemOf("Cargo.toml"); !ok || eco != "rust" {
		t.Errorf("EcosystemOf(Cargo.toml) = %q, %v", eco, ok)
	}
	files := reg.ConfigFilenames()
	if !foldSorted(files) || len(files) == 0 {
		t.Errorf("ConfigFilenames = %v", files)
	}
}

func foldSorted(s []string) bool {
	return sort.SliceIsSorted(s, func(i, j int) bool {
		return strings.ToLower(s[i]) < strings.ToLower(s[j])
	})
}

func TestTechNamesFoldCase(t *testing.T) {
	reg, err := Load(testFS(sampleConfigs, "zeta:\n  config_files: [z]\nAlpha:\n  config_files: [a]\nbeta:\n  config_files: [b]\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := reg.TechNames(), []string{"Alpha", "beta", "zeta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("TechNames = %v, want %v", got, want)
	}
}
