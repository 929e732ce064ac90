package readme

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/writeme/pkg/errors"
	"github.com/matzehuels/writeme/pkg/metadata"
)

func fullDocument() Document {
	return Document{
		Record: metadata.Record{
			Name:        metadata.String("my-app"),
			Description: metadata.String("Demo app"),
			Version:     metadata.String("1.2.0"),
			Contributors: metadata.Contributors{
				{Name: "Alice", Email: "a@x"},
				{Name: "octocat", URL: "https://github.com/octocat"},
			},
			Repository: &metadata.Repository{URL: "https://github.com/acme/my-app"},
			License:    &metadata.License{Type: "MIT", Path: "LICENSE", Year: "2024", Holder: "Jane Doe"},
		},
		Techs:      []string{"node", "React"},
		Ecosystems: []string{"javascript"},
	}
}

func TestRender(t *testing.T) {
	want := "# my-app\n" +
		"\n" +
		"![version](https://img.shields.io/badge/version-1.2.0-blue) ![license](https://img.shields.io/badge/license-MIT-green)\n" +
		"\n" +
		"Demo app\n" +
		"\n" +
		"## Built with\n" +
		"\n" +
		"- node\n" +
		"- React\n" +
		"\n" +
		"## Installation\n" +
		"\n" +
		"```sh\n" +
		"npm install my-app\n" +
		"```\n" +
		"\n" +
		"## Contributors\n" +
		"\n" +
		"- Alice <a@x>\n" +
		"- [octocat](https://github.com/octocat)\n" +
		"\n" +
		"## License\n" +
		"\n" +
		"Copyright 2024 Jane Doe. Distributed under the MIT license. See [LICENSE](LICENSE) for details.\n" +
		"\n" +
		"---\n" +
		"\n" +
		"Source: <https://github.com/acme/my-app>\n"

	var sb strings.Builder
	if err := Render(&sb, fullDocument()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := sb.String(); got != want {
		t.Errorf("Render mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRenderEmpty(t *testing.T) {
	data, err := Bytes(Document{})
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if got, want := string(data), "# "+Untitled+"\n"; got != want {
		t.Errorf("Render(empty) = %q, want %q", got, want)
	}
}

func TestRenderLicenseWithoutHolder(t *testing.T) {
	doc := Document{Record: metadata.Record{
		Name:    metadata.String("x"),
		License: &metadata.License{Type: "Apache-2.0"},
	}}
	data, err := Bytes(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\nDistributed under the Apache-2.0 license.\n") {
		t.Errorf("unexpected license section:\n%s", data)
	}
	if strings.Contains(string(data), "badge") {
		t.Error("no badges without a version")
	}
}

func TestInstallCommands(t *testing.T) {
	tests := []struct {
		name       string
		ecosystems []string
		want       []string
	}{
		{"app", []string{"javascript", "rust"}, []string{"npm install app", "cargo add app"}},
		{"app", []string{"cobol", "python"}, []string{"pip install app"}},
		{"", []string{"javascript"}, nil},
		{"app", nil, nil},
	}
	for _, tt := range tests {
		if got := InstallCommands(tt.name, tt.ecosystems); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("InstallCommands(%q, %v) = %v, want %v", tt.name, tt.ecosystems, got, tt.want)
		}
	}
}

func TestBadge(t *testing.T) {
	tests := map[string]string{
		"1.2.0":        "1.2.0",
		"Apache-2.0":   "Apache--2.0",
		"1.0.0-beta_1": "1.0.0--beta__1",
		"GPL v3":       "GPL_v3",
	}
	for in, want := range tests {
		if got := badge(in); got != want {
			t.Errorf("badge(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, fullDocument(), false)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != filepath.Join(dir, DefaultFilename) {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# my-app\n") {
		t.Errorf("unexpected content: %q", data)
	}

	if _, err := Write(dir, fullDocument(), false); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second Write error = %v, want invalid path", err)
	}
	if _, err := Write(path, Document{}, true); err != nil {
		t.Errorf("overwrite Write error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "# "+Untitled+"\n" {
		t.Errorf("file not overwritten: %q", data)
	}
}
