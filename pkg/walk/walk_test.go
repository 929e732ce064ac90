package walk

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/writeme/pkg/errors"
)

func tree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		content := ""
		switch filepath.Base(f) {
		case ".gitignore":
			content = gitignores[f]
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

var gitignores = map[string]string{
	".gitignore":     "node_modules/\n*.log\n",
	"web/.gitignore": "dist/\n",
}

func TestFiles(t *testing.T) {
	root := tree(t,
		"package.json",
		"src/index.ts",
		"a.txt",
		"a/b.txt",
		".git/HEAD",
		".git/config",
		".gitignore",
		"debug.log",
		"node_modules/react/package.json",
		"web/.gitignore",
		"web/dist/bundle.js",
		"web/src/app.ts",
		"dist/keep.js",
	)

	got, err := Files(root, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	want := []string{
		".gitignore",
		"a.txt",
		"a/b.txt",
		"dist/keep.js",
		"package.json",
		"src/index.ts",
		"web/.gitignore",
		"web/src/app.ts",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Files =\n%v\nwant\n%v", got, want)
	}
}

func TestFilesSymlinks(t *testing.T) {
	root := tree(t, "README.md", "src/index.ts")
	links := map[string]string{
		"linked-src": "src",
		"DOCS.md":    "README.md",
		"dangling":   "missing.txt",
	}
	for link, target := range links {
		if err := os.Symlink(filepath.Join(root, target), filepath.Join(root, link)); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
	}

	got, err := Files(root, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	want := []string{"DOCS.md", "README.md", "src/index.ts"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestFilesExclude(t *testing.T) {
	root := tree(t, "main.go", "vendor/x/x.go", "web/app.min.js", "web/app.js")

	got, err := Files(root, Options{Exclude: []string{"vendor/**", "**/*.min.js"}})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if want := []string{"main.go", "web/app.js"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}

	for _, bad := range []string{"[unclosed", "/abs/**", "../sibling/**"} {
		if _, err := Files(root, Options{Exclude: []string{bad}}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Files(exclude %q) error = %v, want invalid input", bad, err)
		}
	}
}

func TestFilesNoGitignore(t *testing.T) {
	root := tree(t, ".gitignore", "debug.log")
	got, err := Files(root, Options{NoGitignore: true})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if want := []string{".gitignore", "debug.log"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestFilesMaxFiles(t *testing.T) {
	root := tree(t, "a", "b", "c", "d")
	got, err := Files(root, Options{MaxFiles: 2})
	if !stderrors.Is(err, ErrTooManyFiles) {
		t.Fatalf("err = %v, want ErrTooManyFiles", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestFilesInvalidRoot(t *testing.T) {
	if _, err := Files(filepath.Join(t.TempDir(), "missing"), Options{}); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("missing root error = %v", err)
	}

	root := tree(t, "file.txt")
	if _, err := Files(filepath.Join(root, "file.txt"), Options{}); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("file root error = %v", err)
	}
}
