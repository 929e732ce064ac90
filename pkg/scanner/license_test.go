package scanner

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/writeme/pkg/errors"
)

const mit = `MIT License

Copyright (c) 2024 Jane Doe

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestScanLicense(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"README.md":   "# app\n",
		"LICENSE.txt": mit,
	})

	rec, err := historyScanner(t).ScanLicense(dir)
	if err != nil {
		t.Fatalf("ScanLicense: %v", err)
	}
	want := filepath.Join(dir, "LICENSE.txt")
	if rec.Source != want {
		t.Errorf("Source = %q, want %q", rec.Source, want)
	}
	if rec.License == nil || rec.License.Type != "MIT" || rec.License.Path != want {
		t.Errorf("License = %+v", rec.License)
	}
	if rec.License.Holder != "Jane Doe" || rec.License.Year != "2024" {
		t.Errorf("attribution = %q %q", rec.License.Year, rec.License.Holder)
	}
}

func TestScanLicenseVariants(t *testing.T) {
	for _, name := range []string{"LICENSE", "license.md", "Copying.MD", "NOTICE.json", "MIT-LICENSE", "unlicense.yaml"} {
		t.Run(name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{name: "Copyright 2020 Someone\n"})
			rec, err := historyScanner(t).ScanLicense(dir)
			if err != nil {
				t.Fatalf("ScanLicense: %v", err)
			}
			if rec.License.Holder != "Someone" {
				t.Errorf("Holder = %q", rec.License.Holder)
			}
		})
	}
}

func TestScanLicenseFirstMatchInNameOrder(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"NOTICE":  "Copyright 2020 Notice Holder\n",
		"COPYING": "Copyright 2020 Copying Holder\n",
	})
	rec, err := historyScanner(t).ScanLicense(dir)
	if err != nil {
		t.Fatalf("ScanLicense: %v", err)
	}
	if filepath.Base(rec.Source) != "COPYING" {
		t.Errorf("Source = %q, want COPYING", rec.Source)
	}
}

func TestScanLicenseNotFound(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"README.md":          "# app\n",
		"LICENSE.pdf":        "binary",
		"LICENSE/index.txt":  "nested",
		"docs/LICENSE":       mit,
		"licenses-notes.txt": "not a license",
	})

	rec, err := historyScanner(t).ScanLicense(dir)
	if rec != nil {
		t.Errorf("record = %+v, want nil", rec)
	}
	if !stderrors.Is(err, ErrLicenseNotFound) {
		t.Errorf("err = %v, want ErrLicenseNotFound", err)
	}
	if !errors.Is(err, errors.ErrCodeLicenseNotFound) {
		t.Errorf("code = %q", errors.GetCode(err))
	}
}

func TestScanLicenseMissingDir(t *testing.T) {
	_, err := historyScanner(t).ScanLicense(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error")
	}
	if stderrors.Is(err, ErrLicenseNotFound) {
		t.Error("an unreadable directory is not a missing license")
	}
}

func TestLicenseFilenames(t *testing.T) {
	if len(LicenseFilenames) != 21 {
		t.Errorf("len(LicenseFilenames) = %d, want 21", len(LicenseFilenames))
	}
}
