package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/writeme/pkg/errors"
	"github.com/matzehuels/writeme/pkg/license"
	"github.com/matzehuels/writeme/pkg/metadata"
)

// ErrLicenseNotFound is returned by ScanLicense when the project root holds
// no license file.
var ErrLicenseNotFound = errors.New(errors.ErrCodeLicenseNotFound, "no license file found")

// LicenseFilenames are the lowercase filename suffixes that identify a
// license file.
var LicenseFilenames = licenseVariants("license", "copying", "notice")

func licenseVariants(bases ...string) []string {
	exts := []string{"", ".txt", ".md", ".html", ".yml", ".yaml", ".json"}
	out := make([]string, 0, len(bases)*len(exts))
	for _, b := range bases {
		for _, e := range exts {
			out = append(out, b+e)
		}
	}
	return out
}

// ScanLicense looks for a license file among the regular files directly in
// location and classifies the first match. Entries are visited in
// filename order. Symlinks to regular files count as files.
func (s *Scanner) ScanLicense(location string) (*metadata.Record, error) {
	entries, err := os.ReadDir(location)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "list %s", location)
	}

	for _, e := range entries {
		if !isLicenseName(e.Name()) {
			continue
		}
		path := filepath.Join(location, e.Name())
		if !isRegular(e, path) {
			continue
		}

		lic, err := license.ClassifyFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		rec := metadata.NewRecord(path)
		rec.License = &lic
		return rec, nil
	}
	return nil, fmt.Errorf("%s: %w", location, ErrLicenseNotFound)
}

func isLicenseName(name string) bool {
	lower := strings.ToLower(name)
	for _, variant := range LicenseFilenames {
		if strings.HasSuffix(lower, variant) {
			return true
		}
	}
	return false
}

func isRegular(e fs.DirEntry, path string) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
