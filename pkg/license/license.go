// Package license classifies license file text.
//
// [Classify] identifies the license with github.com/google/licensecheck and
// pulls the copyright year and holder out of the first copyright line:
//
//	lic := license.Classify("LICENSE", text)
//	fmt.Println(lic) // MIT © 2024 Jane Doe
//
// Text that licensecheck cannot attribute to a single known license with
// enough coverage is reported as [metadata.LicenseUnknown].
package license

import (
	"os"
	"regexp"
	"strings"

	"github.com/google/licensecheck"

	"github.com/matzehuels/writeme/pkg/metadata"
)

// MinCoverage is the share of the text, in percent, that must be covered by
// known license text before a match is trusted.
const MinCoverage = 40.0

var (
	copyrightLine = regexp.MustCompile(`(?im)^[\s#*/-]*copyright\b[ \t]*(?:\(c\)|©)?[ \t]*(.*)$`)
	copyrightYear = regexp.MustCompile(`^((?:19|20)\d{2}(?:[ \t]*[-–,][ \t]*(?:(?:19|20)\d{2}|present))*)[ \t,]*`)
	allRights     = regexp.MustCompile(`(?i)[.,]?\s*all rights reserved\.?\s*$`)
)

// Classify identifies the license in text. path is recorded on the result.
func Classify(path, text string) metadata.License {
	lic := metadata.License{Type: identify(text), Path: path}
	lic.Year, lic.Holder = copyright(text)
	return lic
}

// ClassifyFile reads and classifies the license file at path.
func ClassifyFile(path string) (metadata.License, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return metadata.License{}, err
	}
	return Classify(path, string(data)), nil
}

func identify(text string) string {
	cov := licensecheck.Scan([]byte(text))
	if cov.Percent < MinCoverage || len(cov.Match) == 0 {
		return metadata.LicenseUnknown
	}

	best := cov.Match[0]
	for _, m := range cov.Match[1:] {
		if m.End-m.Start > best.End-best.Start {
			best = m
		}
	}
	return best.ID
}

// copyright returns the year and holder from the first usable copyright
// line. Template placeholders such as "<year>" or "[name of copyright
// owner]" are skipped.
func copyright(text string) (year, holder string) {
	for _, m := range copyrightLine.FindAllStringSubmatch(text, -1) {
		rest := strings.TrimSpace(m[1])
		if rest == "" || strings.ContainsAny(rest, "<[{") {
			continue
		}

		y := ""
		if ym := copyrightYear.FindStringSubmatch(rest); ym != nil {
			y = ym[1]
			rest = rest[len(ym[0]):]
		}
		rest = strings.TrimPrefix(rest, "by ")
		rest = strings.TrimSpace(allRights.ReplaceAllString(rest, ""))
		if rest == "" || strings.HasPrefix(strings.ToLower(rest), "notice") {
			continue
		}
		return y, rest
	}
	return "", ""
}
