// Package scanner detects project metadata from file paths, declared
// dependencies, git history and license files.
//
// A [Scanner] is built once from a [registry.Registry] and compiles every
// pattern up front; a malformed pattern fails [New] rather than a later scan.
// After construction the Scanner is read-only and safe for concurrent use.
//
//	reg, _ := registry.Default()
//	s, err := scanner.New(reg, scanner.WithLogger(logger))
//	if err != nil {
//	    return err // registry bug, not a project condition
//	}
//
//	configs := s.ScanConfigs(paths)     // ["package.json", "web/Cargo.toml"]
//	techs := s.ScanTechs(paths)         // ["Cargo", "Rust", "node"]
//	fromDeps := s.ScanDependencies(deps) // ["React"]
//
// # Technology cap
//
// The technology scans evaluate at most [MaxTechs] technologies, taken in
// sorted name order. Technologies past the cap are skipped silently, so with
// the default limit a registry of more than 40 entries never reports the
// tail. The order is fixed, which keeps the truncation reproducible.
//
// # History and license
//
// [Scanner.ScanHistory] never fails: any problem opening the repository or
// walking commits is logged as a warning and the best partial record is
// returned. [Scanner.ScanLicense] is the exception among the scanners and
// reports a missing license file as [ErrLicenseNotFound].
package scanner
