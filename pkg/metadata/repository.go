package metadata

import (
	"errors"
	"net/url"
	"strings"
)

// Platform is a code-hosting platform inferred from a remote host.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformGitHub
	PlatformGitLab
	PlatformBitbucket
	PlatformCodeberg
)

var platformHosts = map[string]Platform{
	"github.com":    PlatformGitHub,
	"gitlab.com":    PlatformGitLab,
	"bitbucket.org": PlatformBitbucket,
	"codeberg.org":  PlatformCodeberg,
}

// PlatformForHost maps a host name to its platform. Subdomains such as
// "www.github.com" resolve to the parent platform.
func PlatformForHost(host string) Platform {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	for h, p := range platformHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return p
		}
	}
	return PlatformUnknown
}

// Authoritative reports whether the platform's own API is trusted for
// contributor data, making a local history walk unnecessary.
func (p Platform) Authoritative() bool {
	return p == PlatformGitHub
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	switch p {
	case PlatformGitHub:
		return "GitHub"
	case PlatformGitLab:
		return "GitLab"
	case PlatformBitbucket:
		return "Bitbucket"
	case PlatformCodeberg:
		return "Codeberg"
	default:
		return "Unknown"
	}
}

// Repository is a project's source repository.
type Repository struct {
	URL      string   // Canonical https URL (https://host/owner/name)
	Platform Platform // Inferred hosting platform
	Owner    string   // Owner or group path; may contain slashes (GitLab subgroups)
	Name     string   // Project name, the last path segment without .git
}

// String implements fmt.Stringer.
func (r Repository) String() string {
	return r.URL
}

// ErrInvalidRemote is returned by ParseRepository for URLs it cannot read.
var ErrInvalidRemote = errors.New("invalid repository URL")

// ParseRepository parses a git remote URL. Supported forms:
//
//	https://github.com/owner/repo(.git)
//	ssh://git@github.com/owner/repo.git
//	git@github.com:owner/repo.git
//	git://github.com/owner/repo
//	git+https://github.com/owner/repo.git
//
// Local paths and file:// remotes have no host and are rejected.
func ParseRepository(remote string) (*Repository, error) {
	raw := strings.TrimSpace(remote)
	raw = strings.TrimPrefix(raw, "git+")
	if raw == "" {
		return nil, ErrInvalidRemote
	}

	host, path, ok := splitRemote(raw)
	if !ok {
		return nil, ErrInvalidRemote
	}

	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")
	segments := strings.Split(path, "/")
	if len(segments) < 2 || segments[len(segments)-1] == "" {
		return nil, ErrInvalidRemote
	}

	name := segments[len(segments)-1]
	owner := strings.Join(segments[:len(segments)-1], "/")

	return &Repository{
		URL:      "https://" + host + "/" + owner + "/" + name,
		Platform: PlatformForHost(host),
		Owner:    owner,
		Name:     name,
	}, nil
}

func splitRemote(raw string) (host, path string, ok bool) {
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" || u.Scheme == "file" {
			return "", "", false
		}
		return strings.ToLower(u.Hostname()), u.Path, true
	}

	// scp-like syntax: [user@]host:path
	at := strings.Index(raw, "@")
	colon := strings.Index(raw, ":")
	if colon <= 0 || (at >= 0 && at > colon) {
		return "", "", false
	}
	host = raw[at+1 : colon]
	if host == "" || strings.Contains(host, "/") {
		return "", "", false
	}
	return strings.ToLower(host), raw[colon+1:], true
}
