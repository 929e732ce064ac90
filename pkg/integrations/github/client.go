package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/writeme/pkg/cache"
	"github.com/matzehuels/writeme/pkg/errors"
	"github.com/matzehuels/writeme/pkg/integrations"
	"github.com/matzehuels/writeme/pkg/metadata"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// MaxContributors bounds the contributor list requested from the API.
const MaxContributors = 10

// Client provides access to the GitHub API for metadata enrichment.
// It handles HTTP requests with caching, automatic retries, and optional authentication.
type Client struct {
	*integrations.Client
	baseURL string
}

// Option configures a Client.
type Option func(*options)

type options struct {
	token   string
	cache   cache.Cache
	ttl     time.Duration
	baseURL string
	http    *http.Client
}

// WithToken authenticates requests. Without a token GitHub allows 60
// requests per hour.
func WithToken(token string) Option {
	return func(o *options) { o.token = strings.TrimSpace(token) }
}

// WithCache caches decoded responses in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(o *options) {
		o.cache = c
		o.ttl = ttl
	}
}

// WithBaseURL points the client at another API root, such as a GitHub
// Enterprise instance or a test server.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = strings.TrimSuffix(url, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(o *options) { o.http = h }
}

// NewClient creates a GitHub API client.
func NewClient(opts ...Option) *Client {
	o := options{baseURL: DefaultBaseURL, ttl: integrations.DefaultCacheTTL}
	for _, opt := range opts {
		opt(&o)
	}

	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if o.token != "" {
		headers["Authorization"] = "Bearer " + o.token
	}

	client := integrations.NewClient(o.cache, "github", o.ttl, headers)
	client.SetHTTPClient(o.http)
	return &Client{Client: client, baseURL: o.baseURL}
}

// Repo is the subset of repository data used for enrichment.
type Repo struct {
	Owner        string        `json:"owner"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	License      string        `json:"license,omitempty"` // SPDX identifier
	HTMLURL      string        `json:"html_url"`
	Contributors []Contributor `json:"contributors,omitempty"`
}

// Contributor is a non-bot account that committed to the repository.
type Contributor struct {
	Login         string `json:"login"`
	URL           string `json:"url"`
	Contributions int    `json:"contributions"`
}

// Fetch retrieves repository data from GitHub. If refresh is true, cached
// data is bypassed. A missing contributors endpoint is not an error.
func (c *Client) Fetch(ctx context.Context, owner, repo string, refresh bool) (*Repo, error) {
	if err := ValidateRepoRef(owner, repo); err != nil {
		return nil, err
	}

	var r Repo
	err := c.Cached(ctx, "repo:"+owner+"/"+repo, refresh, &r, func() error {
		return c.fetchRepo(ctx, owner, repo, &r)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FetchRecord fetches the repository and converts it into a partial record
// attributed to "github:owner/repo".
func (c *Client) FetchRecord(ctx context.Context, owner, repo string, refresh bool) (*metadata.Record, error) {
	r, err := c.Fetch(ctx, owner, repo, refresh)
	if err != nil {
		return nil, err
	}
	return r.Record(), nil
}

// Record converts the repository into a partial metadata record.
func (r *Repo) Record() *metadata.Record {
	rec := metadata.NewRecord("github:" + r.Owner + "/" + r.Name)
	rec.Description = metadata.String(r.Description)
	if r.License != "" && r.License != "NOASSERTION" {
		rec.License = &metadata.License{Type: r.License}
	}
	for _, c := range r.Contributors {
		rec.Contributors = append(rec.Contributors, metadata.Contributor{Name: c.Login, URL: c.URL})
	}
	return rec
}

func (c *Client) fetchRepo(ctx context.Context, owner, repo string, r *Repo) error {
	var data repoResponse
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return errors.Wrap(errors.ErrCodeNotFound, err, "github repo %s/%s", owner, repo)
		}
		return err
	}

	*r = Repo{
		Owner:       owner,
		Name:        repo,
		Description: data.Description,
		License:     data.License.SPDXID,
		HTMLURL:     data.HTMLURL,
	}
	contribs, err := c.fetchContributors(ctx, owner, repo)
	if err != nil && !errors.Is(err, errors.ErrCodeNotFound) {
		return err
	}
	r.Contributors = contribs
	return nil
}

func (c *Client) fetchContributors(ctx context.Context, owner, repo string) ([]Contributor, error) {
	var data []contributorResponse
	url := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=%d", c.baseURL, owner, repo, MaxContributors)
	if err := c.Get(ctx, url, &data); err != nil {
		return nil, err
	}

	var result []Contributor
	for _, cr := range data {
		if cr.Type == "Bot" || strings.HasSuffix(cr.Login, "[bot]") {
			continue
		}
		result = append(result, Contributor{
			Login:         cr.Login,
			URL:           cr.HTMLURL,
			Contributions: cr.Contributions,
		})
	}
	return result, nil
}

type repoResponse struct {
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
	License     struct {
		SPDXID string `json:"spdx_id"`
	} `json:"license"`
}

type contributorResponse struct {
	Login         string `json:"login"`
	HTMLURL       string `json:"html_url"`
	Contributions int    `json:"contributions"`
	Type          string `json:"type"`
}
