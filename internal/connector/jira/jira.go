package jira

import (
	"context"
	"fmt"
	"log"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/p-knytl/jira2sql/internal/connector/http"
)

// =============================================================================
// JIRA TICKET SOURCE
// Paginated JQL search plus the custom-field catalog, over the shared HTTP
// connector base.
// =============================================================================

// Client is the Jira ticket source.
type Client struct {
	http   *http.Client
	config *Config
}

// New creates a Jira client with the given configuration.
func New(config *Config) (*Client, error) {
	return NewWithTransport(config, nil)
}

// NewWithTransport creates a client with an injected transport. A nil
// transport uses the default; tests pass an in-process stub.
func NewWithTransport(config *Config, transport nethttp.RoundTripper) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	httpConfig := http.DefaultClientConfig()
	httpConfig.BaseURL = config.BaseURL
	httpConfig.Transport = transport
	if config.Email != "" {
		httpConfig.Auth = http.AtlassianAuth{
			Email:    config.Email,
			APIToken: config.APIToken,
		}
	} else {
		httpConfig.Auth = http.BasicAuth{
			Username: config.Username,
			Password: config.Password,
		}
	}
	httpConfig.Headers["Accept"] = "application/json"

	return &Client{
		http:   http.NewClient(httpConfig),
		config: config,
	}, nil
}

// Validate tests the connection to Jira.
func (c *Client) Validate(ctx context.Context) (*ServerInfo, error) {
	var info ServerInfo
	if err := c.http.GetJSON(ctx, "/rest/api/2/serverInfo", nil, &info); err != nil {
		return nil, fmt.Errorf("probe server: %w", err)
	}
	return &info, nil
}

// Search runs one JQL search page. A limit of zero asks the server for the
// match count only.
func (c *Client) Search(ctx context.Context, jql string, fields []string, limit, startAt int) (*SearchResult, error) {
	query := url.Values{}
	query.Set("jql", jql)
	query.Set("maxResults", strconv.Itoa(limit))
	query.Set("startAt", strconv.Itoa(startAt))
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}

	var result SearchResult
	if err := c.http.GetJSON(ctx, "/rest/api/2/search", query, &result); err != nil {
		return nil, fmt.Errorf("search %q: %w", jql, err)
	}
	return &result, nil
}

// Count returns the total number of issues matching the query via a
// zero-result-size probe.
func (c *Client) Count(ctx context.Context, jql string) (int, error) {
	result, err := c.Search(ctx, jql, nil, 0, 0)
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

// CollectIssues retrieves every issue matching the query, in the query
// engine's own order. It probes the match count first, then issues
// ceil(total/pageSize) sequential page requests with offsets
// pageIndex*pageSize and concatenates the results in request order. Any
// source error aborts the collection; there is no partial-result fallback.
func (c *Client) CollectIssues(ctx context.Context, jql string, fields []string) ([]Ticket, error) {
	start := time.Now()
	log.Printf("[jira] querying %q", jql)

	total, err := c.Count(ctx, jql)
	if err != nil {
		return nil, err
	}
	log.Printf("[jira] query matches %d issues", total)

	pageSize := c.config.PageSize
	pages := (total + pageSize - 1) / pageSize

	issues := make([]Ticket, 0, total)
	for page := 0; page < pages; page++ {
		log.Printf("[jira] page %d of %d", page+1, pages)
		result, err := c.Search(ctx, jql, fields, pageSize, page*pageSize)
		if err != nil {
			return nil, err
		}
		issues = append(issues, result.Issues...)
	}

	log.Printf("[jira] retrieved %d issues in %s", len(issues), time.Since(start).Round(time.Millisecond))
	return issues, nil
}

// CustomFieldNames fetches the field catalog once and returns the custom
// field id -> display name lookup used for renaming.
func (c *Client) CustomFieldNames(ctx context.Context) (map[string]string, error) {
	var fields []Field
	if err := c.http.GetJSON(ctx, "/rest/api/2/field", nil, &fields); err != nil {
		return nil, fmt.Errorf("fetch field catalog: %w", err)
	}

	lookup := make(map[string]string)
	for _, f := range fields {
		if f.Custom {
			lookup[f.ID] = f.Name
		}
	}
	return lookup, nil
}
