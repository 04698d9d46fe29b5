// Package trending proxies the GitHub search API for recently created,
// highly starred repositories.
package trending

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"terminaltime/internal/models"
)

const (
	defaultBaseURL = "https://api.github.com/search/repositories"
	maxRepos       = 5
)

// Client fetches trending repositories.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// Config wires the trending client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Now     func() time.Time // test hook
}

// New builds a trending client. The public search endpoint needs no token
// for basic requests.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		now:        now,
	}
}

type searchResponse struct {
	Items []struct {
		FullName    string `json:"full_name"`
		Description string `json:"description"`
		HTMLURL     string `json:"html_url"`
		Stars       int    `json:"stargazers_count"`
		Language    string `json:"language"`
		UpdatedAt   string `json:"updated_at"`
	} `json:"items"`
}

// Top returns up to five repositories created in the last month, ordered by
// stars.
func (c *Client) Top(ctx context.Context) ([]models.TrendingRepo, error) {
	since := c.now().AddDate(0, -1, 0).Format("2006-01-02")

	query := url.Values{}
	query.Set("q", fmt.Sprintf("created:>%s language:typescript language:javascript", since))
	query.Set("sort", "stars")
	query.Set("order", "desc")
	query.Set("per_page", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "TerminalTime-App")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trending: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api error: HTTP %s", resp.Status)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode trending: %w", err)
	}

	repos := make([]models.TrendingRepo, 0, maxRepos)
	for _, item := range parsed.Items {
		description := item.Description
		if description == "" {
			description = "No description available"
		}
		repos = append(repos, models.TrendingRepo{
			Title:       item.FullName,
			Description: description,
			URL:         item.HTMLURL,
			Stars:       item.Stars,
			Language:    item.Language,
			UpdatedAt:   item.UpdatedAt,
		})
		if len(repos) == maxRepos {
			break
		}
	}

	return repos, nil
}

// Fallback returns a static project list for when the API is unreachable.
func Fallback(now time.Time) []models.TrendingRepo {
	updated := now.UTC().Format(time.RFC3339)
	return []models.TrendingRepo{
		{
			Title:       "microsoft/TypeScript",
			Description: "TypeScript is a superset of JavaScript that compiles to clean JavaScript output.",
			URL:         "https://github.com/microsoft/TypeScript",
			Stars:       95000,
			Language:    "TypeScript",
			UpdatedAt:   updated,
		},
		{
			Title:       "vercel/next.js",
			Description: "The React Framework for the Web",
			URL:         "https://github.com/vercel/next.js",
			Stars:       120000,
			Language:    "JavaScript",
			UpdatedAt:   updated,
		},
	}
}
