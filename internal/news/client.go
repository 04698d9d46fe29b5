// Package news proxies technology headlines from NewsAPI, with a Hacker News
// front-page scrape as the key-less fallback.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"terminaltime/internal/models"
)

const (
	defaultBaseURL = "https://newsapi.org/v2/everything"
	searchQuery    = "technology OR programming OR software OR AI OR javascript OR react"
	maxArticles    = 5
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = fmt.Errorf("news api not configured")

// Client fetches technology headlines from NewsAPI.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config wires the NewsAPI client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// New builds a news client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type newsAPIResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// TechHeadlines returns up to five recent technology articles, filtering out
// removed or incomplete entries.
func (c *Client) TechHeadlines(ctx context.Context) ([]models.NewsArticle, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	query := url.Values{}
	query.Set("q", searchQuery)
	query.Set("language", "en")
	query.Set("sortBy", "publishedAt")
	query.Set("pageSize", "10")
	query.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news api error: HTTP %s", resp.Status)
	}

	var parsed newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode headlines: %w", err)
	}

	articles := make([]models.NewsArticle, 0, maxArticles)
	for _, a := range parsed.Articles {
		if a.Title == "" || a.Description == "" || a.URL == "" {
			continue
		}
		if strings.Contains(a.Title, "[Removed]") {
			continue
		}
		articles = append(articles, models.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Source:      a.Source.Name,
		})
		if len(articles) == maxArticles {
			break
		}
	}

	return articles, nil
}
