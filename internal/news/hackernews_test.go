package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const frontPageFixture = `<html><body><table>
<tr class="athing" id="1">
  <td><span class="titleline"><a href="https://example.com/post">A clever systems post</a>
  <span class="sitebit comhead"> (<span class="sitestr">example.com</span>)</span></span></td>
</tr>
<tr>
  <td class="subtext"><span class="subtext">
    <span class="score" id="score_1">321 points</span> by
    <a class="hnuser">someone</a>
    <span class="age" title="2026-08-29T08:00:00"><a>3 hours ago</a></span>
  </span></td>
</tr>
<tr class="athing" id="2">
  <td><span class="titleline"><a href="item?id=2">Ask HN: Something</a></span></td>
</tr>
<tr>
  <td class="subtext"><span class="subtext">
    <span class="age" title="2026-08-29T07:00:00"><a>4 hours ago</a></span>
  </span></td>
</tr>
</table></body></html>`

func TestParseFrontPage(t *testing.T) {
	articles, err := parseFrontPage(strings.NewReader(frontPageFixture))
	if err != nil {
		t.Fatalf("parseFrontPage() error = %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}

	first := articles[0]
	if first.Title != "A clever systems post" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.URL != "https://example.com/post" {
		t.Errorf("URL = %q", first.URL)
	}
	if first.Description != "321 points on Hacker News" {
		t.Errorf("Description = %q", first.Description)
	}
	if first.Source != "example.com" {
		t.Errorf("Source = %q", first.Source)
	}
	if first.PublishedAt != "2026-08-29T08:00:00" {
		t.Errorf("PublishedAt = %q", first.PublishedAt)
	}

	second := articles[1]
	if second.URL != "https://news.ycombinator.com/item?id=2" {
		t.Errorf("relative URL not absolutized: %q", second.URL)
	}
	if second.Source != "Hacker News" {
		t.Errorf("Source = %q, want Hacker News for self posts", second.Source)
	}
	if second.Description != "Hacker News front page story" {
		t.Errorf("Description = %q", second.Description)
	}
}

func TestParseFrontPage_Empty(t *testing.T) {
	if _, err := parseFrontPage(strings.NewReader("<html><body></body></html>")); err == nil {
		t.Error("parseFrontPage() succeeded on empty page, want error")
	}
}

func TestTopStories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(frontPageFixture))
	}))
	defer srv.Close()

	scraper := NewHackerNewsScraper(srv.URL)
	articles, err := scraper.TopStories(context.Background())
	if err != nil {
		t.Fatalf("TopStories() error = %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("len(articles) = %d, want 2", len(articles))
	}
}

func TestTopStories_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	scraper := NewHackerNewsScraper(srv.URL)
	if _, err := scraper.TopStories(context.Background()); err == nil {
		t.Error("TopStories() succeeded on HTTP 503, want error")
	}
}
