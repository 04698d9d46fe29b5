package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTechHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != "news-key" {
			t.Errorf("apiKey = %q", r.URL.Query().Get("apiKey"))
		}
		if r.URL.Query().Get("language") != "en" {
			t.Errorf("language = %q", r.URL.Query().Get("language"))
		}
		w.Write([]byte(`{"articles": [
			{"title": "Go 1.26 released", "description": "The Go team shipped a new release.", "url": "https://go.dev/blog", "publishedAt": "2026-08-28T10:00:00Z", "source": {"name": "Go Blog"}},
			{"title": "[Removed]", "description": "gone", "url": "https://example.com/1", "publishedAt": "", "source": {"name": "X"}},
			{"title": "No description", "description": "", "url": "https://example.com/2", "publishedAt": "", "source": {"name": "Y"}},
			{"title": "Second", "description": "d2", "url": "https://example.com/3", "publishedAt": "", "source": {"name": "Z"}},
			{"title": "Third", "description": "d3", "url": "https://example.com/4", "publishedAt": "", "source": {"name": "Z"}},
			{"title": "Fourth", "description": "d4", "url": "https://example.com/5", "publishedAt": "", "source": {"name": "Z"}},
			{"title": "Fifth", "description": "d5", "url": "https://example.com/6", "publishedAt": "", "source": {"name": "Z"}},
			{"title": "Sixth over the cap", "description": "d6", "url": "https://example.com/7", "publishedAt": "", "source": {"name": "Z"}}
		]}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, APIKey: "news-key"})

	articles, err := client.TechHeadlines(context.Background())
	if err != nil {
		t.Fatalf("TechHeadlines() error = %v", err)
	}

	if len(articles) != 5 {
		t.Fatalf("len(articles) = %d, want 5 (filtered and capped)", len(articles))
	}
	if articles[0].Title != "Go 1.26 released" {
		t.Errorf("first title = %q", articles[0].Title)
	}
	if articles[0].Source != "Go Blog" {
		t.Errorf("first source = %q", articles[0].Source)
	}
	for _, a := range articles {
		if a.Title == "[Removed]" || a.Description == "" {
			t.Errorf("filter let through %+v", a)
		}
	}
}

func TestTechHeadlines_NotConfigured(t *testing.T) {
	client := New(Config{})
	if _, err := client.TechHeadlines(context.Background()); err != ErrNotConfigured {
		t.Errorf("TechHeadlines() error = %v, want ErrNotConfigured", err)
	}
}

func TestTechHeadlines_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, APIKey: "wrong"})
	if _, err := client.TechHeadlines(context.Background()); err == nil {
		t.Error("TechHeadlines() succeeded on HTTP 401, want error")
	}
}
