package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"terminaltime/internal/models"
)

const defaultFrontPageURL = "https://news.ycombinator.com/"

// HackerNewsScraper scrapes the Hacker News front page. Used as the news
// fallback: it needs no API key.
type HackerNewsScraper struct {
	frontPageURL string
	httpClient   *http.Client
}

// NewHackerNewsScraper wires an HTTP client; the URL override is for tests.
func NewHackerNewsScraper(frontPageURL string) *HackerNewsScraper {
	if frontPageURL == "" {
		frontPageURL = defaultFrontPageURL
	}
	return &HackerNewsScraper{
		frontPageURL: frontPageURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// TopStories fetches and parses the front page, returning up to five stories.
func (s *HackerNewsScraper) TopStories(ctx context.Context) ([]models.NewsArticle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.frontPageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", "TerminalTime-App")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch front page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hacker news error: HTTP %s", resp.Status)
	}

	return parseFrontPage(resp.Body)
}

// parseFrontPage extracts stories from the front-page HTML. Each story is a
// tr.athing row holding the title link, followed by a subtext row with the
// score and age.
func parseFrontPage(r io.Reader) ([]models.NewsArticle, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse front page: %w", err)
	}

	var articles []models.NewsArticle
	doc.Find("tr.athing").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		link := row.Find("span.titleline > a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return true
		}
		if strings.HasPrefix(href, "item?id=") {
			href = defaultFrontPageURL + href
		}

		subtext := row.Next().Find("span.subtext")
		score := strings.TrimSpace(subtext.Find("span.score").First().Text())
		age, _ := subtext.Find("span.age").First().Attr("title")
		site := strings.TrimSpace(row.Find("span.sitestr").First().Text())

		description := "Hacker News front page story"
		if score != "" {
			description = score + " on Hacker News"
		}
		source := "Hacker News"
		if site != "" {
			source = site
		}

		articles = append(articles, models.NewsArticle{
			Title:       title,
			Description: description,
			URL:         href,
			PublishedAt: strings.TrimSpace(age),
			Source:      source,
		})
		return len(articles) < maxArticles
	})

	if len(articles) == 0 {
		return nil, fmt.Errorf("no stories found on front page")
	}

	return articles, nil
}
