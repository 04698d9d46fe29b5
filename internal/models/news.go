package models

// NewsArticle is one formatted technology news item.
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
}

// TrendingRepo is one trending GitHub repository.
type TrendingRepo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Stars       int    `json:"stars"`
	Language    string `json:"language"`
	UpdatedAt   string `json:"updatedAt"`
}
