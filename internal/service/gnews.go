package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"newscred/internal/model"
)

// GNewsClient fetches candidate articles from the GNews search API.
type GNewsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGNewsClient(apiKey string, timeout time.Duration) *GNewsClient {
	return &GNewsClient{
		apiKey:  apiKey,
		baseURL: "https://gnews.io/api/v4",
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *GNewsClient) Name() string {
	return "GNews"
}

func (c *GNewsClient) Fetch(ctx context.Context, topic string, limit int) ([]model.Article, error) {
	endpoint := fmt.Sprintf(
		"%s/search?q=%s&token=%s&lang=en&max=%d&sortby=publishedAt",
		c.baseURL, url.QueryEscape(topic), c.apiKey, limit,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("gnews request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gnews fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gnews status %d", resp.StatusCode)
	}

	var raw gnewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("gnews decode: %w", err)
	}

	articles := make([]model.Article, 0, len(raw.Articles))
	for _, a := range raw.Articles {
		if !model.ValidURL(a.Image) {
			continue
		}

		publisher := a.Source.Name
		if publisher == "" {
			publisher = "Unknown"
		}

		publishedAt, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, model.Article{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			Image:       a.Image,
			Publisher:   publisher,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

type gnewsResponse struct {
	Articles []gnewsArticle `json:"articles"`
}

type gnewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}
