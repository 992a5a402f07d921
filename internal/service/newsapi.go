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

// NewsAPIClient fetches candidate articles from the NewsAPI
// "everything" endpoint, restricted to the last two days.
type NewsAPIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewNewsAPIClient(apiKey string, timeout time.Duration) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:  apiKey,
		baseURL: "https://newsapi.org/v2",
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

func (c *NewsAPIClient) Fetch(ctx context.Context, topic string, limit int) ([]model.Article, error) {
	fromDate := c.now().UTC().AddDate(0, 0, -2).Format("2006-01-02")
	endpoint := fmt.Sprintf(
		"%s/everything?q=%s&from=%s&sortBy=publishedAt&language=en&pageSize=%d&apiKey=%s",
		c.baseURL, url.QueryEscape(topic), fromDate, limit, c.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi status %d", resp.StatusCode)
	}

	var raw newsapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	articles := make([]model.Article, 0, len(raw.Articles))
	for _, a := range raw.Articles {
		if !model.ValidURL(a.URLToImage) {
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
			Image:       a.URLToImage,
			Publisher:   publisher,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

type newsapiResponse struct {
	Articles []newsapiArticle `json:"articles"`
}

type newsapiArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}
