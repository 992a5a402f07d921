package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"newscred/internal/model"
)

const googleNewsSearchURL = "https://news.google.com/rss/search"

// CorroborationService fetches the independent corpus of feed items
// used as evidence during credibility scoring. Items are ephemeral:
// fetched fresh per scoring request and never persisted.
type CorroborationService struct {
	parser  *gofeed.Parser
	baseURL string
	timeout time.Duration
}

func NewCorroborationService(timeout time.Duration) *CorroborationService {
	return &CorroborationService{
		parser:  gofeed.NewParser(),
		baseURL: googleNewsSearchURL,
		timeout: timeout,
	}
}

// FetchCorroborating returns the feed items found for the topic.
// Transport and parse failures are logged and degrade to an empty
// corpus; they never surface to the scoring path. Items without a
// valid http(s) link are dropped.
func (s *CorroborationService) FetchCorroborating(ctx context.Context, topic string) []model.FeedItem {
	query := fmt.Sprintf("%s?q=%s&hl=en-IN&gl=IN&ceid=IN:en", s.baseURL, url.QueryEscape(topic))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	feed, err := s.parser.ParseURLWithContext(query, ctx)
	if err != nil {
		slog.Error("corroboration feed fetch failed", "topic", topic, "error", err)
		return nil
	}

	items := make([]model.FeedItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if !model.ValidURL(item.Link) {
			continue
		}
		items = append(items, model.FeedItem{
			Title:     item.Title,
			Link:      item.Link,
			Summary:   item.Description,
			Content:   item.Content,
			Published: item.Published,
		})
	}
	return items
}
