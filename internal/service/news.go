package service

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"newscred/internal/credibility"
	"newscred/internal/model"
)

// Corroborator supplies the independent feed corpus for one scoring
// operation.
type Corroborator interface {
	FetchCorroborating(ctx context.Context, topic string) []model.FeedItem
}

// NewsService owns the persisted topic buckets and the scoring paths
// over them. The scheduled refresh replaces each bucket wholesale;
// the live path fetches and scores on demand without touching the
// store.
type NewsService struct {
	db             *gorm.DB
	bucketProvider Provider
	liveProvider   Provider
	corroborate    Corroborator
	categories     []string
	batchSize      int
}

func NewNewsService(db *gorm.DB, bucketProvider, liveProvider Provider, corroborate Corroborator, categories []string, batchSize int) *NewsService {
	return &NewsService{
		db:             db,
		bucketProvider: bucketProvider,
		liveProvider:   liveProvider,
		corroborate:    corroborate,
		categories:     categories,
		batchSize:      batchSize,
	}
}

// RefreshBuckets runs one full refresh cycle: for each configured
// category, in declared order, fetch a batch of candidates, score
// each against its own corroboration corpus, and replace the topic
// bucket. A failing category is logged and skipped; it never aborts
// the rest of the cycle.
func (s *NewsService) RefreshBuckets(ctx context.Context) error {
	for _, category := range s.categories {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		articles, err := s.bucketProvider.Fetch(ctx, category, s.batchSize)
		if err != nil {
			slog.Error("bucket fetch failed", "provider", s.bucketProvider.Name(), "category", category, "error", err)
			continue
		}

		for i := range articles {
			articles[i].Category = category
			s.scoreArticle(ctx, &articles[i])
		}

		if err := s.replaceBucket(category, articles); err != nil {
			slog.Error("bucket replace failed", "category", category, "error", err)
			continue
		}

		slog.Info("bucket refreshed", "category", category, "articles", len(articles))
	}
	return nil
}

// replaceBucket swaps in the new article list as a single row write,
// so readers see either the previous or the new set in full.
func (s *NewsService) replaceBucket(category string, articles []model.Article) error {
	if articles == nil {
		articles = []model.Article{}
	}

	var bucket model.TopicBucket
	if err := s.db.Where("category = ?", category).
		FirstOrCreate(&bucket, model.TopicBucket{Category: category}).Error; err != nil {
		return err
	}

	bucket.Articles = articles
	return s.db.Save(&bucket).Error
}

// Bucket returns the stored articles for a category, trimmed to the
// requested count. A missing bucket returns a nil slice, not an
// error.
func (s *NewsService) Bucket(category string, limit int) ([]model.Article, error) {
	var bucket model.TopicBucket
	err := s.db.Where("category = ?", category).First(&bucket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	articles := bucket.Articles
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

// LiveScored fetches candidates for the topic from the live provider
// and scores them synchronously. Provider failures degrade to an
// empty result.
func (s *NewsService) LiveScored(ctx context.Context, topic string, limit int) []model.Article {
	articles, err := s.liveProvider.Fetch(ctx, topic, limit)
	if err != nil {
		slog.Error("live fetch failed", "provider", s.liveProvider.Name(), "topic", topic, "error", err)
		return nil
	}

	for i := range articles {
		s.scoreArticle(ctx, &articles[i])
	}
	return articles
}

// Score computes a credibility result for an arbitrary title and
// summary, corroborated against the given topic's feed corpus.
func (s *NewsService) Score(ctx context.Context, title, summary, topic string) model.Credibility {
	items := s.corroborate.FetchCorroborating(ctx, topic)
	return credibility.Score(title, summary, items)
}

// scoreArticle corroborates one candidate by its own title and
// attaches the result.
func (s *NewsService) scoreArticle(ctx context.Context, a *model.Article) {
	items := s.corroborate.FetchCorroborating(ctx, a.Title)
	a.Credibility = credibility.Score(a.Title, a.Description, items)
}
