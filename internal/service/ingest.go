package service

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"newscred/internal/model"
)

// retentionWindow is how long a headline stays in the rolling store.
const retentionWindow = 24 * time.Hour

// IngestService maintains the rolling headline store: fresh batches
// per category, title-based dedup on insert, a retention sweep at the
// start of each cycle, and a newest-N trim per category afterwards.
type IngestService struct {
	db         *gorm.DB
	provider   Provider
	categories []string
	limit      int
	now        func() time.Time
}

func NewIngestService(db *gorm.DB, provider Provider, categories []string, limit int) *IngestService {
	return &IngestService{
		db:         db,
		provider:   provider,
		categories: categories,
		limit:      limit,
		now:        time.Now,
	}
}

// Run executes one ingest cycle. A failing category is logged and
// contributes nothing; the cycle always completes.
func (s *IngestService) Run(ctx context.Context) error {
	s.pruneOld()

	for _, category := range s.categories {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		articles, err := s.provider.Fetch(ctx, category, s.limit)
		if err != nil {
			slog.Error("headline fetch failed", "provider", s.provider.Name(), "category", category, "error", err)
			continue
		}

		var inserted, duplicated int
		for _, a := range articles {
			if s.insert(a, category) {
				inserted++
			} else {
				duplicated++
			}
		}

		s.trimCategory(category)
		slog.Info("headlines ingested", "category", category, "inserted", inserted, "duplicated", duplicated)
	}
	return nil
}

// insert adds one headline unless its title is already present.
func (s *IngestService) insert(a model.Article, category string) bool {
	publishedAt := a.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = s.now().UTC()
	}

	headline := model.Headline{
		Title:       a.Title,
		URL:         a.URL,
		Category:    category,
		Source:      a.Publisher,
		Image:       a.Image,
		Text:        a.Description,
		PublishedAt: publishedAt,
	}

	result := s.db.Where("title = ?", headline.Title).FirstOrCreate(&headline)
	return result.Error == nil && result.RowsAffected > 0
}

// pruneOld drops headlines older than the retention window.
func (s *IngestService) pruneOld() {
	cutoff := s.now().UTC().Add(-retentionWindow)
	result := s.db.Where("published_at < ?", cutoff).Delete(&model.Headline{})
	if result.Error != nil {
		slog.Error("headline retention sweep failed", "error", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		slog.Info("old headlines pruned", "deleted", result.RowsAffected)
	}
}

// trimCategory keeps only the newest headlines for one category.
func (s *IngestService) trimCategory(category string) {
	var keep []uint
	s.db.Model(&model.Headline{}).
		Where("category = ?", category).
		Order("published_at DESC").
		Limit(s.limit).
		Pluck("id", &keep)

	if len(keep) < s.limit {
		return
	}

	result := s.db.Where("category = ? AND id NOT IN ?", category, keep).Delete(&model.Headline{})
	if result.Error != nil {
		slog.Error("headline trim failed", "category", category, "error", result.Error)
	}
}

// Latest returns the newest headlines across all categories.
func (s *IngestService) Latest(limit int) ([]model.Headline, error) {
	var headlines []model.Headline
	err := s.db.Order("published_at DESC").Limit(limit).Find(&headlines).Error
	return headlines, err
}
