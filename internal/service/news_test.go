package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/assert/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"newscred/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(&model.TopicBucket{}, &model.Headline{}, &model.SavedArticle{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type fakeProvider struct {
	name     string
	articles []model.Article
	err      error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(ctx context.Context, topic string, limit int) ([]model.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.articles) > limit {
		return f.articles[:limit], nil
	}
	return f.articles, nil
}

type fakeCorroborator struct {
	items []model.FeedItem
}

func (f *fakeCorroborator) FetchCorroborating(ctx context.Context, topic string) []model.FeedItem {
	return f.items
}

func candidateArticles(titles ...string) []model.Article {
	articles := make([]model.Article, 0, len(titles))
	for i, title := range titles {
		articles = append(articles, model.Article{
			Title: title,
			URL:   fmt.Sprintf("https://example.com/%d", i),
			Image: fmt.Sprintf("https://example.com/%d.jpg", i),
		})
	}
	return articles
}

func TestRefreshBucketsReplacesWholesale(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{name: "fake", articles: candidateArticles("first cycle story")}
	svc := NewNewsService(db, provider, provider, &fakeCorroborator{}, []string{"technology"}, 10)

	err := svc.RefreshBuckets(context.Background())
	assert.Equal(t, nil, err)

	articles, err := svc.Bucket("technology", 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "first cycle story", articles[0].Title)
	assert.Equal(t, "technology", articles[0].Category)

	// Second cycle fully replaces the bucket; nothing from the first
	// cycle survives.
	provider.articles = candidateArticles("second cycle story", "another second cycle story")
	err = svc.RefreshBuckets(context.Background())
	assert.Equal(t, nil, err)

	articles, err = svc.Bucket("technology", 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))
	assert.Equal(t, "second cycle story", articles[0].Title)
	assert.Equal(t, "another second cycle story", articles[1].Title)
}

func TestRefreshBucketsProviderFailureKeepsOldBucket(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{name: "fake", articles: candidateArticles("surviving story")}
	svc := NewNewsService(db, provider, provider, &fakeCorroborator{}, []string{"business"}, 10)

	svc.RefreshBuckets(context.Background())

	provider.err = errors.New("provider down")
	err := svc.RefreshBuckets(context.Background())
	assert.Equal(t, nil, err)

	articles, err := svc.Bucket("business", 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "surviving story", articles[0].Title)
}

func TestBucketTrimsToLimit(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{
		name:     "fake",
		articles: candidateArticles("one", "two", "three", "four"),
	}
	svc := NewNewsService(db, provider, provider, &fakeCorroborator{}, []string{"science"}, 10)

	svc.RefreshBuckets(context.Background())

	articles, err := svc.Bucket("science", 2)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))
	assert.Equal(t, "one", articles[0].Title)
	assert.Equal(t, "two", articles[1].Title)
}

func TestBucketMissingCategory(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{name: "fake"}
	svc := NewNewsService(db, provider, provider, &fakeCorroborator{}, nil, 10)

	articles, err := svc.Bucket("unknown", 10)
	assert.Equal(t, nil, err)
	if articles != nil {
		t.Fatalf("expected nil for a missing bucket, got %v", articles)
	}
}

func TestScoreWithCorroboration(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{name: "fake"}
	corroborate := &fakeCorroborator{items: []model.FeedItem{
		{
			Title:     "parliament approves the new transport budget",
			Link:      "https://wire.example.com/budget",
			Published: "Mon, 02 Jan 2006 15:04:05 +0000",
		},
	}}
	svc := NewNewsService(db, provider, provider, corroborate, nil, 10)

	result := svc.Score(context.Background(), "parliament approves new transport budget", "", "budget")

	if result.Score <= 0 {
		t.Fatalf("expected positive score, got %f", result.Score)
	}
	assert.Equal(t, 1, len(result.MatchedLinks))
}

func TestScoreEmptyCorpus(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{name: "fake"}
	svc := NewNewsService(db, provider, provider, &fakeCorroborator{}, nil, 10)

	result := svc.Score(context.Background(), "any title", "any summary", "topic")

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, []string{}, result.MatchedLinks)
}

func TestLiveScoredProviderFailure(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{name: "fake", err: errors.New("timeout")}
	svc := NewNewsService(db, provider, provider, &fakeCorroborator{}, nil, 10)

	articles := svc.LiveScored(context.Background(), "anything", 5)
	assert.Equal(t, 0, len(articles))
}

func TestLiveScoredAttachesCredibility(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{name: "fake", articles: candidateArticles("city council approves housing plan")}
	corroborate := &fakeCorroborator{items: []model.FeedItem{
		{
			Title:     "city council approves the housing plan",
			Link:      "https://local.example.com/housing",
			Published: "Mon, 02 Jan 2006 15:04:05 +0000",
		},
	}}
	svc := NewNewsService(db, provider, provider, corroborate, nil, 10)

	articles := svc.LiveScored(context.Background(), "housing", 5)

	assert.Equal(t, 1, len(articles))
	if articles[0].Credibility.Score <= 0 {
		t.Fatalf("expected positive credibility, got %f", articles[0].Credibility.Score)
	}
}
