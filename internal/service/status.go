package service

import (
	"time"

	"gorm.io/gorm"

	"newscred/internal/model"
)

type StatusService struct {
	db *gorm.DB
}

type SystemStatus struct {
	TopicBuckets  int64 `json:"topic_buckets"`
	Headlines     int64 `json:"headlines"`
	SavedArticles int64 `json:"saved_articles"`

	NextRefreshTime time.Time `json:"next_refresh_time"`
	NextIngestTime  time.Time `json:"next_ingest_time"`
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

// GetSystemStatus returns store counters; the scheduler times are
// filled in by the caller.
func (s *StatusService) GetSystemStatus() (*SystemStatus, error) {
	status := &SystemStatus{}

	s.db.Model(&model.TopicBucket{}).Count(&status.TopicBuckets)
	s.db.Model(&model.Headline{}).Count(&status.Headlines)
	s.db.Model(&model.SavedArticle{}).Count(&status.SavedArticles)

	return status, nil
}
