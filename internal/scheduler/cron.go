package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"newscred/config"
	"newscred/internal/service"
)

// Scheduler drives the periodic bucket refresh and headline ingest.
// Each entry runs on the configured interval; a failing cycle is
// logged and the loop keeps running.
type Scheduler struct {
	cron           *cron.Cron
	news           *service.NewsService
	ingest         *service.IngestService
	config         config.RefreshConfig
	refreshEntryID cron.EntryID
	ingestEntryID  cron.EntryID
}

func NewScheduler(news *service.NewsService, ingest *service.IngestService, cfg config.RefreshConfig) *Scheduler {
	// A cycle that outruns the interval is skipped, never overlapped.
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		news:   news,
		ingest: ingest,
		config: cfg,
	}
}

func (s *Scheduler) Start() {
	s.refreshEntryID, _ = s.cron.AddFunc(s.config.Interval, func() {
		slog.Info("refreshing topic buckets")
		if err := s.news.RefreshBuckets(context.Background()); err != nil {
			slog.Error("bucket refresh cycle failed", "error", err)
		}
	})

	s.ingestEntryID, _ = s.cron.AddFunc(s.config.Interval, func() {
		slog.Info("ingesting headlines")
		if err := s.ingest.Run(context.Background()); err != nil {
			slog.Error("headline ingest cycle failed", "error", err)
		}
	})

	s.cron.Start()
	slog.Info("scheduler started", "interval", s.config.Interval)
}

// GetNextRefreshTime returns the next scheduled bucket refresh.
func (s *Scheduler) GetNextRefreshTime() time.Time {
	return s.cron.Entry(s.refreshEntryID).Next
}

// GetNextIngestTime returns the next scheduled headline ingest.
func (s *Scheduler) GetNextIngestTime() time.Time {
	return s.cron.Entry(s.ingestEntryID).Next
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
