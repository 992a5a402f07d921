package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"newscred/config"
	"newscred/internal/handler"
	"newscred/internal/model"
	"newscred/internal/scheduler"
	"newscred/internal/service"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	db.AutoMigrate(&model.TopicBucket{}, &model.Headline{}, &model.SavedArticle{})

	timeout := cfg.Refresh.FetchTimeoutDuration()
	corroborate := service.NewCorroborationService(timeout)
	newsapi := service.NewNewsAPIClient(cfg.Providers.NewsAPIKey, timeout)
	gnews := service.NewGNewsClient(cfg.Providers.GNewsKey, timeout)

	newsSvc := service.NewNewsService(db, newsapi, gnews, corroborate,
		cfg.Refresh.Categories, cfg.Refresh.BatchSize)
	ingestSvc := service.NewIngestService(db, gnews,
		cfg.Refresh.IngestCategories, cfg.Refresh.IngestLimit)
	summarizerSvc := service.NewSummarizerService(cfg.Summarizer)
	statusSvc := service.NewStatusService(db)

	// Initial population runs once at startup without blocking the
	// server; the recurring loop takes over afterwards.
	go func() {
		slog.Info("starting initial refresh")
		newsSvc.RefreshBuckets(context.Background())
		ingestSvc.Run(context.Background())
	}()

	sched := scheduler.NewScheduler(newsSvc, ingestSvc, cfg.Refresh)
	sched.Start()
	defer sched.Stop()

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	h := handler.NewHandler(newsSvc, ingestSvc, service.NewSavedService(db), summarizerSvc, statusSvc)
	h.SetScheduler(sched)
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("server exiting")
}
