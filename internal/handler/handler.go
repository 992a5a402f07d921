package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"newscred/internal/model"
	"newscred/internal/service"
)

// NewsStore is the scoring and bucket surface the handler needs.
type NewsStore interface {
	LiveScored(ctx context.Context, topic string, limit int) []model.Article
	Bucket(category string, limit int) ([]model.Article, error)
	Score(ctx context.Context, title, summary, topic string) model.Credibility
}

// HeadlineStore reads the rolling headline store.
type HeadlineStore interface {
	Latest(limit int) ([]model.Headline, error)
}

// SavedStore manages user-saved articles.
type SavedStore interface {
	Save(article *model.SavedArticle) (bool, error)
	All() ([]model.SavedArticle, error)
	Delete(url string) (bool, error)
}

// Summarizer is the opaque text-compression capability.
type Summarizer interface {
	Summarize(ctx context.Context, content string) (string, error)
}

// StatusSource reports store counters.
type StatusSource interface {
	GetSystemStatus() (*service.SystemStatus, error)
}

type Handler struct {
	news       NewsStore
	headlines  HeadlineStore
	saved      SavedStore
	summarizer Summarizer
	status     StatusSource
	scheduler  interface {
		GetNextRefreshTime() time.Time
		GetNextIngestTime() time.Time
	}
}

func NewHandler(news NewsStore, headlines HeadlineStore, saved SavedStore, summarizer Summarizer, status StatusSource) *Handler {
	return &Handler{
		news:       news,
		headlines:  headlines,
		saved:      saved,
		summarizer: summarizer,
		status:     status,
	}
}

// SetScheduler wires the scheduler reference for the status endpoint.
func (h *Handler) SetScheduler(scheduler interface {
	GetNextRefreshTime() time.Time
	GetNextIngestTime() time.Time
}) {
	h.scheduler = scheduler
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/news", h.GetNews)
		api.GET("/favorite-topics", h.GetFavoriteTopics)
		api.GET("/headlines", h.GetHeadlines)
		api.POST("/credibility", h.ScoreCredibility)
		api.POST("/summarize", h.Summarize)

		api.POST("/save-article", h.SaveArticle)
		api.GET("/saved-articles", h.GetSavedArticles)
		api.DELETE("/delete-article", h.DeleteArticle)

		api.GET("/status", h.GetStatus)
	}
}

// ===== News and scoring =====

func (h *Handler) GetNews(c *gin.Context) {
	topic := c.DefaultQuery("topic", "trending")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	articles := h.news.LiveScored(c.Request.Context(), topic, limit)
	if articles == nil {
		articles = []model.Article{}
	}
	c.JSON(http.StatusOK, articles)
}

func (h *Handler) GetFavoriteTopics(c *gin.Context) {
	category := c.Query("category")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}

	articles, err := h.news.Bucket(category, limit)
	if err != nil {
		slog.Error("bucket read failed", "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	if articles == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no articles found for " + category})
		return
	}

	c.JSON(http.StatusOK, articles)
}

func (h *Handler) GetHeadlines(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	headlines, err := h.headlines.Latest(limit)
	if err != nil {
		slog.Error("headline read failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusOK, headlines)
}

// ScoreRequest is a synchronous scoring request: the candidate's
// title and summary, corroborated against the given topic (the title
// itself when omitted).
type ScoreRequest struct {
	Title   string `json:"title" binding:"required"`
	Summary string `json:"summary"`
	Topic   string `json:"topic"`
}

func (h *Handler) ScoreCredibility(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topic := req.Topic
	if topic == "" {
		topic = req.Title
	}

	result := h.news.Score(c.Request.Context(), req.Title, req.Summary, topic)
	c.JSON(http.StatusOK, result)
}

// ===== Summarizer =====

type SummarizeRequest struct {
	Content string `json:"content"`
}

func (h *Handler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		c.JSON(http.StatusOK, gin.H{"summary": ""})
		return
	}

	summary, err := h.summarizer.Summarize(c.Request.Context(), req.Content)
	if err != nil {
		slog.Error("summarize failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "summarization failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// ===== Saved articles =====

func (h *Handler) SaveArticle(c *gin.Context) {
	var article model.SavedArticle
	if err := c.ShouldBindJSON(&article); err != nil || article.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article data"})
		return
	}

	created, err := h.saved.Save(&article)
	if err != nil {
		slog.Error("save article failed", "url", article.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	if !created {
		c.JSON(http.StatusConflict, gin.H{"message": "article already saved"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "article saved"})
}

func (h *Handler) GetSavedArticles(c *gin.Context) {
	articles, err := h.saved.All()
	if err != nil {
		slog.Error("saved articles read failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	if articles == nil {
		articles = []model.SavedArticle{}
	}
	c.JSON(http.StatusOK, articles)
}

func (h *Handler) DeleteArticle(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	deleted, err := h.saved.Delete(url)
	if err != nil {
		slog.Error("delete article failed", "url", url, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "article deleted"})
}

// ===== Status =====

func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.status.GetSystemStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.scheduler != nil {
		status.NextRefreshTime = h.scheduler.GetNextRefreshTime()
		status.NextIngestTime = h.scheduler.GetNextIngestTime()
	}

	c.JSON(http.StatusOK, status)
}
