package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"newscred/config"
)

func TestCleanText(t *testing.T) {
	input := "  Officials   confirmed the   figures [1200 chars] Read more  "
	assert.Equal(t, "Officials confirmed the figures", CleanText(input))
}

func TestCleanTextStripsHTML(t *testing.T) {
	input := "<p>Officials <b>confirmed</b> the figures.</p><a href=\"#\">Hide Summary</a>"
	assert.Equal(t, "Officials confirmed the figures.", CleanText(input))
}

func TestSummarizeShortContentPassthrough(t *testing.T) {
	svc := NewSummarizerService(config.SummarizerConfig{})

	summary, err := svc.Summarize(context.Background(), "A short note.")

	assert.Equal(t, nil, err)
	assert.Equal(t, "A short note.", summary)
}

func TestSummarizeCallsEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 2, len(req.Messages))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"role": "assistant", "content": " A tidy summary. "}},
			},
		})
	}))
	defer srv.Close()

	svc := NewSummarizerService(config.SummarizerConfig{
		APIURL: srv.URL,
		APIKey: "test-key",
		Model:  "test-model",
	})

	content := strings.Repeat("The committee reviewed the annual infrastructure report in detail. ", 5)
	summary, err := svc.Summarize(context.Background(), content)

	assert.Equal(t, nil, err)
	assert.Equal(t, "A tidy summary.", summary)
}

func TestSummarizeCapsInputWords(t *testing.T) {
	var gotWords int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotWords = len(strings.Fields(req.Messages[1].Content))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	svc := NewSummarizerService(config.SummarizerConfig{APIURL: srv.URL})

	content := strings.Repeat("word ", 2000)
	_, err := svc.Summarize(context.Background(), content)

	assert.Equal(t, nil, err)
	assert.Equal(t, maxSummaryInputWords, gotWords)
}

func TestSummarizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := NewSummarizerService(config.SummarizerConfig{APIURL: srv.URL})

	content := strings.Repeat("The committee reviewed the annual infrastructure report in detail. ", 5)
	_, err := svc.Summarize(context.Background(), content)
	assert.NotEqual(t, nil, err)
}
