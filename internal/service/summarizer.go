package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newscred/config"
)

const (
	// maxSummaryInputWords caps the text handed to the summarizer.
	maxSummaryInputWords = 512

	// minSummarizableLength: shorter texts are returned as-is.
	minSummarizableLength = 100

	summaryPrompt = "Summarize the following article in 80 to 130 words. " +
		"Keep the key facts and use plain language."
)

var truncationMarker = regexp.MustCompile(`\[\d+\s*chars\]`)

// SummarizerService wraps the external text-summarization capability:
// an OpenAI-compatible chat endpoint treated as opaque and
// best-effort. Input is pre-cleaned and length-capped before the
// call.
type SummarizerService struct {
	cfg    config.SummarizerConfig
	client *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewSummarizerService(cfg config.SummarizerConfig) *SummarizerService {
	return &SummarizerService{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Summarize compresses the content into a short summary. Content too
// short to be worth summarizing is returned cleaned but otherwise
// untouched.
func (s *SummarizerService) Summarize(ctx context.Context, content string) (string, error) {
	content = CleanText(content)

	if len(content) < minSummarizableLength {
		return content, nil
	}

	words := strings.Fields(content)
	if len(words) > maxSummaryInputWords {
		content = strings.Join(words[:maxSummaryInputWords], " ")
	}

	reqBody := chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: summaryPrompt},
			{Role: "user", Content: content},
		},
	}

	jsonBody, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.APIURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarizer status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response from summarizer")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// CleanText strips HTML markup, truncation markers, and boilerplate
// phrases, and collapses whitespace.
func CleanText(text string) string {
	if strings.Contains(text, "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			text = doc.Text()
		}
	}

	text = truncationMarker.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "Read more", "")
	text = strings.ReplaceAll(text, "Hide Summary", "")

	return strings.Join(strings.Fields(text), " ")
}
