package service

import (
	"context"

	"newscred/internal/model"
)

// Provider fetches a bounded batch of candidate articles for a topic
// from one external news source. Implementations must tolerate
// missing fields in provider payloads and filter out candidates
// without a resolvable image at the boundary.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, topic string, limit int) ([]model.Article, error)
}
