package model

import (
	"net/url"
	"time"
)

// Credibility is the output of one scoring pass, embedded into the
// article it was computed for. It is recomputed wholesale on every
// refresh cycle, never updated incrementally.
type Credibility struct {
	Score        float64  `json:"score"`
	MatchedLinks []string `json:"matched_links"`
}

// Article is a candidate news item from an external provider.
type Article struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Content     string      `json:"content"`
	URL         string      `json:"url"`
	Image       string      `json:"image"`
	Publisher   string      `json:"publisher"`
	PublishedAt time.Time   `json:"published_at"`
	Category    string      `json:"category,omitempty"`
	Credibility Credibility `json:"credibility"`
}

// TopicBucket holds the full scored article list for one category.
// The list lives in a single JSON column so a refresh replaces the
// bucket in one row write: readers see the old set or the new set,
// never a mix.
type TopicBucket struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Category  string    `gorm:"size:100;uniqueIndex;not null" json:"category"`
	Articles  []Article `gorm:"serializer:json" json:"articles"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Headline is a row in the rolling headline store. Title is the dedup
// key on this path; rows older than the retention window are pruned
// each cycle and each category keeps only its newest entries.
type Headline struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:500;uniqueIndex;not null" json:"title"`
	URL         string    `gorm:"size:500;not null" json:"url"`
	Category    string    `gorm:"size:100;index" json:"category"`
	Source      string    `gorm:"size:255" json:"source"`
	Image       string    `gorm:"size:500" json:"image"`
	Text        string    `gorm:"type:text" json:"text"`
	Summary     string    `gorm:"type:text" json:"summary"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// SavedArticle is a user-saved article. URL is the identity key.
type SavedArticle struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:500" json:"title"`
	URL       string    `gorm:"size:500;uniqueIndex;not null" json:"url"`
	Image     string    `gorm:"size:500" json:"image"`
	Publisher string    `gorm:"size:255" json:"publisher"`
	Category  string    `gorm:"size:100" json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidURL reports whether raw parses as an http(s) URL with a host.
func ValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
