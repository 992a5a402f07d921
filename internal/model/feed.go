package model

// FeedItem is a corroborating entry from the independent syndication
// feed. Items are fetched fresh for each scoring pass and never
// persisted; Published keeps the feed-native date string so the
// composer owns the parse-or-fallback decision.
type FeedItem struct {
	Title     string
	Link      string
	Summary   string
	Content   string
	Published string
}

// Text returns the concatenation used for vectorization.
func (f FeedItem) Text() string {
	return f.Title + " " + f.Summary
}
