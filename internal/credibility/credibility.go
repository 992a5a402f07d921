// Package credibility composes a credibility score for a candidate
// article from its corroborating feed items. Scoring is a pure
// function over caller-supplied data; the weights below are fixed
// product constants and are not configurable.
package credibility

import (
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"newscred/internal/model"
	"newscred/internal/similarity"
)

const (
	// staleFallbackDays is assigned when a feed date cannot be
	// parsed, so such items are never treated as recent.
	staleFallbackDays = 30

	recentDays  = 2
	recentBoost = 0.5
	weekDays    = 7
	weekBoost   = 0.2

	domainWeight = 0.3
	maxDiversity = 1.5

	clickbaitPenalty = 1.0
)

// clickbaitPatterns is the fixed table of sensational title phrases.
var clickbaitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`you won't believe`),
	regexp.MustCompile(`shocking`),
	regexp.MustCompile(`amazing`),
	regexp.MustCompile(`what happened next`),
	regexp.MustCompile(`top \d+`),
	regexp.MustCompile(`this is why`),
	regexp.MustCompile(`can't miss`),
	regexp.MustCompile(`secret`),
	regexp.MustCompile(`revealed`),
	regexp.MustCompile(`hack`),
	regexp.MustCompile(`boost`),
	regexp.MustCompile(`insane`),
	regexp.MustCompile(`crazy`),
	regexp.MustCompile(`trick`),
	regexp.MustCompile(`epic`),
}

// feedDateLayouts covers the date formats syndication feeds emit.
var feedDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

// IsClickbait reports whether the title matches any pattern in the
// fixed sensational-phrase table.
func IsClickbait(title string) bool {
	lower := strings.ToLower(title)
	for _, p := range clickbaitPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// DaysSince parses a feed-native date string and returns the whole
// days elapsed since then. Unparsable dates fall back to
// staleFallbackDays rather than erroring.
func DaysSince(raw string) int {
	return daysSinceAt(raw, time.Now())
}

func daysSinceAt(raw string, now time.Time) int {
	for _, layout := range feedDateLayouts {
		published, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return int(now.UTC().Sub(published.UTC()).Hours() / 24)
	}
	return staleFallbackDays
}

// Score cross-references the candidate against its corroborating
// items and composes the final credibility result: one point per
// matched item, a capped bonus for distinct source domains, a recency
// boost per fresh match, and a flat penalty for clickbait framing.
// The result is floored at zero and rounded to two decimals.
func Score(title, summary string, items []model.FeedItem) model.Credibility {
	return scoreAt(title, summary, items, time.Now())
}

func scoreAt(title, summary string, items []model.FeedItem, now time.Time) model.Credibility {
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Text()
	}

	matches := similarity.Matches(title+" "+summary, texts)
	if len(matches) == 0 {
		return model.Credibility{Score: 0, MatchedLinks: []string{}}
	}

	links := []string{}
	domains := make(map[string]struct{})
	var recency float64

	for _, m := range matches {
		item := items[m.Index]
		if !model.ValidURL(item.Link) {
			continue
		}
		links = append(links, item.Link)

		if u, err := url.Parse(item.Link); err == nil {
			domains[u.Host] = struct{}{}
		}

		switch days := daysSinceAt(item.Published, now); {
		case days <= recentDays:
			recency += recentBoost
		case days <= weekDays:
			recency += weekBoost
		}
	}

	base := float64(len(matches))
	diversity := math.Min(maxDiversity, domainWeight*float64(len(domains)))

	var penalty float64
	if IsClickbait(title) {
		penalty = clickbaitPenalty
	}

	score := math.Max(0, base+diversity+recency-penalty)

	return model.Credibility{
		Score:        math.Round(score*100) / 100,
		MatchedLinks: links,
	}
}
