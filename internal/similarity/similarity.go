// Package similarity builds a term-weighted vector space over a
// candidate document and its corroborating corpus and computes the
// cosine similarity between them. It holds no state between calls:
// the same inputs always produce the same matches.
package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const (
	// MatchThreshold is the minimum cosine similarity for a
	// corroborating document to count as a match.
	MatchThreshold = 0.30

	// maxVocabulary caps the shared term space at the most frequent
	// terms across the corpus.
	maxVocabulary = 500
)

// Match pairs a corroborating document's index with its similarity
// against the candidate.
type Match struct {
	Index int
	Score float64
}

// Matches vectorizes the candidate together with the corroborating
// documents and returns, in input order, the documents whose cosine
// similarity reaches MatchThreshold. An empty corpus yields no
// matches; the candidate is unscorable, not an error.
func Matches(candidate string, docs []string) []Match {
	if len(docs) == 0 {
		return nil
	}

	corpus := make([][]string, 0, len(docs)+1)
	corpus = append(corpus, tokenize(candidate))
	for _, d := range docs {
		corpus = append(corpus, tokenize(d))
	}

	vocab := buildVocabulary(corpus)
	if len(vocab) == 0 {
		return nil
	}

	idf := inverseDocumentFrequency(corpus, vocab)

	vectors := make([]map[int]float64, len(corpus))
	for i, tokens := range corpus {
		vectors[i] = vectorize(tokens, vocab, idf)
	}

	var matches []Match
	for i := 1; i < len(vectors); i++ {
		sim := dot(vectors[0], vectors[i])
		if sim >= MatchThreshold {
			matches = append(matches, Match{Index: i - 1, Score: sim})
		}
	}
	return matches
}

// tokenize lowercases, splits on non-alphanumerics, and drops stop
// words and single-character tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// buildVocabulary assigns each surviving term a stable id. When the
// corpus has more distinct terms than maxVocabulary, the most frequent
// terms win, with lexicographic order breaking ties so vectorization
// stays deterministic.
func buildVocabulary(corpus [][]string) map[string]int {
	counts := make(map[string]int)
	for _, doc := range corpus {
		for _, t := range doc {
			counts[t]++
		}
	}

	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > maxVocabulary {
		terms = terms[:maxVocabulary]
	}

	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return vocab
}

// inverseDocumentFrequency computes smoothed idf weights per term id.
// Smoothing keeps terms present in every document from zeroing out.
func inverseDocumentFrequency(corpus [][]string, vocab map[string]int) []float64 {
	df := make([]float64, len(vocab))
	seen := make(map[int]struct{}, len(vocab))
	for _, doc := range corpus {
		clear(seen)
		for _, t := range doc {
			if id, ok := vocab[t]; ok {
				if _, dup := seen[id]; !dup {
					seen[id] = struct{}{}
					df[id]++
				}
			}
		}
	}

	n := float64(len(corpus))
	idf := make([]float64, len(df))
	for id, d := range df {
		idf[id] = math.Log((1+n)/(1+d)) + 1
	}
	return idf
}

// vectorize produces an l2-normalized tf-idf vector for one document.
func vectorize(tokens []string, vocab map[string]int, idf []float64) map[int]float64 {
	vec := make(map[int]float64)
	for _, t := range tokens {
		if id, ok := vocab[t]; ok {
			vec[id]++
		}
	}

	var norm float64
	for id := range vec {
		vec[id] *= idf[id]
		norm += vec[id] * vec[id]
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for id := range vec {
			vec[id] /= norm
		}
	}
	return vec
}

// dot is the cosine similarity of two l2-normalized sparse vectors.
func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for id, v := range a {
		sum += v * b[id]
	}
	return sum
}
