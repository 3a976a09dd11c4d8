package search

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bookmate-hq/bookmate/internal/active"
	"github.com/bookmate-hq/bookmate/internal/dataset"
	"github.com/bookmate-hq/bookmate/internal/normalize"
	"github.com/bookmate-hq/bookmate/internal/source"
)

const (
	// MaxResults bounds the result list regardless of match count.
	MaxResults = 50
	// scoreThreshold is the minimum (exclusive) score for inclusion.
	scoreThreshold = 20
	// neutralScore is assigned to every book on browse (sub-2-char) queries.
	neutralScore = 50
	// fallbackQueryPlaceholder parameterizes fallback links for empty queries.
	fallbackQueryPlaceholder = "book club"
)

// Result is one scored search hit, derived from a canonical book.
type Result struct {
	Title      string                    `json:"title"`
	Author     string                    `json:"author"`
	Categories []string                  `json:"categories"`
	PageCount  int                       `json:"page_count,omitempty"`
	Thumbnail  string                    `json:"thumbnail,omitempty"`
	Clubs      []dataset.ClubInteraction `json:"clubs"`
	Verified   bool                      `json:"verified"`
	Relevance  int                       `json:"relevance_score"`
}

// FallbackLinks are pre-built external search URLs, offered so a zero-result
// query still leads somewhere.
type FallbackLinks struct {
	Reddit    string `json:"reddit"`
	Bookclubs string `json:"bookclubs"`
	Goodreads string `json:"goodreads"`
}

// Response is the full search payload.
type Response struct {
	Query         string        `json:"query"`
	TotalResults  int           `json:"total_results"`
	TotalIndexed  int           `json:"total_indexed"`
	AllGenres     []string      `json:"all_genres"`
	Results       []Result      `json:"results"`
	FallbackLinks FallbackLinks `json:"fallback_links"`
	DataFreshness string        `json:"data_freshness,omitempty"`
}

// Searcher answers queries against the cached dataset. It holds no mutable
// state of its own and is safe for concurrent use.
type Searcher struct {
	cache *dataset.Cache
	now   func() time.Time
}

// NewSearcher creates a searcher over the given dataset cache.
func NewSearcher(cache *dataset.Cache) *Searcher {
	return &Searcher{cache: cache, now: time.Now}
}

// Search filters, scores, ranks and truncates. Queries shorter than two
// characters browse the whole (filtered) list alphabetically at a neutral
// score instead of being scored. TotalResults reports the full match count
// even when the result list is clamped to MaxResults.
func (s *Searcher) Search(query string, activeOnly bool, genre string) Response {
	ds := s.cache.Get()
	now := s.now()

	books := make([]*dataset.Book, 0, len(ds.Books))
	for i := range ds.Books {
		books = append(books, &ds.Books[i])
	}

	if activeOnly {
		books = filterBooks(books, func(b *dataset.Book) bool {
			return bookActive(b, now)
		})
	}

	if genre != "" {
		ng := normalize.Normalize(genre)
		books = filterBooks(books, func(b *dataset.Book) bool {
			for _, cat := range b.Categories {
				if strings.Contains(normalize.Normalize(cat), ng) {
					return true
				}
			}
			return false
		})
	}

	q := strings.TrimSpace(query)

	var results []Result
	if utf8.RuneCountInString(q) < 2 {
		results = browseAll(books)
	} else {
		results = scoreAll(q, books)
	}

	total := len(results)
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	var freshness string
	if !ds.GeneratedAt.IsZero() {
		freshness = ds.GeneratedAt.UTC().Format(time.RFC3339)
	}

	return Response{
		Query:         q,
		TotalResults:  total,
		TotalIndexed:  len(ds.Books),
		AllGenres:     ds.AllGenres,
		Results:       results,
		FallbackLinks: Links(q),
		DataFreshness: freshness,
	}
}

// browseAll turns every retained book into a neutral-score result, ordered by
// title ascending.
func browseAll(books []*dataset.Book) []Result {
	results := make([]Result, 0, len(books))
	for _, b := range books {
		results = append(results, toResult(b, neutralScore))
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Title < results[j].Title
	})
	return results
}

// scoreAll scores every retained book and keeps those above the threshold,
// ordered by score descending with canonical title ascending as the
// tie-break.
func scoreAll(query string, books []*dataset.Book) []Result {
	var results []Result
	for _, b := range books {
		clubs := make([]string, len(b.Clubs))
		for i, c := range b.Clubs {
			clubs[i] = c.ClubName
		}

		score := Score(query, b.Title, b.Author, clubs)
		if score > scoreThreshold {
			results = append(results, toResult(b, score))
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Relevance != results[j].Relevance {
			return results[i].Relevance > results[j].Relevance
		}
		return results[i].Title < results[j].Title
	})
	return results
}

// Links builds the three external fallback search URLs for a raw query. An
// empty query gets a generic placeholder term.
func Links(query string) FallbackLinks {
	if strings.TrimSpace(query) == "" {
		query = fallbackQueryPlaceholder
	}
	return FallbackLinks{
		Reddit:    source.Reddit.SearchURL(query),
		Bookclubs: source.Bookclubs.SearchURL(query),
		Goodreads: source.Goodreads.SearchURL(query),
	}
}

// bookActive reports whether any of the book's club interactions falls in
// the recent-activity window. The club list itself is never filtered; active
// status is a property of the whole book.
func bookActive(b *dataset.Book, now time.Time) bool {
	for _, c := range b.Clubs {
		if active.InWindow(c.Month, now) {
			return true
		}
	}
	return false
}

func filterBooks(books []*dataset.Book, keep func(*dataset.Book) bool) []*dataset.Book {
	kept := books[:0]
	for _, b := range books {
		if keep(b) {
			kept = append(kept, b)
		}
	}
	return kept
}

func toResult(b *dataset.Book, score int) Result {
	return Result{
		Title:      b.Title,
		Author:     b.Author,
		Categories: b.Categories,
		PageCount:  b.PageCount,
		Thumbnail:  b.Thumbnail,
		Clubs:      b.Clubs,
		Verified:   true,
		Relevance:  score,
	}
}
