// Package enrich turns raw per-source mention lists into one consolidated,
// deduplicated dataset. It is an offline batch job: single pass, one atomic
// output artifact that wholly replaces the previous snapshot.
package enrich

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/bookmate-hq/bookmate/internal/dataset"
	"github.com/bookmate-hq/bookmate/internal/mention"
	"github.com/bookmate-hq/bookmate/internal/resolver"
)

// Resolver derives the canonical identity for a raw title/author pair.
type Resolver interface {
	Resolve(ctx context.Context, title, author string) resolver.Resolution
}

// Embedder produces embedding vectors for fuzzy cluster merging.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Options tunes an enrichment run.
type Options struct {
	// Embedder enables the semantic merge pass when non-nil.
	Embedder Embedder
	// Quota caps how many clusters get provider lookups per run.
	Quota int
	// SimilarityThreshold is the minimum cosine similarity for a fuzzy merge.
	SimilarityThreshold float64
	// Concurrency bounds simultaneous provider lookups.
	Concurrency int
}

const (
	defaultQuota               = 1000
	defaultSimilarityThreshold = 0.75
	defaultConcurrency         = 4
)

// Engine is the deduplication & enrichment engine.
type Engine struct {
	resolver Resolver
	opts     Options
}

// New creates an engine. A nil resolver resolves everything to fallback keys.
func New(res Resolver, opts Options) *Engine {
	if opts.Quota <= 0 {
		opts.Quota = defaultQuota
	}
	if opts.SimilarityThreshold <= 0 {
		opts.SimilarityThreshold = defaultSimilarityThreshold
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &Engine{resolver: res, opts: opts}
}

// Run consumes the raw mention collections and produces the consolidated
// dataset. Running twice on identical input produces identical books and
// stats; a provider failure degrades single books to fallback keys but never
// aborts the run.
func (e *Engine) Run(ctx context.Context, collections []mention.Collection) (*dataset.Dataset, Report, error) {
	report := Report{Quota: e.opts.Quota}
	for _, col := range collections {
		report.Sources = append(report.Sources, col.Source)
		report.RawMentions += len(col.Mentions)
	}

	clusters := group(collections)
	slog.Info("Pre-grouped mentions", "mentions", report.RawMentions, "clusters", len(clusters))

	clusters = mergeByEmbedding(ctx, e.opts.Embedder, clusters, e.opts.SimilarityThreshold)
	report.Clusters = len(clusters)

	resolutions := e.resolveClusters(ctx, clusters)

	books := e.assemble(clusters, resolutions)

	for _, res := range resolutions {
		if res.Verified {
			report.Resolved++
		} else {
			report.Fallback++
		}
	}

	stats, genres := dataset.ComputeStats(books)
	report.UniqueBooks = stats.TotalUniqueBooks
	report.BooksWithGenre = stats.BooksWithGenre
	report.MultiClubBooks = stats.BooksReadByMultipleClubs

	ds := &dataset.Dataset{
		GeneratedAt: nowUTC(),
		Stats:       stats,
		AllGenres:   genres,
		Books:       books,
	}

	slog.Info("Enrichment complete",
		"raw_mentions", report.RawMentions,
		"clusters", report.Clusters,
		"resolved", report.Resolved,
		"fallback", report.Fallback,
		"unique_books", stats.TotalUniqueBooks)

	return ds, report, nil
}

// resolveClusters assigns an identity to every cluster. Only the top-priority
// clusters inside the quota hit the provider; the remainder keep their
// fallback keys.
func (e *Engine) resolveClusters(ctx context.Context, clusters []*cluster) map[*cluster]resolver.Resolution {
	resolutions := make(map[*cluster]resolver.Resolution, len(clusters))

	prioritized := make([]*cluster, len(clusters))
	copy(prioritized, clusters)
	sortByPriority(prioritized)

	toFetch, remainder := sliceBudget(prioritized, e.opts.Quota)
	for _, c := range remainder {
		resolutions[c] = resolver.Resolution{Key: c.key}
	}

	if e.resolver == nil {
		for _, c := range toFetch {
			resolutions[c] = resolver.Resolution{Key: c.key}
		}
		return resolutions
	}

	slog.Info("Resolving clusters", "to_fetch", len(toFetch), "skipping", len(remainder))

	// Process lookups with concurrency control
	var mu sync.Mutex
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, e.opts.Concurrency)

	for _, c := range toFetch {
		wg.Add(1)
		go func(c *cluster) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			res := e.resolver.Resolve(ctx, c.title, c.author)

			mu.Lock()
			resolutions[c] = res
			mu.Unlock()
		}(c)
	}
	wg.Wait()

	return resolutions
}

// assemble groups clusters by resolved identity into canonical books,
// appending club interactions in encounter order.
func (e *Engine) assemble(clusters []*cluster, resolutions map[*cluster]resolver.Resolution) []dataset.Book {
	byKey := make(map[string]*dataset.Book)
	var order []string

	for _, c := range clusters {
		res := resolutions[c]

		book, ok := byKey[res.Key]
		if !ok {
			book = &dataset.Book{}
			if res.Verified {
				book.ID = res.Volume.ID
				book.Title = res.Volume.Title
				book.Author = res.Volume.Author
				book.Categories = res.Volume.Categories
				book.PageCount = res.Volume.PageCount
				book.PublishedDate = res.Volume.PublishedDate
				book.Thumbnail = res.Volume.Thumbnail
				book.Description = res.Volume.Description
				book.Verified = true
			} else {
				book.Title = c.title
				book.Author = c.author
			}
			byKey[res.Key] = book
			order = append(order, res.Key)
		} else if res.Verified {
			// Two raw spellings resolved to the same identity: keep the
			// first seeding, fill in whatever it was missing.
			if len(book.Categories) == 0 {
				book.Categories = res.Volume.Categories
			}
			if book.PageCount == 0 {
				book.PageCount = res.Volume.PageCount
			}
			if book.Thumbnail == "" {
				book.Thumbnail = res.Volume.Thumbnail
			}
			if book.Description == "" {
				book.Description = res.Volume.Description
			}
		}

		for _, m := range c.mentions {
			book.Clubs = append(book.Clubs, dataset.ClubInteraction{
				ClubName:      m.ClubName,
				SourceType:    string(m.SourceType),
				DiscussionURL: m.DiscussionURL,
				Month:         m.Month,
				OriginalTitle: m.Title,
			})
		}
	}

	books := make([]dataset.Book, 0, len(order))
	for _, key := range order {
		books = append(books, *byKey[key])
	}

	sort.SliceStable(books, func(i, j int) bool {
		ti, tj := strings.ToLower(books[i].Title), strings.ToLower(books[j].Title)
		if ti != tj {
			return ti < tj
		}
		return books[i].Title < books[j].Title
	})

	return books
}
