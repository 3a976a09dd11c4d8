package enrich

import (
	"context"
	"log/slog"
	"math"

	"github.com/bookmate-hq/bookmate/internal/mention"
	"github.com/bookmate-hq/bookmate/internal/resolver"
)

// cluster is one group of raw mentions believed to describe the same book,
// formed before any provider lookup.
type cluster struct {
	key      string // fallback identity key of the representative pair
	title    string // representative raw title
	author   string // representative raw author
	mentions []mention.RawMention
}

// group pre-groups mentions by their fallback identity key, preserving first-
// encounter order of both clusters and the mentions inside them. Mentions
// with an empty title cannot form a meaningful identity and are dropped.
func group(collections []mention.Collection) []*cluster {
	byKey := make(map[string]*cluster)
	var ordered []*cluster
	dropped := 0

	for _, col := range collections {
		for _, m := range col.Mentions {
			if m.Title == "" {
				dropped++
				continue
			}

			key := resolver.FallbackKey(m.Title, m.Author)
			if key == "" {
				dropped++
				continue
			}

			c, ok := byKey[key]
			if !ok {
				c = &cluster{key: key, title: m.Title, author: m.Author}
				byKey[key] = c
				ordered = append(ordered, c)
			}
			c.mentions = append(c.mentions, m)
		}
	}

	if dropped > 0 {
		slog.Debug("Dropped malformed mentions", "count", dropped)
	}
	return ordered
}

// mergeByEmbedding merges clusters whose representative strings are
// semantically near-duplicates: embeddings with cosine similarity at or above
// the threshold collapse into one cluster. The surviving representative is
// the member cluster with the most mentions. An embedding failure leaves the
// clusters unmerged; string grouping alone is still correct.
func mergeByEmbedding(ctx context.Context, embedder Embedder, clusters []*cluster, threshold float64) []*cluster {
	if embedder == nil || len(clusters) < 2 {
		return clusters
	}

	keys := make([]string, len(clusters))
	for i, c := range clusters {
		keys[i] = c.key
	}

	vectors, err := embedder.Embed(ctx, keys)
	if err != nil {
		slog.Warn("Embedding failed, skipping fuzzy merge", "err", err)
		return clusters
	}
	if len(vectors) != len(clusters) {
		slog.Warn("Embedding count mismatch, skipping fuzzy merge",
			"expected", len(clusters), "got", len(vectors))
		return clusters
	}

	// Union-find over cluster indices.
	parent := make([]int, len(clusters))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := 0; i < len(clusters); i++ {
		for j := i + 1; j < len(clusters); j++ {
			if cosineSimilarity(vectors[i], vectors[j]) >= threshold {
				ri, rj := find(i), find(j)
				if ri != rj {
					parent[rj] = ri
				}
			}
		}
	}

	// Collapse each union into one cluster, keeping first-encounter order.
	merged := make(map[int]*cluster)
	var ordered []*cluster
	for i, c := range clusters {
		root := find(i)
		dst, ok := merged[root]
		if !ok {
			dst = &cluster{key: c.key, title: c.title, author: c.author}
			merged[root] = dst
			ordered = append(ordered, dst)
		} else if len(c.mentions) > len(dst.mentions) {
			// Representative comes from the largest member.
			dst.key, dst.title, dst.author = c.key, c.title, c.author
		}
		dst.mentions = append(dst.mentions, c.mentions...)
	}

	if len(ordered) < len(clusters) {
		slog.Info("Fuzzy merge collapsed clusters",
			"before", len(clusters), "after", len(ordered))
	}
	return ordered
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
