// Package dataset defines the consolidated snapshot produced by the
// enrichment engine and consumed read-only by the search path.
package dataset

import (
	"sort"
	"time"
)

// ClubInteraction records one club's engagement with a book. Owned by its
// parent Book; never shared.
type ClubInteraction struct {
	ClubName      string `json:"club_name" parquet:"club_name"`
	SourceType    string `json:"source_type" parquet:"source_type"`
	DiscussionURL string `json:"discussion_url" parquet:"discussion_url"`
	Month         string `json:"month" parquet:"month"`
	OriginalTitle string `json:"original_title" parquet:"original_title"`
}

// Book is one canonical, deduplicated book and every club interaction that
// resolved to it. Created once per identity during enrichment; read-only
// afterward.
type Book struct {
	ID            string            `json:"google_books_id,omitempty" parquet:"google_books_id"`
	Title         string            `json:"canonical_title" parquet:"canonical_title"`
	Author        string            `json:"canonical_author" parquet:"canonical_author"`
	Categories    []string          `json:"categories" parquet:"categories,list"`
	PageCount     int               `json:"page_count,omitempty" parquet:"page_count"`
	PublishedDate string            `json:"published_date,omitempty" parquet:"published_date"`
	Thumbnail     string            `json:"thumbnail,omitempty" parquet:"thumbnail"`
	Description   string            `json:"description,omitempty" parquet:"description"`
	Verified      bool              `json:"verified" parquet:"verified"`
	Clubs         []ClubInteraction `json:"clubs" parquet:"clubs,list"`
}

// DistinctClubs counts the distinct club names across this book's
// interactions.
func (b *Book) DistinctClubs() int {
	seen := make(map[string]struct{}, len(b.Clubs))
	for _, c := range b.Clubs {
		seen[c.ClubName] = struct{}{}
	}
	return len(seen)
}

// Stats summarizes one enrichment run.
type Stats struct {
	TotalUniqueBooks         int `json:"total_unique_books" yaml:"totaluniquebooks"`
	TotalClubInteractions    int `json:"total_club_interactions" yaml:"totalclubinteractions"`
	BooksWithGenre           int `json:"books_with_genre" yaml:"bookswithgenre"`
	BooksReadByMultipleClubs int `json:"books_read_by_multiple_clubs" yaml:"booksreadbymultipleclubs"`
}

// Dataset is the atomic snapshot the search path serves from. A refresh
// replaces the whole snapshot; it is never partially updated.
type Dataset struct {
	GeneratedAt time.Time `json:"enriched_at"`
	Stats       Stats     `json:"stats"`
	AllGenres   []string  `json:"all_genres"`
	Books       []Book    `json:"books"`
}

// Empty is the snapshot served when no dataset artifact can be loaded.
func Empty() *Dataset {
	return &Dataset{
		AllGenres: []string{},
		Books:     []Book{},
	}
}

// ComputeStats derives the aggregate stats and the sorted genre vocabulary
// for a set of books.
func ComputeStats(books []Book) (Stats, []string) {
	stats := Stats{TotalUniqueBooks: len(books)}

	genreSet := make(map[string]struct{})
	for i := range books {
		b := &books[i]
		stats.TotalClubInteractions += len(b.Clubs)
		if len(b.Categories) > 0 {
			stats.BooksWithGenre++
		}
		if b.DistinctClubs() >= 2 {
			stats.BooksReadByMultipleClubs++
		}
		for _, cat := range b.Categories {
			genreSet[cat] = struct{}{}
		}
	}

	genres := make([]string, 0, len(genreSet))
	for g := range genreSet {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	return stats, genres
}
