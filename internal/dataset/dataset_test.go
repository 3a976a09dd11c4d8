package dataset

import (
	"testing"
	"time"
)

func TestDistinctClubs(t *testing.T) {
	b := Book{Clubs: []ClubInteraction{
		{ClubName: "r/bookclub", Month: "March 2024"},
		{ClubName: "r/bookclub", Month: "June 2023"},
		{ClubName: "Mystery Readers", Month: "April 2024"},
	}}

	if got := b.DistinctClubs(); got != 2 {
		t.Errorf("DistinctClubs() = %d, want 2", got)
	}
}

func TestComputeStats(t *testing.T) {
	books := []Book{
		{
			Title:      "1984",
			Categories: []string{"Fiction", "Dystopian"},
			Clubs: []ClubInteraction{
				{ClubName: "Club A"},
				{ClubName: "Club B"},
			},
		},
		{
			Title: "Untracked Zine",
			Clubs: []ClubInteraction{
				{ClubName: "Club A"},
			},
		},
		{
			Title:      "Dune",
			Categories: []string{"Science Fiction"},
			Clubs: []ClubInteraction{
				{ClubName: "Club C"},
				{ClubName: "Club C"},
			},
		},
	}

	stats, genres := ComputeStats(books)

	if stats.TotalUniqueBooks != 3 {
		t.Errorf("TotalUniqueBooks = %d, want 3", stats.TotalUniqueBooks)
	}
	if stats.TotalClubInteractions != 5 {
		t.Errorf("TotalClubInteractions = %d, want 5", stats.TotalClubInteractions)
	}
	if stats.BooksWithGenre != 2 {
		t.Errorf("BooksWithGenre = %d, want 2", stats.BooksWithGenre)
	}
	// Dune's two interactions are the same club; only 1984 counts.
	if stats.BooksReadByMultipleClubs != 1 {
		t.Errorf("BooksReadByMultipleClubs = %d, want 1", stats.BooksReadByMultipleClubs)
	}

	want := []string{"Dystopian", "Fiction", "Science Fiction"}
	if len(genres) != len(want) {
		t.Fatalf("genres = %v, want %v", genres, want)
	}
	for i := range want {
		if genres[i] != want[i] {
			t.Fatalf("genres = %v, want sorted %v", genres, want)
		}
	}
}

func TestEmpty(t *testing.T) {
	ds := Empty()
	if ds.Books == nil || ds.AllGenres == nil {
		t.Error("Empty() must return non-nil slices so JSON encodes [] not null")
	}
	if len(ds.Books) != 0 || ds.Stats.TotalUniqueBooks != 0 {
		t.Errorf("Empty() is not empty: %+v", ds)
	}
	if !ds.GeneratedAt.Equal(time.Time{}) {
		t.Errorf("Empty() should carry no freshness timestamp, got %v", ds.GeneratedAt)
	}
}
