package source

import (
	"strings"
	"testing"
)

func TestKnown(t *testing.T) {
	for _, typ := range All() {
		if !Known(typ) {
			t.Errorf("All() returned unknown type %q", typ)
		}
	}

	if Known(Type("MySpace")) {
		t.Error("Known should reject an unrecognized type")
	}
	if Known(Type("")) {
		t.Error("Known should reject the empty type")
	}
}

func TestDefaults(t *testing.T) {
	tests := []struct {
		typ          Type
		wantClub     string
		wantCategory string
	}{
		{Reddit, "r/bookclub", "Previously Read"},
		{Bookclubs, "Unknown Club", "Currently Reading"},
		{Goodreads, "", "Previously Read"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := tt.typ.DefaultClub(); got != tt.wantClub {
				t.Errorf("DefaultClub() = %q, want %q", got, tt.wantClub)
			}
			if got := tt.typ.DefaultCategory(); got != tt.wantCategory {
				t.Errorf("DefaultCategory() = %q, want %q", got, tt.wantCategory)
			}
		})
	}
}

func TestSearchURL(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		query    string
		expected string
	}{
		{
			name:     "reddit",
			typ:      Reddit,
			query:    "dune",
			expected: "https://www.reddit.com/r/bookclub/search/?q=dune",
		},
		{
			name:     "bookclubs",
			typ:      Bookclubs,
			query:    "dune",
			expected: "https://bookclubs.com/search?query=dune",
		},
		{
			name:     "goodreads",
			typ:      Goodreads,
			query:    "dune",
			expected: "https://www.goodreads.com/search?q=dune",
		},
		{
			name:     "spaces are escaped",
			typ:      Goodreads,
			query:    "the great gatsby",
			expected: "https://www.goodreads.com/search?q=the+great+gatsby",
		},
		{
			name:     "reserved characters are escaped",
			typ:      Reddit,
			query:    "dune & dragons?",
			expected: "https://www.reddit.com/r/bookclub/search/?q=dune+%26+dragons%3F",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.typ.SearchURL(tt.query)
			if got != tt.expected {
				t.Errorf("SearchURL(%q) = %q, want %q", tt.query, got, tt.expected)
			}
		})
	}
}

func TestSearchURLNeverEmbedsRawQuery(t *testing.T) {
	for _, typ := range All() {
		url := typ.SearchURL("a b&c")
		if strings.ContainsAny(url, " ") {
			t.Errorf("%s.SearchURL left unescaped characters: %q", typ, url)
		}
	}
}
