// Package source models the closed set of scraped origins. Each source type
// carries its own defaults for absent club names and read categories, plus the
// external search URL template used for fallback links, so per-loader
// fallbacks do not get scattered across call sites.
package source

import (
	"fmt"
	"net/url"
)

// Type identifies which scraped site a raw mention came from.
type Type string

const (
	Reddit    Type = "Reddit"
	Bookclubs Type = "Bookclubs.com"
	Goodreads Type = "Goodreads"
)

type variant struct {
	defaultClub     string
	defaultCategory string
	searchTemplate  string // %s receives the percent-encoded query
}

var variants = map[Type]variant{
	Reddit: {
		defaultClub:     "r/bookclub",
		defaultCategory: "Previously Read",
		searchTemplate:  "https://www.reddit.com/r/bookclub/search/?q=%s",
	},
	Bookclubs: {
		defaultClub:     "Unknown Club",
		defaultCategory: "Currently Reading",
		searchTemplate:  "https://bookclubs.com/search?query=%s",
	},
	Goodreads: {
		defaultClub:     "",
		defaultCategory: "Previously Read",
		searchTemplate:  "https://www.goodreads.com/search?q=%s",
	},
}

// All returns every known source type in stable order.
func All() []Type {
	return []Type{Reddit, Bookclubs, Goodreads}
}

// Known reports whether t is one of the closed set of source types.
func Known(t Type) bool {
	_, ok := variants[t]
	return ok
}

// DefaultClub is the club name assumed when a scraper emitted none.
func (t Type) DefaultClub() string {
	return variants[t].defaultClub
}

// DefaultCategory is the read status assumed when a scraper emitted none.
func (t Type) DefaultCategory() string {
	return variants[t].defaultCategory
}

// SearchURL builds this source's external search URL for the given raw query.
func (t Type) SearchURL(query string) string {
	return fmt.Sprintf(variants[t].searchTemplate, url.QueryEscape(query))
}
