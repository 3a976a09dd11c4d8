// Package mention holds the raw, pre-deduplication book records produced by
// the scraping collaborators, and the loaders that read their output files.
package mention

import (
	"time"

	"github.com/bookmate-hq/bookmate/internal/source"
)

// RawMention is one scraped occurrence of a book tied to one club. Immutable
// once loaded.
type RawMention struct {
	Title         string      `json:"title"`
	Author        string      `json:"author"`
	Category      string      `json:"category"`
	ClubName      string      `json:"club_name"`
	SourceType    source.Type `json:"source_type"`
	DiscussionURL string      `json:"discussion_url"`
	Month         string      `json:"month"`
	MemberCount   int         `json:"member_count"`
}

// CurrentlyReading reports whether this mention was marked as a club's
// current pick on its source platform.
func (m RawMention) CurrentlyReading() bool {
	return m.Category == "Currently Reading"
}

// Collection is one scraper output: every mention retrieved from a single
// source in one run.
type Collection struct {
	Source      string       `json:"source"`
	RetrievedAt time.Time    `json:"scraped_at"`
	Mentions    []RawMention `json:"books"`
}
