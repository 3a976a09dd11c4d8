// Package normalize provides the canonical string folding shared by
// deduplication-key construction and query matching. Both call sites must use
// the same folding; if they diverge, books stop merging and search stops
// finding them.
package normalize

import (
	"regexp"
	"strings"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace = regexp.MustCompile(`\s+`)

	leadingBracket  = regexp.MustCompile(`^\s*\[\s*`)
	trailingBracket = regexp.MustCompile(`\s*\]\s*$`)
	inlineBracket   = regexp.MustCompile(`\[.*?\]`)
	parenthetical   = regexp.MustCompile(`\(.*?\)`)
	embeddedAuthor  = regexp.MustCompile(`(?i)^(.+?)\s+by\s+(.+)$`)
	commaArticle    = regexp.MustCompile(`(?i)^(.+),\s*(The|A|An)$`)

	subtitleFluff = []*regexp.Regexp{
		regexp.MustCompile(`(?i):\s*a novel\b`),
		regexp.MustCompile(`(?i):\s*a memoir\b`),
		regexp.MustCompile(`(?i):\s*a thriller\b`),
		regexp.MustCompile(`(?i):\s*a.*?book club pick\b`),
		regexp.MustCompile(`(?i):\s*an? .*?best book\b`),
	}
)

// Normalize lowercases s, strips everything that is not a letter, digit or
// space, collapses runs of whitespace to single spaces, and trims. Idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanForSearch builds a metadata-provider query from a messy scraped title
// and author. It strips bracket noise, parentheticals and subtitle fluff,
// reorders "Title, The" to "The Title", pulls an embedded "Title by Author"
// apart when the author field is empty, and appends the first listed author.
func CleanForSearch(title, author string) string {
	t := leadingBracket.ReplaceAllString(title, "")
	t = trailingBracket.ReplaceAllString(t, "")

	// Duplicate title patterns like "Title ] [ TITLE"
	if strings.Contains(t, "] [") {
		t = strings.Trim(strings.SplitN(t, "]", 2)[0], " [")
	}

	t = inlineBracket.ReplaceAllString(t, "")
	t = parenthetical.ReplaceAllString(t, "")

	for _, re := range subtitleFluff {
		t = re.ReplaceAllString(t, "")
	}

	if m := commaArticle.FindStringSubmatch(t); m != nil {
		t = m[2] + " " + m[1]
	}

	if strings.TrimSpace(author) == "" {
		if m := embeddedAuthor.FindStringSubmatch(t); m != nil {
			t = m[1]
			author = m[2]
		}
	}

	t = strings.Trim(t, " .:;,-–—")
	t = whitespace.ReplaceAllString(t, " ")
	t = strings.TrimSpace(t)

	first := firstAuthor(author)
	if first != "" {
		return strings.TrimSpace(t + " " + first)
	}
	return t
}

// firstAuthor reduces an author field like "A. Smith and B. Jones" or
// "Smith, A." to its first listed name.
func firstAuthor(author string) string {
	a := strings.SplitN(author, " and ", 2)[0]
	a = strings.SplitN(a, ",", 2)[0]
	return strings.TrimSpace(a)
}
