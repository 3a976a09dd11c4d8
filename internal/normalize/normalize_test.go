package normalize

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases",
			input:    "The Great Gatsby",
			expected: "the great gatsby",
		},
		{
			name:     "strips punctuation",
			input:    "Nineteen Eighty-Four: A Novel!",
			expected: "nineteen eightyfour a novel",
		},
		{
			name:     "collapses whitespace",
			input:    "  A   Thousand \t Splendid   Suns  ",
			expected: "a thousand splendid suns",
		},
		{
			name:     "keeps digits",
			input:    "1984",
			expected: "1984",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only punctuation",
			input:    "?!&*",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"The Great Gatsby",
		"Nineteen Eighty-Four: A Novel!",
		"  spaced   out  ",
		"1984 by George Orwell",
		"",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestCleanForSearch(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		author   string
		expected string
	}{
		{
			name:     "plain title and author",
			title:    "The Hobbit",
			author:   "J.R.R. Tolkien",
			expected: "The Hobbit J.R.R. Tolkien",
		},
		{
			name:     "strips surrounding brackets",
			title:    "[ A Thousand Splendid Suns ]",
			author:   "Khaled Hosseini",
			expected: "A Thousand Splendid Suns Khaled Hosseini",
		},
		{
			name:     "strips parenthetical noise",
			title:    "Dune (Dune Chronicles, Book 1)",
			author:   "Frank Herbert",
			expected: "Dune Frank Herbert",
		},
		{
			name:     "strips subtitle fluff",
			title:    "Circe: A Novel",
			author:   "Madeline Miller",
			expected: "Circe Madeline Miller",
		},
		{
			name:     "reorders trailing article",
			title:    "Great Gatsby, The",
			author:   "",
			expected: "The Great Gatsby",
		},
		{
			name:     "extracts embedded author when author empty",
			title:    "1984 by George Orwell",
			author:   "",
			expected: "1984 George Orwell",
		},
		{
			name:     "keeps explicit author over embedded one",
			title:    "Death by Chocolate",
			author:   "Sally Berneathy",
			expected: "Death by Chocolate Sally Berneathy",
		},
		{
			name:     "first author only",
			title:    "Good Omens",
			author:   "Terry Pratchett and Neil Gaiman",
			expected: "Good Omens Terry Pratchett",
		},
		{
			name:     "surname-first author trimmed at comma",
			title:    "Emma",
			author:   "Austen, Jane",
			expected: "Emma Austen",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanForSearch(tt.title, tt.author)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}
