package clean

import (
	"reflect"
	"testing"
)

// TestCleanText tests text normalization
func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already clean", "sharp objects", "sharp objects"},
		{"mixed case", "Sharp Objects", "sharp objects"},
		{"punctuation", "It's Only the Himalayas", "its only the himalayas"},
		{"surrounding whitespace", "  The Black Maria  ", "the black maria"},
		{"interior whitespace runs", "The\tBlack   Maria", "the black maria"},
		{"trailing punctuation", "Set Me Free!", "set me free"},
		{"symbols and digits", "1,000 Places to See (2nd ed.)", "1000 places to see 2nd ed"},
		{"non-ascii stripped", "¡Olio!", "olio"},
		{"only punctuation", "???", ""},
		{"empty", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := CleanText(test.input)
			if got != test.expected {
				t.Errorf("CleanText(%q) = %q, want %q", test.input, got, test.expected)
			}
		})
	}
}

// TestCleanTextIdempotent tests that re-cleaning changes nothing
func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{
		"It's Only the Himalayas",
		"  A Light in the Attic  ",
		"#Read @night: 100% true!",
		"",
		"???",
	}
	for _, input := range inputs {
		once := CleanText(input)
		twice := CleanText(once)
		if once != twice {
			t.Errorf("CleanText not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

// TestExtractHashtags tests hashtag extraction
func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Reading #GoLang and #Stats2024 tonight", []string{"#golang", "#stats2024"}},
		{"no tags here", nil},
		{"#dup #dup", []string{"#dup", "#dup"}},
	}

	for _, test := range tests {
		got := ExtractHashtags(test.input)
		if !reflect.DeepEqual(got, test.expected) {
			t.Errorf("ExtractHashtags(%q) = %v, want %v", test.input, got, test.expected)
		}
	}
}

// TestExtractMentions tests mention extraction
func TestExtractMentions(t *testing.T) {
	got := ExtractMentions("review by @Jane_Doe and @bob")
	expected := []string{"@jane_doe", "@bob"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ExtractMentions = %v, want %v", got, expected)
	}

	if got := ExtractMentions("nothing to see"); got != nil {
		t.Errorf("Expected no mentions, got %v", got)
	}
}

// TestExtractKeywords tests keyword extraction and the storage cap
func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("The Art of Go Programming", maxKeywords)
	expected := []string{"the", "art", "programming"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ExtractKeywords = %v, want %v", got, expected)
	}

	long := ExtractKeywords("one two three four five six seven eight nine ten", maxKeywords)
	if len(long) != maxKeywords {
		t.Errorf("Expected keyword list capped at %d, got %d: %v", maxKeywords, len(long), long)
	}
	// "one" and "two" are 3 letters, so they count; order is preserved.
	if long[0] != "one" || long[4] != "five" {
		t.Errorf("Expected first five qualifying words in order, got %v", long)
	}
}
