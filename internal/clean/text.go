package clean

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// nonAlnumRe matches everything outside lowercase alphanumerics and spaces
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)
	// whitespaceRe matches runs of whitespace
	whitespaceRe = regexp.MustCompile(`\s+`)
	// hashtagRe matches #tag tokens
	hashtagRe = regexp.MustCompile(`#\w+`)
	// mentionRe matches @user tokens
	mentionRe = regexp.MustCompile(`@\w+`)
)

// minKeywordLen is the shortest word kept as a keyword.
const minKeywordLen = 3

// maxKeywords caps how many keywords are stored per record.
const maxKeywords = 5

// CleanText normalizes free text to lowercase alphanumerics with single
// spaces between words. Running it on its own output changes nothing.
func CleanText(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = nonAlnumRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ExtractHashtags returns every #tag in the text, lowercased, in order.
func ExtractHashtags(text string) []string {
	return lowerAll(hashtagRe.FindAllString(text, -1))
}

// ExtractMentions returns every @mention in the text, lowercased, in order.
func ExtractMentions(text string) []string {
	return lowerAll(mentionRe.FindAllString(text, -1))
}

// ExtractKeywords returns up to max lowercase words of at least three
// characters, taken from the raw text in order.
func ExtractKeywords(text string, max int) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(w) < minKeywordLen {
			continue
		}
		words = append(words, w)
		if len(words) == max {
			break
		}
	}
	return words
}

func lowerAll(tokens []string) []string {
	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}
	return tokens
}
