package rerank

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent decomposes characters and strips combining marks, so that
// "résumé" and "resume" tokenize identically.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// tokenize lowercases text, strips diacritics, splits on every run of
// non-letter/non-number characters, and drops tokens shorter than minLength
// or present in the stopword set. Empty input yields an empty slice.
// Pure function: same input always yields the same tokens.
func tokenize(text string, minLength int, stopwords stopwordSet) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text = strings.ToLower(text)
	if normalized, _, err := transform.String(deaccent, text); err == nil {
		text = normalized
	}

	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < minLength {
			continue
		}
		if stopwords.Contains(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// tokenSet builds the distinct-token set of a token sequence.
func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// termFrequencies counts occurrences of each token.
func termFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}
