package ml

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tokenPattern matches runs of two or more word characters, the usual
// word-token pattern for bag-of-words features.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize normalizes text to NFKC, lowercases it and extracts word tokens.
func Tokenize(text string) []string {
	text = strings.ToLower(norm.NFKC.String(text))
	return tokenPattern.FindAllString(text, -1)
}

// NGrams expands tokens into all n-grams from unigrams up to maxN.
// Adjacent tokens are joined with a single space.
func NGrams(tokens []string, maxN int) []string {
	if maxN < 1 {
		maxN = 1
	}
	grams := make([]string, 0, len(tokens)*maxN)
	for n := 1; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}
