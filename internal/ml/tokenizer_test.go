package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Run("lowercases and extracts word tokens", func(t *testing.T) {
		tokens := Tokenize("URGENT! You've won $1000!")
		assert.Equal(t, []string{"urgent", "you", "ve", "won", "1000"}, tokens)
	})

	t.Run("drops single-character tokens", func(t *testing.T) {
		tokens := Tokenize("I a to go")
		assert.Equal(t, []string{"to", "go"}, tokens)
	})

	t.Run("empty input yields no tokens", func(t *testing.T) {
		assert.Empty(t, Tokenize(""))
		assert.Empty(t, Tokenize("!!! ???"))
	})
}

func TestNGrams(t *testing.T) {
	tokens := []string{"free", "cash", "now"}

	t.Run("unigrams only", func(t *testing.T) {
		assert.Equal(t, []string{"free", "cash", "now"}, NGrams(tokens, 1))
	})

	t.Run("unigrams and bigrams", func(t *testing.T) {
		grams := NGrams(tokens, 2)
		assert.Equal(t, []string{"free", "cash", "now", "free cash", "cash now"}, grams)
	})

	t.Run("maxN below one falls back to unigrams", func(t *testing.T) {
		assert.Equal(t, []string{"free", "cash", "now"}, NGrams(tokens, 0))
	})
}
