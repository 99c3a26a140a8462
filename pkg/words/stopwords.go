package words

import (
	"slices"
	"strings"
)

// DefaultStopWords are English function words excluded from clouds.
var DefaultStopWords = []string{
	"a", "about", "after", "all", "also", "an", "and", "any", "are", "as",
	"at", "be", "been", "but", "by", "can", "could", "did", "do", "does",
	"for", "from", "had", "has", "have", "he", "her", "him", "his", "how",
	"i", "if", "in", "into", "is", "it", "its", "just", "me", "my", "no",
	"not", "of", "on", "one", "or", "our", "out", "she", "so", "some",
	"than", "that", "the", "their", "them", "then", "there", "these", "they",
	"this", "to", "up", "us", "was", "we", "were", "what", "when", "which",
	"who", "will", "with", "would", "you", "your",
}

// Excluder is a set of words to leave out of a cloud.
// The zero value excludes nothing.
type Excluder struct {
	words map[string]struct{}
}

// NewExcluder returns an excluder containing the given words, lower-cased.
func NewExcluder(words ...string) *Excluder {
	e := &Excluder{}
	for _, w := range words {
		e.Add(w)
	}
	return e
}

// DefaultExcluder returns an excluder preloaded with [DefaultStopWords].
func DefaultExcluder() *Excluder {
	return NewExcluder(DefaultStopWords...)
}

// Add excludes word. Matching is case-insensitive.
func (e *Excluder) Add(word string) {
	word = strings.TrimSpace(toLower(word))
	if word == "" {
		return
	}
	if e.words == nil {
		e.words = make(map[string]struct{})
	}
	e.words[word] = struct{}{}
}

// Excluded reports whether word is in the set. A nil excluder excludes nothing.
func (e *Excluder) Excluded(word string) bool {
	if e == nil {
		return false
	}
	_, ok := e.words[word]
	return ok
}

// Words returns the excluded words sorted alphabetically.
func (e *Excluder) Words() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.words))
	for w := range e.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of excluded words.
func (e *Excluder) Len() int {
	if e == nil {
		return 0
	}
	return len(e.words)
}
