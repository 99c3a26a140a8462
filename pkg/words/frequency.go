package words

import (
	"cmp"
	"slices"
	"unicode/utf8"
)

// Entry is a word and the number of times it occurred.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Frequencies maps words to occurrence counts.
type Frequencies map[string]int

// Count tallies tokens, skipping excluded words and tokens shorter than
// minLength runes.
func Count(tokens []string, ex *Excluder, minLength int) Frequencies {
	freq := make(Frequencies)
	for _, t := range tokens {
		if utf8.RuneCountInString(t) < minLength || ex.Excluded(t) {
			continue
		}
		freq[t]++
	}
	return freq
}

// Merge adds the counts of other into f.
func (f Frequencies) Merge(other Frequencies) {
	for w, n := range other {
		f[w] += n
	}
}

// Total returns the sum of all counts.
func (f Frequencies) Total() int {
	total := 0
	for _, n := range f {
		total += n
	}
	return total
}

// Top returns the n most frequent words, by descending count and then
// alphabetically. n <= 0 returns every word.
func (f Frequencies) Top(n int) []Entry {
	entries := make([]Entry, 0, len(f))
	for w, c := range f {
		entries = append(entries, Entry{Word: w, Count: c})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
