package words

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// toLower folds s to lower case. Casers are stateful, so one is built per
// call rather than shared between goroutines.
func toLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Tokenize splits text into lower-cased words.
//
// Text is NFC-normalized first so composed and decomposed spellings count as
// the same word. Words are runs of letters and digits; apostrophes and hyphens
// are kept inside a word ("don't", "well-known") but trimmed from its ends.
func Tokenize(text string) []string {
	text = toLower(norm.NFC.String(text))

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r) && r != '\'' && r != '-' && r != '’'
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'-’")
		if f == "" || !hasLetter(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
