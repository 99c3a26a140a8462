// Package words turns raw text into ranked word frequencies.
//
// The flow is:
//
//	text, err := words.Decode(data)        // any common encoding → UTF-8
//	tokens := words.Tokenize(text)         // NFC, lower-cased, split on non-letters
//	freq := words.Count(tokens, ex, 2)     // drop stop words and short tokens
//	top := freq.Top(70)                    // descending count, then word
//
// [Frequencies.Top] orders ties alphabetically so the result, and everything
// laid out from it, is deterministic.
package words
