// Package sizing maps word frequencies to font sizes and rectangle sizes.
//
// A [Mapper] interpolates linearly between a minimum and a maximum font size
// by relative frequency, then asks a [Measurer] for the pixel box of the word
// at that size. [FontMeasurer] measures with a real OpenType face; the default
// is the Go Regular font bundled with golang.org/x/image.
package sizing
