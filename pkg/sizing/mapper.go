package sizing

import (
	"github.com/matzehuels/tagcloud/pkg/core/geom"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/words"
)

const (
	// DefaultMaxFontSize is the font size of the most frequent word.
	DefaultMaxFontSize = 40.0

	// DefaultRatio is max/min font size; the rarest word is 1/5 of the largest.
	DefaultRatio = 5.0
)

// Word is a word ready for layout: its frequency, font size and pixel box.
type Word struct {
	Text     string    `json:"text"`
	Count    int       `json:"count"`
	FontSize float64   `json:"font_size"`
	Size     geom.Size `json:"size"`
}

// Mapper converts ranked frequencies into sized words.
type Mapper struct {
	Measurer    Measurer
	MaxFontSize float64
	Ratio       float64
}

// NewMapper creates a mapper with default font sizes.
func NewMapper(m Measurer) *Mapper {
	return &Mapper{Measurer: m, MaxFontSize: DefaultMaxFontSize, Ratio: DefaultRatio}
}

// FontSize returns the font size for count relative to maxCount:
// min + (max-min)·count/maxCount with min = max/Ratio.
func (m *Mapper) FontSize(count, maxCount int) float64 {
	maxSize := m.MaxFontSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFontSize
	}
	ratio := m.Ratio
	if ratio < 1 {
		ratio = DefaultRatio
	}
	minSize := maxSize / ratio
	if maxCount <= 0 {
		return minSize
	}
	return minSize + (maxSize-minSize)*float64(count)/float64(maxCount)
}

// Map sizes every entry, keeping the input order.
func (m *Mapper) Map(entries []words.Entry) ([]Word, error) {
	if m.Measurer == nil {
		return nil, errors.New(errors.ErrCodeInternal, "sizing: no measurer configured")
	}

	maxCount := 0
	for _, e := range entries {
		maxCount = max(maxCount, e.Count)
	}

	out := make([]Word, 0, len(entries))
	for _, e := range entries {
		fs := m.FontSize(e.Count, maxCount)
		size, err := m.Measurer.Measure(e.Word, fs)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "measure %q", e.Word)
		}
		out = append(out, Word{Text: e.Word, Count: e.Count, FontSize: fs, Size: size})
	}
	return out, nil
}
