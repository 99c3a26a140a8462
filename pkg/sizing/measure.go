package sizing

import (
	"math"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/tagcloud/pkg/core/geom"
	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Measurer reports the pixel box a text occupies at a font size.
type Measurer interface {
	Measure(text string, fontSize float64) (geom.Size, error)
}

// FontMeasurer measures text with an OpenType font at 72 DPI, so font sizes
// are in pixels. Faces are created once per size and reused.
// It is safe for concurrent use.
type FontMeasurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFontMeasurer parses TrueType or OpenType font data.
func NewFontMeasurer(data []byte) (*FontMeasurer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse font")
	}
	return &FontMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// LoadFontMeasurer reads a font file from disk.
func LoadFontMeasurer(path string) (*FontMeasurer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read font %s", path)
	}
	return NewFontMeasurer(data)
}

var (
	defaultMeasurer     *FontMeasurer
	defaultMeasurerErr  error
	defaultMeasurerOnce sync.Once
)

// DefaultMeasurer returns a shared measurer for Go Regular.
func DefaultMeasurer() (*FontMeasurer, error) {
	defaultMeasurerOnce.Do(func() {
		defaultMeasurer, defaultMeasurerErr = NewFontMeasurer(goregular.TTF)
	})
	return defaultMeasurer, defaultMeasurerErr
}

// Measure returns the advance width and ascent+descent of text, rounded up.
func (m *FontMeasurer) Measure(text string, fontSize float64) (geom.Size, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.faceLocked(fontSize)
	if err != nil {
		return geom.Size{}, err
	}
	adv := font.MeasureString(face, text)
	metrics := face.Metrics()
	return geom.Size{
		Width:  adv.Ceil(),
		Height: (metrics.Ascent + metrics.Descent).Ceil(),
	}, nil
}

// NewFace returns a face at fontSize for drawing. The returned face is owned
// by the caller and is not shared with the measurer.
func (m *FontMeasurer) NewFace(fontSize float64) (font.Face, error) {
	return newFace(m.font, fontSize)
}

func (m *FontMeasurer) faceLocked(fontSize float64) (font.Face, error) {
	key := math.Round(fontSize*100) / 100
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	face, err := newFace(m.font, key)
	if err != nil {
		return nil, err
	}
	m.faces[key] = face
	return face, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "font size must be positive, got %v", size)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create face at %vpx", size)
	}
	return face, nil
}
