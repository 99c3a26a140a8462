package cloud

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/core/geom"
	"github.com/matzehuels/tagcloud/pkg/core/layout"
	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/sizing"
)

func testWords() []sizing.Word {
	return []sizing.Word{
		{Text: "cloud", Count: 10, FontSize: 40, Size: geom.Sz(60, 20)},
		{Text: "zero", Count: 9, FontSize: 36, Size: geom.Sz(0, 10)},
		{Text: "layout", Count: 8, FontSize: 32, Size: geom.Sz(40, 20)},
		{Text: "huge", Count: 7, FontSize: 30, Size: geom.Sz(500, 500)},
		{Text: "go", Count: 5, FontSize: 24, Size: geom.Sz(20, 16)},
	}
}

func TestBuild(t *testing.T) {
	c, err := Build(context.Background(), geom.Sz(200, 200), testWords(), layout.WithMaxCandidates(2000))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if c.Center != geom.Pt(100, 100) {
		t.Errorf("Center = %v, want (100,100)", c.Center)
	}
	if got := c.Words[0].Rect; got != geom.Rect(70, 90, 60, 20) {
		t.Errorf("first word rect = %v, want centered on canvas", got)
	}

	var placed []string
	for _, w := range c.Words {
		placed = append(placed, w.Text)
	}
	if want := []string{"cloud", "layout", "go"}; !slices.Equal(placed, want) {
		t.Errorf("placed = %v, want %v", placed, want)
	}
	if want := []string{"zero", "huge"}; !slices.Equal(c.Skipped, want) {
		t.Errorf("Skipped = %v, want %v", c.Skipped, want)
	}

	for i := range c.Words {
		for j := i + 1; j < len(c.Words); j++ {
			if c.Words[i].Rect.Overlaps(c.Words[j].Rect) {
				t.Errorf("%q %v overlaps %q %v", c.Words[i].Text, c.Words[i].Rect, c.Words[j].Text, c.Words[j].Rect)
			}
		}
	}
	if err := c.CheckBounds(); err != nil {
		t.Errorf("CheckBounds: %v", err)
	}
	if c.MaxCount() != 10 {
		t.Errorf("MaxCount = %d, want 10", c.MaxCount())
	}
}

func TestBuildInvalidCanvas(t *testing.T) {
	_, err := Build(context.Background(), geom.Sz(0, 100), testWords())
	if !tcerrors.Is(err, tcerrors.ErrCodeInvalidSize) {
		t.Errorf("Build(0x100) error = %v, want INVALID_SIZE", err)
	}
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, geom.Sz(200, 200), testWords()); !errors.Is(err, context.Canceled) {
		t.Errorf("Build on canceled context error = %v, want context.Canceled", err)
	}
}

func TestBuildEmpty(t *testing.T) {
	c, err := Build(context.Background(), geom.Sz(100, 100), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c.Words) != 0 || len(c.Skipped) != 0 {
		t.Errorf("empty build = %+v, want no words", c)
	}
	if !c.Bounds().IsEmpty() {
		t.Errorf("Bounds of empty cloud = %v, want empty", c.Bounds())
	}
}

func TestCheckBounds(t *testing.T) {
	tests := []struct {
		name string
		rect geom.Rectangle
		ok   bool
	}{
		{"inside", geom.Rect(10, 10, 20, 20), true},
		{"flush with edges", geom.Rect(0, 0, 100, 100), true},
		{"past right edge", geom.Rect(90, 10, 20, 20), false},
		{"negative origin", geom.Rect(-1, 10, 20, 20), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Cloud{Width: 100, Height: 100, Words: []PlacedWord{{Text: "w", Rect: tt.rect}}}
			err := c.CheckBounds()
			if tt.ok && err != nil {
				t.Errorf("CheckBounds() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("CheckBounds() = %v, want ErrOutOfBounds", err)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	c, err := Build(context.Background(), geom.Sz(200, 200), testWords(), layout.WithMaxCandidates(2000))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "cloud.json")
	if err := WriteFile(path, c); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Width != c.Width || got.Center != c.Center || len(got.Words) != len(c.Words) {
		t.Fatalf("ReadFile() = %+v, want %+v", got, c)
	}
	for i := range c.Words {
		if got.Words[i] != c.Words[i] {
			t.Errorf("word %d = %+v, want %+v", i, got.Words[i], c.Words[i])
		}
	}
	if !slices.Equal(got.Skipped, c.Skipped) {
		t.Errorf("Skipped = %v, want %v", got.Skipped, c.Skipped)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	if _, err := Unmarshal([]byte("{")); !tcerrors.Is(err, tcerrors.ErrCodeInvalidFormat) {
		t.Errorf("bad JSON error = %v, want INVALID_FORMAT", err)
	}
	if _, err := Unmarshal([]byte(`{"width":0,"height":10}`)); !tcerrors.Is(err, tcerrors.ErrCodeInvalidSize) {
		t.Errorf("zero width error = %v, want INVALID_SIZE", err)
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); !tcerrors.Is(err, tcerrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}
