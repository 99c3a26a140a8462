// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a byte-oriented key/value store with per-entry TTLs. Backends:
//
//   - [FileCache]: one JSON file per entry under the CLI cache directory
//   - [MemoryCache]: process-local map for the HTTP server without Redis
//   - [RedisCache]: shared Redis store for multi-instance servers
//   - [NullCache]: disables caching (--no-cache)
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes every input that changes
// the output, so a key is a content address: the same text with the same
// options always maps to the same layout, and the same layout with the same
// render options to the same artifact. [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Default TTLs. Layouts and artifacts are pure functions of their keys, so
// they only expire to bound disk use.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value store. Get reports a miss with ok == false and a nil
// error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey addresses a cloud computed from input text.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	// ArtifactKey addresses a rendering of a cloud.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a layout.
type LayoutKeyOpts struct {
	Count         int      `json:"count"`
	MinLength     int      `json:"min_length"`
	StopWords     []string `json:"stop_words,omitempty"`
	FontFile      string   `json:"font_file,omitempty"`
	FontSize      float64  `json:"font_size"`
	Ratio         float64  `json:"ratio"`
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	Spiral        string   `json:"spiral"`
	Step          int      `json:"step"`
	MaxCandidates int      `json:"max_candidates"`
	Restart       bool     `json:"restart,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendering.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	Canvas     string `json:"canvas"`
	Rectangles bool   `json:"rectangles,omitempty"`
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey hashes the input hash together with the layout options.
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey hashes the layout hash together with the render options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
