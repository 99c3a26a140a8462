// Package config loads and saves the tagcloud TOML configuration file.
//
// The file holds defaults for every render option plus the user's extra stop
// words. Command-line flags override it; the exclude command appends to it.
//
//	[canvas]
//	width = 1000
//	height = 1000
//
//	[words]
//	count = 70
//	stop_words = ["lorem", "ipsum"]
//
// Missing keys keep their built-in defaults, and unknown keys are an error so
// typos do not pass silently.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tagcloud/pkg/core/spiral"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/sizing"
)

const (
	appName  = "tagcloud"
	fileName = "config.toml"
)

// Config is the on-disk configuration.
type Config struct {
	Canvas Canvas `toml:"canvas"`
	Font   Font   `toml:"font"`
	Colors Colors `toml:"colors"`
	Layout Layout `toml:"layout"`
	Words  Words  `toml:"words"`
	Output Output `toml:"output"`
	Server Server `toml:"server"`
}

type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Font struct {
	File    string  `toml:"file,omitempty"` // TTF/OTF path; empty uses Go Regular
	MaxSize float64 `toml:"max_size"`
	Ratio   float64 `toml:"ratio"`
}

type Colors struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Canvas     string `toml:"canvas"`
}

type Layout struct {
	Spiral        string `toml:"spiral"`
	Step          int    `toml:"step"`
	// MaxCandidates of 0 sizes the ceiling from the canvas with Restart
	// and uses the layouter default otherwise.
	MaxCandidates int    `toml:"max_candidates"`
	Restart       bool   `toml:"restart"`
}

type Words struct {
	Count     int      `toml:"count"`
	MinLength int      `toml:"min_length"`
	StopWords []string `toml:"stop_words"`

	// NoDefaultStopWords disables the built-in English stop-word list.
	NoDefaultStopWords bool `toml:"no_default_stop_words"`
}

type Output struct {
	Name    string   `toml:"name"`
	Dir     string   `toml:"dir,omitempty"`
	Formats []string `toml:"formats"`
}

type Server struct {
	Addr         string `toml:"addr"`
	Redis        string `toml:"redis,omitempty"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: Canvas{Width: 1000, Height: 1000},
		Font:   Font{MaxSize: sizing.DefaultMaxFontSize, Ratio: sizing.DefaultRatio},
		Colors: Colors{Foreground: "black", Background: "white", Canvas: "white"},
		Layout: Layout{
			Spiral: spiral.KindSquare,
			Step:   spiral.DefaultStep,
		},
		Words:  Words{Count: 70, MinLength: 1, StopWords: []string{}},
		Output: Output{Name: "cloud", Formats: []string{"png"}},
		Server: Server{Addr: ":8080", MaxBodyBytes: 4 << 20},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tagcloud/config.toml, falling back to
// ~/.config/tagcloud/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads path over the defaults. A missing file yields the defaults when
// optional is true and an error otherwise.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if optional {
				return Default(), nil
			}
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create config dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return f.Close()
}

// Validate checks ranges. Colors and formats are checked where they are parsed.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidSize, "canvas must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if err := errors.ValidatePositive("font.max_size", c.Font.MaxSize); err != nil {
		return err
	}
	if c.Font.Ratio < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "font.ratio must be at least 1, got %v", c.Font.Ratio)
	}
	if !spiral.ValidKinds[c.Layout.Spiral] {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown spiral %q", c.Layout.Spiral)
	}
	if err := errors.ValidateNonNegative("words.count", c.Words.Count); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("words.min_length", c.Words.MinLength); err != nil {
		return err
	}
	return errors.ValidateNonNegative("layout.max_candidates", c.Layout.MaxCandidates)
}

// AddStopWord appends a lower-cased stop word. It reports false if the word
// was already present.
func (c *Config) AddStopWord(word string) (bool, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if err := errors.ValidateWord(word); err != nil {
		return false, err
	}
	if slices.Contains(c.Words.StopWords, word) {
		return false, nil
	}
	c.Words.StopWords = append(c.Words.StopWords, word)
	slices.Sort(c.Words.StopWords)
	return true, nil
}

// RemoveStopWord deletes a stop word, reporting whether it was present.
func (c *Config) RemoveStopWord(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	i := slices.Index(c.Words.StopWords, word)
	if i < 0 {
		return false
	}
	c.Words.StopWords = slices.Delete(c.Words.StopWords, i, i+1)
	return true
}
