package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// isolate points the config and cache directories at temp dirs.
func isolate(t *testing.T) (configHome, cacheHome string) {
	t.Helper()
	configHome, cacheHome = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return configHome, cacheHome
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, err = cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestParseFormats(t *testing.T) {
	def := []string{"png"}
	tests := []struct {
		in   string
		want []string
	}{
		{"", def},
		{"  ", def},
		{"svg", []string{"svg"}},
		{"svg, png,,json", []string{"svg", "png", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in, def); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	if got := summarize(items, 5); got != "a, b, c, d" {
		t.Errorf("summarize = %q", got)
	}
	if got := summarize(items, 2); got != "a, b and 2 more" {
		t.Errorf("summarize = %q", got)
	}
}

func TestFormatStats(t *testing.T) {
	fresh := formatStats(68, 2, false)
	for _, want := range []string{"68 words", "2 skipped", iconFresh} {
		if !strings.Contains(fresh, want) {
			t.Errorf("formatStats = %q, missing %q", fresh, want)
		}
	}
	cached := formatStats(10, 0, true)
	if strings.Contains(cached, "skipped") || !strings.Contains(cached, iconCached) {
		t.Errorf("formatStats = %q", cached)
	}
}

func TestDisplayURL(t *testing.T) {
	if got := displayURL(":8080"); got != "http://localhost:8080" {
		t.Errorf("displayURL = %q", got)
	}
	if got := displayURL("0.0.0.0:9000"); got != "http://0.0.0.0:9000" {
		t.Errorf("displayURL = %q", got)
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")
	b := writeFile(t, dir, "notes/b.txt", "beta")
	c := writeFile(t, dir, "notes/deep/c.txt", "gamma")
	writeFile(t, dir, "notes/skip.md", "delta")

	got, err := expandInputs([]string{a, filepath.Join(dir, "**", "*.txt")})
	if err != nil {
		t.Fatalf("expandInputs: %v", err)
	}
	want := []string{a, b, c}
	slices.Sort(got[1:])
	if !slices.Equal(got, want) {
		t.Errorf("expandInputs = %v, want %v (duplicates dropped, order kept)", got, want)
	}
}

func TestExpandInputsErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		arg  string
		code errors.Code
	}{
		{"missing file", filepath.Join(dir, "nope.txt"), errors.ErrCodeFileNotFound},
		{"directory", dir, errors.ErrCodeInvalidPath},
		{"no matches", filepath.Join(dir, "*.txt"), errors.ErrCodeFileNotFound},
		{"bad pattern", filepath.Join(dir, "[.txt"), errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expandInputs([]string{tt.arg})
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadInputs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "hello")
	b := writeFile(t, dir, "b.txt", "\xef\xbb\xbfworld")

	got, err := readInputs([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello\nworld\n" {
		t.Errorf("readInputs = %q", got)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Canvas.Width = 640
	cfg.Words.Count = 30
	cfg.Words.StopWords = []string{"lorem"}
	cfg.Colors.Foreground = "navy"

	var lf layoutFlags
	var sf styleFlags
	cmd := &cobra.Command{Use: "test"}
	lf.register(cmd)
	sf.register(cmd)
	if err := cmd.ParseFlags([]string{"--count", "5", "-x", "ipsum", "--height", "300", "-f", "svg,json"}); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.FromConfig(cfg)
	lf.apply(cmd, &opts)
	sf.apply(cmd, &opts)

	if opts.Count != 5 {
		t.Errorf("Count = %d, want flag value 5", opts.Count)
	}
	if opts.Width != 640 || opts.Height != 300 {
		t.Errorf("canvas = %dx%d, want config width and flag height", opts.Width, opts.Height)
	}
	if !slices.Equal(opts.StopWords, []string{"lorem", "ipsum"}) {
		t.Errorf("StopWords = %v", opts.StopWords)
	}
	if opts.Foreground != "navy" {
		t.Errorf("Foreground = %q, want config value", opts.Foreground)
	}
	if !slices.Equal(opts.Formats, []string{"svg", "json"}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
}

func TestOutputTarget(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()

	var of outputFlags
	cmd := &cobra.Command{Use: "test"}
	of.register(cmd)
	if err := cmd.ParseFlags([]string{"-o", dir}); err != nil {
		t.Fatal(err)
	}
	target, err := of.target(cmd, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := target.path("svg"), filepath.Join(dir, "cloud.svg"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}

	bad := &cobra.Command{Use: "test"}
	var of2 outputFlags
	of2.register(bad)
	if err := bad.ParseFlags([]string{"-n", "../escape"}); err != nil {
		t.Fatal(err)
	}
	if _, err := of2.target(bad, cfg); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("err = %v, want INVALID_PATH", err)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	out := outputTarget{dir: dir, name: "cloud"}

	paths, err := writeArtifacts(out, map[string][]byte{"svg": []byte("<svg/>"), "jpeg": []byte("jpg")})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "cloud.jpeg"), filepath.Join(dir, "cloud.svg")}
	if !slices.Equal(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	data, _ := os.ReadFile(want[1])
	if string(data) != "<svg/>" {
		t.Errorf("svg content = %q", data)
	}
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "speech.txt", "go go go cloud cloud layout")

	err := execute(t, "render", input, "-f", "svg,json", "-n", "speech", "-o", dir,
		"--width", "400", "--height", "400", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "speech.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), ">cloud</text>") {
		t.Error("svg should contain the word cloud")
	}
	c, err := cloud.ReadFile(filepath.Join(dir, "speech.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Words) != 3 || c.Words[0].Text != "go" {
		t.Errorf("cloud words = %+v", c.Words)
	}
}

func TestRenderCommandUsesCache(t *testing.T) {
	_, cacheHome := isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "a.txt", "alpha beta beta")

	for i := 0; i < 2; i++ {
		if err := execute(t, "render", input, "-f", "svg", "-o", dir); err != nil {
			t.Fatalf("render #%d: %v", i, err)
		}
	}
	entries, err := os.ReadDir(filepath.Join(cacheHome, appName))
	if err != nil || len(entries) == 0 {
		t.Errorf("cache dir should hold entries, got %d (err %v)", len(entries), err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "a.txt", "the and of")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"only stop words", []string{"render", input, "-o", dir, "--no-cache"}, errors.ErrCodeEmptyCloud},
		{"bad format", []string{"render", input, "-o", dir, "-f", "tiff"}, errors.ErrCodeInvalidFormat},
		{"bad color", []string{"render", input, "-o", dir, "--color", "nope"}, errors.ErrCodeInvalidColor},
		{"missing dir", []string{"render", input, "-o", filepath.Join(dir, "missing")}, errors.ErrCodeInvalidPath},
		{"missing input", []string{"render", filepath.Join(dir, "x.txt"), "-o", dir}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "a.txt", "tag tag cloud")

	if err := execute(t, "layout", input, "-o", dir, "-n", "positions", "--width", "300", "--height", "300"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	c, err := cloud.ReadFile(filepath.Join(dir, "positions.json"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 300 || len(c.Words) != 2 {
		t.Errorf("cloud = %dx%d with %d words", c.Width, c.Height, len(c.Words))
	}
}

func TestExcludeCommand(t *testing.T) {
	configHome, _ := isolate(t)
	path := filepath.Join(configHome, appName, "config.toml")

	if err := execute(t, "exclude", "Lorem", "ipsum"); err != nil {
		t.Fatalf("exclude: %v", err)
	}
	cfg, err := config.Load(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cfg.Words.StopWords, []string{"ipsum", "lorem"}) {
		t.Errorf("stop words = %v", cfg.Words.StopWords)
	}

	if err := execute(t, "exclude", "--remove", "ipsum"); err != nil {
		t.Fatalf("exclude --remove: %v", err)
	}
	cfg, err = config.Load(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cfg.Words.StopWords, []string{"lorem"}) {
		t.Errorf("stop words after remove = %v", cfg.Words.StopWords)
	}

	if err := execute(t, "exclude", "two words"); !errors.Is(err, errors.ErrCodeInvalidWord) {
		t.Errorf("err = %v, want INVALID_WORD", err)
	}
}

func TestExcludedWordsLeaveTheCloud(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "a.txt", "lorem lorem lorem ipsum")

	if err := execute(t, "exclude", "lorem"); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "layout", input, "-o", dir, "--no-cache"); err != nil {
		t.Fatal(err)
	}
	c, err := cloud.ReadFile(filepath.Join(dir, "cloud.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Words) != 1 || c.Words[0].Text != "ipsum" {
		t.Errorf("words = %+v, want only ipsum", c.Words)
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "a.txt", "word")

	err := execute(t, "--config", filepath.Join(dir, "missing.toml"), "layout", input, "-o", dir)
	if err == nil {
		t.Error("a missing --config file should be an error")
	}
}
