package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/words"
)

// expandInputs resolves each argument as a plain path or, when it contains
// glob metacharacters, as a doublestar pattern ("notes/**/*.txt"). The
// result keeps argument order and drops duplicates.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		if !isGlob(arg) {
			if err := errors.ValidateInputFile(arg); err != nil {
				return nil, err
			}
			add(arg)
			continue
		}
		if !doublestar.ValidatePathPattern(filepath.ToSlash(arg)) {
			return nil, errors.New(errors.ErrCodeInvalidPath, "invalid glob pattern %q", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "expand %q", arg)
		}
		if len(matches) == 0 {
			return nil, errors.New(errors.ErrCodeFileNotFound, "no files match %q", arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return paths, nil
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// readInputs decodes every file to UTF-8 and joins the texts.
func readInputs(paths []string) (string, error) {
	var b strings.Builder
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", p, err)
		}
		text, err := words.Decode(data)
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", p, err)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
