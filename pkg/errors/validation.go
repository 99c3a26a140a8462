package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidateWord validates a word supplied for the stop-word list.
// Words must be non-empty, contain no whitespace or control characters and
// be at most 64 characters long.
func ValidateWord(word string) error {
	if word == "" {
		return New(ErrCodeInvalidWord, "word cannot be empty")
	}

	if len(word) > 64 {
		return New(ErrCodeInvalidWord, "word too long (max 64 characters)")
	}

	for _, r := range word {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidWord, "word contains whitespace or control characters: %q", word)
		}
	}

	return nil
}

// ValidateFileName validates an output base name for safety.
// It ensures the name is a simple basename without path components.
func ValidateFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "file name cannot be a hidden file")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid characters")
		}
	}

	return nil
}

// ValidateOutputDir checks that dir exists and is a directory.
func ValidateOutputDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return New(ErrCodeInvalidPath, "output directory does not exist: %s", dir)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat output directory %s", dir)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "output path is not a directory: %s", dir)
	}

	return nil
}

// ValidateInputFile checks that path names an existing regular file.
func ValidateInputFile(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "input file cannot be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return New(ErrCodeFileNotFound, "input file does not exist: %s", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat input file %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "input path is a directory: %s", path)
	}

	return nil
}

// ValidatePositive returns an INVALID_INPUT error naming field when v <= 0.
func ValidatePositive(field string, v float64) error {
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %v", field, v)
	}
	return nil
}

// ValidateNonNegative returns an INVALID_INPUT error naming field when v < 0.
func ValidateNonNegative(field string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative, got %d", field, v)
	}
	return nil
}
