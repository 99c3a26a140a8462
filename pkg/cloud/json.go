package cloud

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Marshal encodes a cloud as indented JSON.
func Marshal(c *Cloud) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal cloud")
	}
	return data, nil
}

// Unmarshal decodes a cloud and validates its canvas.
func Unmarshal(data []byte) (*Cloud, error) {
	var c Cloud
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse cloud JSON")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSize, "cloud canvas must be positive, got %dx%d", c.Width, c.Height)
	}
	return &c, nil
}

// ReadFile loads a cloud from a JSON file written by WriteFile.
func ReadFile(path string) (*Cloud, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return Unmarshal(data)
}

// WriteFile stores a cloud as JSON.
func WriteFile(path string, c *Cloud) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
