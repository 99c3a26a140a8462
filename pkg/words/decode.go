package words

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Decode converts data to a UTF-8 string.
//
// A UTF-8 or UTF-16 byte order mark selects the encoding. Without one, valid
// UTF-8 is returned as is and anything else is read as Windows-1252, the most
// common legacy encoding for plain text files.
func Decode(data []byte) (string, error) {
	enc := detect(data)
	if enc == nil {
		return string(data), nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "decode text")
	}
	return string(out), nil
}

// detect returns the decoder to apply, or nil for plain UTF-8 without BOM.
func detect(data []byte) encoding.Encoding {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return unicode.UTF8BOM
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	case utf8.Valid(data):
		return nil
	default:
		return charmap.Windows1252
	}
}
