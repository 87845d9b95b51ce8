// Package source reads program files and decodes them to UTF-8 text.
package source

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when no encoding is named.
const DefaultEncoding = "utf-8"

// Error codes shared with the CLI.
const (
	ErrCodeLoadFailed      = "E004" // File could not be read
	ErrCodeNotFound        = "E005" // Path not found
	ErrCodeInvalidText     = "E008" // Bytes are not valid in the encoding
	ErrCodeUnknownEncoding = "E009" // Encoding name not recognised
)

// LoadError represents a failure to obtain source text.
type LoadError struct {
	Code    string
	Message string
	Path    string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// decoders maps accepted encoding names to their decoders.
// The UTF-8 decoder strips a leading byte order mark.
var decoders = map[string]func() *encoding.Decoder{
	"utf-8":        unicode.UTF8BOM.NewDecoder,
	"utf-16":       unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder,
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder,
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder,
	"windows-1252": charmap.Windows1252.NewDecoder,
	"latin1":       charmap.ISO8859_1.NewDecoder,
}

var aliases = map[string]string{
	"":           DefaultEncoding,
	"utf8":       "utf-8",
	"utf16":      "utf-16",
	"cp1252":     "windows-1252",
	"iso-8859-1": "latin1",
}

// Encodings lists the accepted encoding names.
func Encodings() []string {
	names := make([]string, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// canonical resolves aliases and case.
func canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[name]; ok {
		return alias
	}
	return name
}

// ValidEncoding reports whether name (or one of its aliases) is accepted.
func ValidEncoding(name string) bool {
	_, ok := decoders[canonical(name)]
	return ok
}

// NewUnknownEncodingError reports an encoding name that ValidEncoding rejects.
func NewUnknownEncodingError(name string) *LoadError {
	return &LoadError{
		Code:    ErrCodeUnknownEncoding,
		Message: fmt.Sprintf("unknown encoding %q: must be one of %v", name, Encodings()),
	}
}

// Decode converts data in the named encoding to a UTF-8 string.
// UTF-8 input must be valid UTF-8; a leading BOM is dropped.
func Decode(data []byte, encodingName string) (string, error) {
	name := canonical(encodingName)
	newDecoder, ok := decoders[name]
	if !ok {
		return "", NewUnknownEncodingError(encodingName)
	}

	if name == "utf-8" && !utf8.Valid(data) {
		return "", &LoadError{
			Code:    ErrCodeInvalidText,
			Message: fmt.Sprintf("invalid UTF-8 at byte %d", invalidOffset(data)),
		}
	}

	text, err := newDecoder().Bytes(data)
	if err != nil {
		return "", &LoadError{
			Code:    ErrCodeInvalidText,
			Message: fmt.Sprintf("decoding %s: %v", name, err),
			Err:     err,
		}
	}
	return string(text), nil
}

// invalidOffset returns the byte offset of the first invalid UTF-8 sequence.
func invalidOffset(data []byte) int {
	for off := 0; off < len(data); {
		r, size := utf8.DecodeRune(data[off:])
		if r == utf8.RuneError && size <= 1 {
			return off
		}
		off += size
	}
	return len(data)
}

// Load reads the file at path in full and decodes it.
func Load(path, encodingName string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := ErrCodeLoadFailed
		msg := fmt.Sprintf("could not read source file: %v", err)
		if os.IsNotExist(err) {
			code = ErrCodeNotFound
			msg = "source file not found"
		}
		return "", &LoadError{Code: code, Message: msg, Path: path, Err: err}
	}

	text, err := Decode(data, encodingName)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Path = path
		}
		return "", err
	}
	return text, nil
}
