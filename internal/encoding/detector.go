// Package encoding guesses the character set of project files and decodes them to UTF-8 text.
package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	textencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultLabel is returned when the detector has no answer.
const DefaultLabel = "utf-8"

const (
	errorReadFileFormat   = "read %s: %w"
	errorDecodeFileFormat = "decode %s as %s: %w"
)

// ErrInvalidUTF8 is returned when content labelled UTF-8 contains invalid byte sequences.
var ErrInvalidUTF8 = errors.New("invalid utf-8 byte sequence")

var utf8ByteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// labelAliases maps detector labels that the WHATWG and IANA indexes do not know.
var labelAliases = map[string]string{
	"gb-18030": "gb18030",
	"ascii":    "us-ascii",
}

// Detect reads the whole file at path and returns the best-guess charset label in lower case.
// Read failures are returned; an undetectable buffer yields DefaultLabel.
//
// #nosec G304
func Detect(path string) (string, error) {
	data, readError := os.ReadFile(path)
	if readError != nil {
		return "", fmt.Errorf(errorReadFileFormat, path, readError)
	}
	return DetectBytes(data), nil
}

// DetectBytes runs the statistical charset detector over data.
func DetectBytes(data []byte) string {
	if len(data) == 0 {
		return DefaultLabel
	}
	if bytes.HasPrefix(data, utf8ByteOrderMark) {
		return DefaultLabel
	}
	result, detectError := chardet.NewTextDetector().DetectBest(data)
	if detectError != nil || result == nil || strings.TrimSpace(result.Charset) == "" {
		return DefaultLabel
	}
	return strings.ToLower(strings.TrimSpace(result.Charset))
}

// DecodeFile reads path once, detects its charset, and returns the decoded text with the label used.
//
// #nosec G304
func DecodeFile(path string) (string, string, error) {
	data, readError := os.ReadFile(path)
	if readError != nil {
		return "", "", fmt.Errorf(errorReadFileFormat, path, readError)
	}
	label := DetectBytes(data)
	text, decodeError := DecodeBytes(data, label)
	if decodeError != nil {
		return "", label, fmt.Errorf(errorDecodeFileFormat, path, label, decodeError)
	}
	return text, label, nil
}

// DecodeBytes converts data from the named charset to a Go string.
// Unknown labels are decoded as UTF-8.
func DecodeBytes(data []byte, label string) (string, error) {
	charset := lookupEncoding(label)
	if charset == nil {
		return decodeUTF8(data)
	}
	decoded, decodeError := charset.NewDecoder().Bytes(data)
	if decodeError != nil {
		return "", decodeError
	}
	return string(decoded), nil
}

func decodeUTF8(data []byte) (string, error) {
	trimmed := bytes.TrimPrefix(data, utf8ByteOrderMark)
	if !utf8.Valid(trimmed) {
		return "", ErrInvalidUTF8
	}
	return string(trimmed), nil
}

// lookupEncoding resolves label through the WHATWG index, then IANA. UTF-8 and
// unknown labels return nil so the caller validates strictly.
func lookupEncoding(label string) textencoding.Encoding {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if alias, ok := labelAliases[normalized]; ok {
		normalized = alias
	}
	if normalized == "" || normalized == DefaultLabel || normalized == "utf8" {
		return nil
	}
	if charset, lookupError := htmlindex.Get(normalized); lookupError == nil && charset != nil {
		if name, _ := htmlindex.Name(charset); name == DefaultLabel {
			return nil
		}
		return charset
	}
	if charset, lookupError := ianaindex.IANA.Encoding(normalized); lookupError == nil && charset != nil {
		return charset
	}
	return nil
}
