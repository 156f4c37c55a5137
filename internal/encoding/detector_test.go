package encoding_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/mapdoc/internal/encoding"
)

func writeFixture(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if writeError := os.WriteFile(path, content, 0o644); writeError != nil {
		t.Fatalf("write %s: %v", path, writeError)
	}
	return path
}

func TestDetectFallsBackForEmptyInput(t *testing.T) {
	path := writeFixture(t, "empty", nil)
	label, detectError := encoding.Detect(path)
	if detectError != nil {
		t.Fatalf("Detect error: %v", detectError)
	}
	if label != encoding.DefaultLabel {
		t.Fatalf("expected %s, got %s", encoding.DefaultLabel, label)
	}
}

func TestDetectRecognizesMultibyteUTF8(t *testing.T) {
	content := strings.Repeat("Документация проекта создаётся автоматически. ", 20)
	label := encoding.DetectBytes([]byte(content))
	if label != "utf-8" {
		t.Fatalf("expected utf-8, got %s", label)
	}
}

func TestDetectReportsReadErrors(t *testing.T) {
	_, detectError := encoding.Detect(filepath.Join(t.TempDir(), "missing.txt"))
	if detectError == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if !errors.Is(detectError, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", detectError)
	}
}

func TestDecodeBytes(t *testing.T) {
	testCases := []struct {
		name        string
		data        []byte
		label       string
		expected    string
		expectError bool
	}{
		{name: "utf-8 passthrough", data: []byte("héllo"), label: "utf-8", expected: "héllo"},
		{name: "utf-8 byte order mark stripped", data: append([]byte{0xEF, 0xBB, 0xBF}, []byte("hi")...), label: "UTF-8", expected: "hi"},
		{name: "windows-1252", data: []byte{'c', 'a', 'f', 0xE9}, label: "windows-1252", expected: "café"},
		{name: "koi8-r", data: []byte{0xF0, 0xD2, 0xC9, 0xD7, 0xC5, 0xD4}, label: "koi8-r", expected: "привет"},
		{name: "unknown label decodes as utf-8", data: []byte("plain"), label: "x-unknown", expected: "plain"},
		{name: "invalid utf-8", data: []byte{0xff, 0xfe, 0xfd}, label: "utf-8", expectError: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			decoded, decodeError := encoding.DecodeBytes(testCase.data, testCase.label)
			if testCase.expectError {
				if !errors.Is(decodeError, encoding.ErrInvalidUTF8) {
					t.Fatalf("expected ErrInvalidUTF8, got %v", decodeError)
				}
				return
			}
			if decodeError != nil {
				t.Fatalf("DecodeBytes error: %v", decodeError)
			}
			if decoded != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, decoded)
			}
		})
	}
}

func TestDecodeFile(t *testing.T) {
	content := "# Title\n\nSome readme text.\n"
	path := writeFixture(t, "README.md", []byte(content))
	decoded, label, decodeError := encoding.DecodeFile(path)
	if decodeError != nil {
		t.Fatalf("DecodeFile error: %v", decodeError)
	}
	if label == "" {
		t.Fatalf("expected a charset label")
	}
	if decoded != content {
		t.Fatalf("expected %q, got %q", content, decoded)
	}
}
