package extract

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// PlainTextExtractor reads text files, decoding UTF-8 first and falling
// back through the legacy single-byte encodings
type PlainTextExtractor struct{}

// Name identifies the extractor
func (e *PlainTextExtractor) Name() string {
	return "text"
}

// Extract reads and decodes the whole file
func (e *PlainTextExtractor) Extract(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return DecodeText(data), nil
}

// DecodeText decodes raw bytes as UTF-8 when valid, then tries
// Windows-1252 for the smart quotes and dashes legacy exports carry,
// and finally Latin-1, where every byte maps, so decoding never fails.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	if out, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
		return string(out)
	}
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(out)
}
