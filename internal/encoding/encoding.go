// Package encoding normalizes uploaded statement bytes to UTF-8. Bank export
// tools still emit Windows-1252 and UTF-16 files with some regularity.
package encoding

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	textencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NormalizeUTF8 returns data decoded to UTF-8 with any byte order mark
// stripped.
//
// Detection order:
//  1. BOM (UTF-8 BOM stripped; UTF-16 LE/BE decoded)
//  2. valid UTF-8 passes through unchanged
//  3. heuristic charset detection via chardet
//  4. fallback to Windows-1252
func NormalizeUTF8(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], nil
	case bytes.HasPrefix(data, bomUTF16LE):
		return decode(data, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM))
	case bytes.HasPrefix(data, bomUTF16BE):
		return decode(data, unicode.UTF16(unicode.BigEndian, unicode.UseBOM))
	}

	if utf8.Valid(data) {
		return data, nil
	}

	detector := chardet.NewTextDetector()
	if result, err := detector.DetectBest(data); err == nil {
		switch result.Charset {
		case "UTF-8":
			return data, nil
		case "ISO-8859-1", "windows-1252":
			return decode(data, charmap.Windows1252)
		case "ISO-8859-15":
			return decode(data, charmap.ISO8859_15)
		case "ISO-8859-9":
			return decode(data, charmap.ISO8859_9)
		}
	}

	return decode(data, charmap.Windows1252)
}

func decode(data []byte, enc textencoding.Encoding) ([]byte, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}
