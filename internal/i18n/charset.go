package i18n

import (
	"bytes"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// toUTF8 normalizes a translation payload to UTF-8. Some deployments of the
// translation service serve Latin-1 files, which would otherwise break JSON
// decoding on the first accented label.
//
// Order: BOM, valid UTF-8 as-is, chardet guess, Windows-1252.
func toUTF8(b []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(b, bomUTF8):
		return b[len(bomUTF8):], nil
	case bytes.HasPrefix(b, bomUTF16LE):
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), b)
	case bytes.HasPrefix(b, bomUTF16BE):
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.UseBOM), b)
	}

	if utf8.Valid(b) {
		return b, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(b); err == nil {
		switch result.Charset {
		case "UTF-8":
			return b, nil
		case "ISO-8859-9":
			return decodeWith(charmap.ISO8859_9, b)
		}
	}

	return decodeWith(charmap.Windows1252, b)
}

func decodeWith(enc encoding.Encoding, b []byte) ([]byte, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	return out, err
}
