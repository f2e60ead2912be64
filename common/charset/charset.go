package charset

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Lookup resolves an encoding label such as "utf-8", "latin1" or "windows-1252".
// An empty label means UTF-8.
func Lookup(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(strings.ToLower(label))
	switch label {
	case "", "utf8", "utf-8":
		return unicode.UTF8, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc, nil
}

// NewReader wraps r so that it yields UTF-8 decoded from label.
func NewReader(r io.Reader, label string) (io.Reader, error) {
	enc, err := Lookup(label)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return r, nil
	}
	return enc.NewDecoder().Reader(r), nil
}
