// Package charset converts legacy single- and multi-byte encoded text into UTF-8.
package charset

import (
	"fmt"

	"github.com/axgle/mahonia"

	"github.com/arloliu/dta/errs"
)

// Decoder turns raw on-disk bytes into a Go string.
type Decoder interface {
	Decode(b []byte) string
}

type rawDecoder struct{}

func (rawDecoder) Decode(b []byte) string {
	return string(b)
}

type mahoniaDecoder struct {
	name string
	dec  mahonia.Decoder
}

func (d mahoniaDecoder) Decode(b []byte) string {
	return d.dec.ConvertString(string(b))
}

// Raw returns a Decoder that copies bytes unchanged.
func Raw() Decoder {
	return rawDecoder{}
}

// New returns a Decoder for the named charset, e.g. "ISO-8859-1", "windows-1252" or "GBK".
// An empty name returns Raw.
func New(name string) (Decoder, error) {
	if name == "" {
		return Raw(), nil
	}

	dec := mahonia.NewDecoder(name)
	if dec == nil {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownCharset, name)
	}

	return mahoniaDecoder{name: name, dec: dec}, nil
}
