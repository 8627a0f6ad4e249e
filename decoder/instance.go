// Package decoder provides a swappable streaming JSON decoder factory
// for loading instance documents, defaulting to goccy/go-json rather
// than encoding/json for its lower-allocation decode path.
package decoder

import (
	"io"

	json "github.com/goccy/go-json"
)

type IDecoder interface {
	Decode(any) error
}

type Factory func(io.Reader) IDecoder

var decoderFactory Factory

func init() {
	decoderFactory = func(r io.Reader) IDecoder {
		return json.NewDecoder(r)
	}
}

// SetDecoder allows you to set a custom decoder factory.
func SetDecoder(factory Factory) {
	decoderFactory = factory
}

// NewDecoder creates a new decoder using the currently set decoder factory.
func NewDecoder(w io.Reader) IDecoder {
	return decoderFactory(w)
}

func Instance() Factory {
	return decoderFactory
}
