// Package encoder provides a swappable streaming JSON encoder factory
// for dumping instance documents, defaulting to goccy/go-json.
package encoder

import (
	"io"

	json "github.com/goccy/go-json"
)

type IEncoder interface {
	Encode(any) error
}

type Factory func(io.Writer) IEncoder

var encoderFactory Factory

func init() {
	encoderFactory = func(w io.Writer) IEncoder {
		return json.NewEncoder(w)
	}
}

// SetEncoder allows you to set a custom encoder factory.
func SetEncoder(factory Factory) {
	encoderFactory = factory
}

// NewEncoder creates a new encoder using the currently set encoder factory.
func NewEncoder(w io.Writer) IEncoder {
	return encoderFactory(w)
}

func Instance() Factory {
	return encoderFactory
}
