// Package marshaler provides a swappable whole-value JSON marshal
// function, defaulting to goccy/go-json.
package marshaler

import (
	json "github.com/goccy/go-json"
)

type Marshaler func(any) ([]byte, error)

var marshaler Marshaler

func init() {
	marshaler = json.Marshal
}

func SetMarshaler(m Marshaler) {
	marshaler = m
}

func Instance() Marshaler {
	return marshaler
}
