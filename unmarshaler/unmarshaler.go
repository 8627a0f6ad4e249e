// Package unmarshaler provides a swappable whole-value JSON unmarshal
// function, defaulting to goccy/go-json.
package unmarshaler

import (
	json "github.com/goccy/go-json"
)

type Unmarshaler func([]byte, any) error

var unmarshaler Unmarshaler

func init() {
	unmarshaler = json.Unmarshal
}

func SetUnmarshaler(m Unmarshaler) {
	unmarshaler = m
}

func Instance() Unmarshaler {
	return unmarshaler
}
