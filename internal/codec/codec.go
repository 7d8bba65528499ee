package codec

import "encoding/json"

// Codec serializes values for hashing and size estimation.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec produces compact JSON. encoding/json sorts map keys, which
// makes the output canonical for structurally equal values within one
// process.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error)   { return json.Marshal(v) }
func (JSONCodec) Unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

// JSON is the module-wide default codec.
var JSON Codec = JSONCodec{}
