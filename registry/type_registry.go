/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package registry

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// DecodeFunc turns an opaque definition payload into a structured value.
type DecodeFunc func(payload []byte) (interface{}, error)

// decoderRegistry holds the mapping from a definition type name (like "Weapon", "Recipe") to its decode function.
var (
	decoderRegistry = make(map[string]DecodeFunc)
	decoderMu       sync.RWMutex
)

// RegisterDecoder registers a decode function for a given definition type name.
// If a decoder is already registered for the name, it panics to prevent accidental overrides.
func RegisterDecoder(typeName string, fn DecodeFunc) {
	decoderMu.Lock()
	defer decoderMu.Unlock()

	if _, exists := decoderRegistry[typeName]; exists {
		panic(fmt.Sprintf("type registry: decoder for type %q already registered", typeName))
	}
	decoderRegistry[typeName] = fn
}

// GetDecoder returns the registered decode function for the given type name.
// If no function is registered, it returns an error.
func GetDecoder(typeName string) (DecodeFunc, error) {
	decoderMu.RLock()
	defer decoderMu.RUnlock()

	fn, ok := decoderRegistry[typeName]
	if !ok {
		return nil, fmt.Errorf("type registry: no decoder registered for type %q", typeName)
	}
	return fn, nil
}

// Decode looks up the decoder for typeName and applies it to payload.
func Decode(typeName string, payload []byte) (interface{}, error) {
	fn, err := GetDecoder(typeName)
	if err != nil {
		return nil, err
	}
	v, err := fn(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", typeName, err)
	}
	return v, nil
}

// YAMLDecoder returns a DecodeFunc that unmarshals YAML (or JSON, which is a YAML subset) into a new T.
func YAMLDecoder[T any]() DecodeFunc {
	return func(payload []byte) (interface{}, error) {
		out := new(T)
		if err := yaml.Unmarshal(payload, out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// resetDecoders clears the decoder registry. Tests only.
func resetDecoders() {
	decoderMu.Lock()
	defer decoderMu.Unlock()
	decoderRegistry = make(map[string]DecodeFunc)
}
