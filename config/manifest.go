/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package config

import (
	"encoding/base64"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	definitionhelper "github.com/StarCoreSE/DefinitionHelper"
	"github.com/StarCoreSE/DefinitionHelper/errors"
)

// Manifest is a list of definitions used to seed a registry at startup.
//
//	definitions:
//	  - type: Weapon
//	    id: laser
//	    payload: "damage: 12"
//	  - type: Weapon
//	    id: railgun
//	    payload_base64: ZGFtYWdlOiA0MA==
type Manifest struct {
	Definitions []ManifestEntry `yaml:"definitions"`
}

// ManifestEntry is one seeded definition. At most one payload form may be set.
type ManifestEntry struct {
	Type          string `yaml:"type"`
	ID            string `yaml:"id"`
	Payload       string `yaml:"payload,omitempty"`
	PayloadBase64 string `yaml:"payload_base64,omitempty"`
}

// Bytes returns the entry payload, decoding payload_base64 when set.
func (e ManifestEntry) Bytes() ([]byte, error) {
	if e.PayloadBase64 != "" {
		return base64.StdEncoding.DecodeString(e.PayloadBase64)
	}
	return []byte(e.Payload), nil
}

// RegisterFunc receives each manifest definition.
type RegisterFunc func(definitionID string, key definitionhelper.TypeKey, payload []byte) error

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.NewValidationError("manifest", err.Error())
	}

	for i, e := range m.Definitions {
		field := fmt.Sprintf("definitions[%d]", i)
		switch {
		case e.Type == "":
			return nil, errors.NewValidationError(field+".type", "is required")
		case e.ID == "":
			return nil, errors.NewValidationError(field+".id", "is required")
		case e.Payload != "" && e.PayloadBase64 != "":
			return nil, errors.NewValidationError(field, "payload and payload_base64 are mutually exclusive")
		}
		if _, err := e.Bytes(); err != nil {
			return nil, errors.NewValidationError(field+".payload_base64", err.Error())
		}
	}
	return &m, nil
}

// Apply passes every entry to fn in manifest order and stops at the first error.
func (m *Manifest) Apply(fn RegisterFunc) error {
	for _, e := range m.Definitions {
		payload, err := e.Bytes()
		if err != nil {
			return err
		}
		if err := fn(e.ID, definitionhelper.NewTypeKey(e.Type), payload); err != nil {
			return fmt.Errorf("failed to register %s/%s: %w", e.Type, e.ID, err)
		}
	}
	return nil
}

// ApplyTo registers every entry directly on reg. Entries are validated before
// any is registered, so a bad entry leaves reg untouched.
func (m *Manifest) ApplyTo(reg *definitionhelper.Registry) error {
	for i, e := range m.Definitions {
		if _, err := e.Bytes(); err != nil {
			return errors.NewValidationError(fmt.Sprintf("definitions[%d].payload_base64", i), err.Error())
		}
	}
	return m.Apply(func(definitionID string, key definitionhelper.TypeKey, payload []byte) error {
		reg.RegisterDefinition(definitionID, key, payload)
		return nil
	})
}
