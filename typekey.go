/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package definitionhelper

import (
	"reflect"

	"github.com/StarCoreSE/DefinitionHelper/registry"
)

// TypeKey identifies a definition category. Two keys with the same Name describe
// the same logical type even when their Origin differs; the registry resolves
// them to a single canonical key.
type TypeKey struct {
	// Name is the stable name keys are compared by (e.g. "Weapon").
	Name string
	// Origin identifies the descriptor instance, such as the Go package path or
	// the module that loaded the type. It takes no part in resolution.
	Origin string
}

// NewTypeKey returns a key for name with no origin.
func NewTypeKey(name string) TypeKey {
	return TypeKey{Name: name}
}

// TypeKeyOf returns the key for the Go type T. The name comes from the type-name
// registry (falling back to the reflect name) and the origin is T's package path.
func TypeKeyOf[T any]() TypeKey {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return TypeKey{Name: registry.TypeName(t), Origin: t.PkgPath()}
}

// String returns "origin.name", or just the name when there is no origin.
func (k TypeKey) String() string {
	if k.Origin == "" {
		return k.Name
	}
	return k.Origin + "." + k.Name
}

// ChangeKind describes what happened to a definition. The numeric values are
// part of the API contract with peer modules.
type ChangeKind int

const (
	CreatedOrUpdated ChangeKind = 0
	Removed          ChangeKind = 1
	DelegatesUpdated ChangeKind = 2
)

func (c ChangeKind) String() string {
	switch c {
	case CreatedOrUpdated:
		return "CreatedOrUpdated"
	case Removed:
		return "Removed"
	case DelegatesUpdated:
		return "DelegatesUpdated"
	default:
		return "Unknown"
	}
}
