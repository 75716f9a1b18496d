/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
)

// typeNameRegistry maps Go types to the stable names they are published under.

var (
	typeNameRegistry = make(map[reflect.Type]string)
	mu               sync.RWMutex
)

// RegisterTypeName associates a Go type T with the stable definition type name used by the registry.
func RegisterTypeName[T any](name string) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	mu.Lock()
	defer mu.Unlock()
	typeNameRegistry[t] = name
}

// LookupTypeName retrieves the registered name for t, if any.
func LookupTypeName(t reflect.Type) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	name, ok := typeNameRegistry[t]
	return name, ok
}

// TypeName returns the registered name for t, falling back to its reflect name.
// Pointer types resolve to the name of their element type.
func TypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name, ok := LookupTypeName(t); ok {
		return name
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// resetTypeNames clears the type-name registry. Tests only.
func resetTypeNames() {
	mu.Lock()
	defer mu.Unlock()
	typeNameRegistry = make(map[reflect.Type]string)
}
