/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package definitionhelper

import (
	"bytes"
	"slices"

	"github.com/StarCoreSE/DefinitionHelper/errors"
)

// definitionStore holds serialized definition payloads keyed by (type, id).
// Creating a type here also creates its delegate map, and removals cascade.
type definitionStore struct {
	definitions map[TypeKey]map[string][]byte
	delegates   *delegateStore
}

func newDefinitionStore(delegates *delegateStore) *definitionStore {
	return &definitionStore{
		definitions: make(map[TypeKey]map[string][]byte),
		delegates:   delegates,
	}
}

// put inserts or overwrites a payload. Re-registering an id is not an error.
func (s *definitionStore) put(key TypeKey, id string, payload []byte) {
	byID, ok := s.definitions[key]
	if !ok {
		byID = make(map[string][]byte)
		s.definitions[key] = byID
		s.delegates.create(key)
	}
	byID[id] = bytes.Clone(payload)
}

// get fails with NotFound when either the type or the id is unknown.
func (s *definitionStore) get(key TypeKey, id string) ([]byte, error) {
	payload, ok := s.definitions[key][id]
	if !ok {
		return nil, errors.NewNotFoundError(key.String(), id)
	}
	return bytes.Clone(payload), nil
}

// remove deletes id from both stores. It is a no-op for an unknown type and
// reports whether the type was known.
func (s *definitionStore) remove(key TypeKey, id string) bool {
	byID, ok := s.definitions[key]
	if !ok {
		return false
	}
	delete(byID, id)
	s.delegates.remove(key, id)
	return true
}

// listIDs returns the ids registered under key in sorted order, empty for an unknown type.
func (s *definitionStore) listIDs(key TypeKey) []string {
	byID := s.definitions[key]
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *definitionStore) has(key TypeKey, id string) bool {
	_, ok := s.definitions[key][id]
	return ok
}

func (s *definitionStore) count(key TypeKey) int {
	return len(s.definitions[key])
}

func (s *definitionStore) keys() []TypeKey {
	keys := make([]TypeKey, 0, len(s.definitions))
	for k := range s.definitions {
		keys = append(keys, k)
	}
	return keys
}

func (s *definitionStore) clear() {
	s.definitions = make(map[TypeKey]map[string][]byte)
	s.delegates.clear()
}
