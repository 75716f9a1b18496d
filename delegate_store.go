/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package definitionhelper

import (
	"github.com/StarCoreSE/DefinitionHelper/errors"
)

// DelegateBundle is a named collection of callables attached to one definition,
// e.g. {"OnFire": func(shooter string) {...}}.
type DelegateBundle map[string]any

// delegateStore holds delegate bundles keyed by (type, id). A type only exists
// here once the definition store has created it.
type delegateStore struct {
	bundles map[TypeKey]map[string]DelegateBundle
}

func newDelegateStore() *delegateStore {
	return &delegateStore{
		bundles: make(map[TypeKey]map[string]DelegateBundle),
	}
}

func (s *delegateStore) create(key TypeKey) {
	if _, ok := s.bundles[key]; !ok {
		s.bundles[key] = make(map[string]DelegateBundle)
	}
}

// put stores bundle, overwriting any previous one. An empty bundle clears the entry.
// It fails with InvalidState when the type has no definition store entry.
func (s *delegateStore) put(key TypeKey, id string, bundle DelegateBundle) error {
	byID, ok := s.bundles[key]
	if !ok {
		return errors.NewInvalidStateError(key.String(), "delegates")
	}
	if len(bundle) == 0 {
		delete(byID, id)
		return nil
	}
	byID[id] = bundle
	return nil
}

// get reports absence with ok == false; an unknown type is not an error.
func (s *delegateStore) get(key TypeKey, id string) (DelegateBundle, bool) {
	bundle, ok := s.bundles[key][id]
	return bundle, ok
}

func (s *delegateStore) remove(key TypeKey, id string) {
	if byID, ok := s.bundles[key]; ok {
		delete(byID, id)
	}
}

func (s *delegateStore) clear() {
	s.bundles = make(map[TypeKey]map[string]DelegateBundle)
}
