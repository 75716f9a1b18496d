/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package definitionhelper

// typeResolver maps a candidate key onto the canonical key already in use.
// Type cardinality is small, so a linear scan is fine.
type typeResolver struct {
	definitions *definitionStore
	notifier    *notifier
}

// resolve returns the first known key whose Name matches candidate's, or
// candidate itself when the name is new. Definition store keys win; notifier
// keys are consulted so that subscriptions made before a type's first
// definition share its canonical key.
func (r typeResolver) resolve(candidate TypeKey) TypeKey {
	for _, existing := range r.definitions.keys() {
		if existing.Name == candidate.Name {
			return existing
		}
	}
	for _, existing := range r.notifier.keys() {
		if existing.Name == candidate.Name {
			return existing
		}
	}
	return candidate
}
