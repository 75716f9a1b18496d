/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package definitionhelper

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/StarCoreSE/DefinitionHelper/monitoring"
	"github.com/StarCoreSE/DefinitionHelper/registry"
)

// Registry is the definition registry: type-keyed definition and delegate
// storage plus per-type change notification. Every operation resolves its
// TypeKey to the canonical key before touching any store.
//
// A Registry is not safe for concurrent use. Callers that can be entered from
// several goroutines must serialize access themselves. Update callbacks run on
// the mutating caller's goroutine and may call back into the Registry.
type Registry struct {
	definitions *definitionStore
	delegates   *delegateStore
	notifier    *notifier
	resolver    typeResolver
	logger      *zap.Logger
	metrics     *monitoring.Metrics
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	delegates := newDelegateStore()
	definitions := newDefinitionStore(delegates)
	n := newNotifier(options.Logger, options.Metrics)

	return &Registry{
		definitions: definitions,
		delegates:   delegates,
		notifier:    n,
		resolver:    typeResolver{definitions: definitions, notifier: n},
		logger:      options.Logger,
		metrics:     options.Metrics,
	}
}

// RegisterDefinition stores payload under (key, definitionID), overwriting any
// previous payload, and notifies subscribers with CreatedOrUpdated.
func (r *Registry) RegisterDefinition(definitionID string, key TypeKey, payload []byte) {
	key = r.resolver.resolve(key)

	r.definitions.put(key, definitionID, payload)
	r.metrics.RecordMutation(key.Name, "register")
	r.metrics.SetDefinitions(key.Name, r.definitions.count(key))

	if r.notifier.hasList(key) {
		r.notifier.notify(key, definitionID, CreatedOrUpdated)
	}

	r.logger.Info("Registered definition",
		zap.String("type", key.Name),
		zap.String("id", definitionID),
		zap.Int("bytes", len(payload)),
	)
}

// RegisterDelegates stores bundle for (key, definitionID) and notifies
// subscribers with DelegatesUpdated. It fails with ErrInvalidState when no
// definition of key has ever been registered.
func (r *Registry) RegisterDelegates(definitionID string, key TypeKey, bundle DelegateBundle) error {
	key = r.resolver.resolve(key)

	if err := r.delegates.put(key, definitionID, bundle); err != nil {
		return err
	}
	r.metrics.RecordMutation(key.Name, "delegates")

	if r.notifier.hasList(key) {
		r.notifier.notify(key, definitionID, DelegatesUpdated)
	}

	r.logger.Info("Registered delegates",
		zap.String("type", key.Name),
		zap.String("id", definitionID),
		zap.Int("count", len(bundle)),
	)
	return nil
}

// RemoveDefinition deletes the definition and its delegates. Subscribers are
// notified with Removed whenever the type has a subscriber list, even if
// nothing was stored under definitionID.
func (r *Registry) RemoveDefinition(definitionID string, key TypeKey) {
	key = r.resolver.resolve(key)

	known := r.definitions.remove(key, definitionID)
	if known {
		r.metrics.RecordMutation(key.Name, "remove")
		r.metrics.SetDefinitions(key.Name, r.definitions.count(key))
	}

	if r.notifier.hasList(key) {
		r.notifier.notify(key, definitionID, Removed)
	}

	if known {
		r.logger.Info("Removed definition",
			zap.String("type", key.Name),
			zap.String("id", definitionID),
		)
	}
}

// GetDefinition returns the payload stored under (key, definitionID). It fails
// with ErrNotFound when the type or the id is unknown.
func (r *Registry) GetDefinition(definitionID string, key TypeKey) ([]byte, error) {
	key = r.resolver.resolve(key)
	return r.definitions.get(key, definitionID)
}

// DecodeDefinition fetches the payload under (key, definitionID) and decodes it
// with the decoder registered for the canonical type name.
func (r *Registry) DecodeDefinition(definitionID string, key TypeKey) (interface{}, error) {
	key = r.resolver.resolve(key)
	payload, err := r.definitions.get(key, definitionID)
	if err != nil {
		return nil, err
	}
	return registry.Decode(key.Name, payload)
}

// GetDelegates returns the delegate bundle for (key, definitionID). Absence is
// reported with ok == false and is not an error.
func (r *Registry) GetDelegates(definitionID string, key TypeKey) (DelegateBundle, bool) {
	key = r.resolver.resolve(key)
	return r.delegates.get(key, definitionID)
}

// GetDefinitionsOfType lists the ids registered under key. The result is empty
// (never nil) for a type that was never registered.
func (r *Registry) GetDefinitionsOfType(key TypeKey) []string {
	key = r.resolver.resolve(key)
	return r.definitions.listIDs(key)
}

// HasDefinition reports whether (key, definitionID) is registered.
func (r *Registry) HasDefinition(definitionID string, key TypeKey) bool {
	key = r.resolver.resolve(key)
	return r.definitions.has(key, definitionID)
}

// RegisterOnUpdate subscribes fn to changes of key. The returned handle is
// used to unsubscribe.
func (r *Registry) RegisterOnUpdate(key TypeKey, fn UpdateFunc) SubscriptionID {
	key = r.resolver.resolve(key)

	id := r.notifier.subscribe(key, fn)

	r.logger.Info("Registered OnUpdate",
		zap.String("type", key.Name),
		zap.Uint64("subscription", uint64(id)),
	)
	return id
}

// UnregisterOnUpdate removes one subscription. Unknown types and handles are ignored.
func (r *Registry) UnregisterOnUpdate(key TypeKey, id SubscriptionID) {
	key = r.resolver.resolve(key)

	if !r.notifier.hasList(key) {
		return
	}
	r.notifier.unsubscribe(key, id)

	r.logger.Info("Unregistered OnUpdate",
		zap.String("type", key.Name),
		zap.Uint64("subscription", uint64(id)),
	)
}

// Types returns the canonical keys known to the definition store, sorted by name.
func (r *Registry) Types() []TypeKey {
	keys := r.definitions.keys()
	slices.SortFunc(keys, func(a, b TypeKey) int {
		return strings.Compare(a.Name, b.Name)
	})
	return keys
}

// Close clears all definitions and delegates. Subscriptions are kept.
func (r *Registry) Close() {
	r.definitions.clear()
	r.metrics.ResetDefinitions()
	r.logger.Info("Closed definition registry")
}
