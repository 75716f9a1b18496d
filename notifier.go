/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package definitionhelper

import (
	"slices"

	"go.uber.org/zap"

	"github.com/StarCoreSE/DefinitionHelper/monitoring"
)

// UpdateFunc is called after a definition of a subscribed type changes.
type UpdateFunc func(definitionID string, kind ChangeKind)

// SubscriptionID identifies one RegisterOnUpdate registration. The zero value
// never identifies a live subscription.
type SubscriptionID uint64

type subscription struct {
	id SubscriptionID
	fn UpdateFunc
}

// notifier keeps an ordered multicast list of callbacks per type. Lists are
// created on first subscribe and are kept even after they become empty.
type notifier struct {
	lists   map[TypeKey][]subscription
	nextID  SubscriptionID
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

func newNotifier(logger *zap.Logger, metrics *monitoring.Metrics) *notifier {
	return &notifier{
		lists:   make(map[TypeKey][]subscription),
		logger:  logger,
		metrics: metrics,
	}
}

// subscribe appends fn to key's list. Subscribing the same function twice
// yields two handles and two invocations per event. A nil fn creates the list
// but registers nothing.
func (n *notifier) subscribe(key TypeKey, fn UpdateFunc) SubscriptionID {
	list := n.lists[key]
	if fn == nil {
		if list == nil {
			n.lists[key] = []subscription{}
		}
		return 0
	}
	n.nextID++
	n.lists[key] = append(list, subscription{id: n.nextID, fn: fn})
	n.metrics.SetSubscriptions(key.Name, len(n.lists[key]))
	return n.nextID
}

// unsubscribe removes the registration with the given handle, reporting whether one was found.
func (n *notifier) unsubscribe(key TypeKey, id SubscriptionID) bool {
	list, ok := n.lists[key]
	if !ok {
		return false
	}
	i := slices.IndexFunc(list, func(s subscription) bool { return s.id == id })
	if i < 0 {
		return false
	}
	n.lists[key] = slices.Delete(slices.Clone(list), i, i+1)
	n.metrics.SetSubscriptions(key.Name, len(n.lists[key]))
	return true
}

func (n *notifier) hasList(key TypeKey) bool {
	_, ok := n.lists[key]
	return ok
}

func (n *notifier) count(key TypeKey) int {
	return len(n.lists[key])
}

func (n *notifier) keys() []TypeKey {
	keys := make([]TypeKey, 0, len(n.lists))
	for k := range n.lists {
		keys = append(keys, k)
	}
	return keys
}

// notify calls every subscriber of key in registration order on the caller's
// goroutine. It iterates a snapshot, so callbacks may subscribe, unsubscribe or
// mutate the registry without affecting the current dispatch.
func (n *notifier) notify(key TypeKey, definitionID string, kind ChangeKind) {
	for _, sub := range slices.Clone(n.lists[key]) {
		n.invoke(key, sub, definitionID, kind)
	}
}

// invoke isolates one callback: a panic is logged and counted, and the
// remaining subscribers still run.
func (n *notifier) invoke(key TypeKey, sub subscription, definitionID string, kind ChangeKind) {
	defer func() {
		if r := recover(); r != nil {
			n.metrics.RecordCallbackPanic(key.Name)
			n.logger.Error("Update callback panicked",
				zap.String("type", key.Name),
				zap.String("id", definitionID),
				zap.Stringer("kind", kind),
				zap.Uint64("subscription", uint64(sub.id)),
				zap.Any("panic", r),
			)
		}
	}()
	n.metrics.RecordNotification(key.Name, kind.String())
	sub.fn(definitionID, kind)
}
