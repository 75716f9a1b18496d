/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package api

import (
	"slices"
	"sync"
)

// MessageHandler receives messages sent on a channel it is registered for.
// Handlers are compared by identity, so implementations should be pointers.
type MessageHandler interface {
	HandleMessage(channel int64, data any)
}

// Bus is the inter-module messaging facility the adapter announces on.
type Bus interface {
	RegisterMessageHandler(channel int64, h MessageHandler)
	UnregisterMessageHandler(channel int64, h MessageHandler)
	SendMessage(channel int64, data any)
}

// LocalBus is an in-process Bus. SendMessage delivers synchronously to every
// handler of the channel in registration order, including the sender's own.
type LocalBus struct {
	mu       sync.Mutex
	handlers map[int64][]MessageHandler
}

// NewLocalBus creates an empty LocalBus.
func NewLocalBus() *LocalBus {
	return &LocalBus{handlers: make(map[int64][]MessageHandler)}
}

// RegisterMessageHandler adds h to channel. Registering the same handler twice
// delivers every message to it twice.
func (b *LocalBus) RegisterMessageHandler(channel int64, h MessageHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[channel] = append(b.handlers[channel], h)
}

// UnregisterMessageHandler removes the first registration of h on channel.
func (b *LocalBus) UnregisterMessageHandler(channel int64, h MessageHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	hs := b.handlers[channel]
	if i := slices.Index(hs, h); i >= 0 {
		b.handlers[channel] = slices.Delete(slices.Clone(hs), i, i+1)
	}
}

// SendMessage delivers data to a snapshot of the channel's handlers.
func (b *LocalBus) SendMessage(channel int64, data any) {
	b.mu.Lock()
	hs := slices.Clone(b.handlers[channel])
	b.mu.Unlock()

	for _, h := range hs {
		h.HandleMessage(channel, data)
	}
}

// HandlerCount returns the number of handlers registered on channel.
func (b *LocalBus) HandlerCount(channel int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[channel])
}
