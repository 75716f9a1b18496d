/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package journal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	definitionhelper "github.com/StarCoreSE/DefinitionHelper"
	"github.com/StarCoreSE/DefinitionHelper/datastore"
	"github.com/StarCoreSE/DefinitionHelper/models"
	"github.com/StarCoreSE/DefinitionHelper/monitoring"
)

type attachment struct {
	reg *definitionhelper.Registry
	key definitionhelper.TypeKey
	id  definitionhelper.SubscriptionID
}

// Journal writes registry change events to a JournalStore.
type Journal struct {
	store   datastore.JournalStore
	logger  *zap.Logger
	metrics *monitoring.Metrics
	opts    models.JournalOptions
	now     func() time.Time
	ctx     context.Context
	cancel  context.CancelFunc

	mu       sync.Mutex
	closed   bool
	attached []attachment

	events   chan models.ChangeEvent
	done     chan struct{}
	sequence atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	stopped  atomic.Bool
}

// New starts a journal worker writing to store.
func New(store datastore.JournalStore, logger *zap.Logger, opts ...models.JournalOption) *Journal {
	options := models.DefaultJournalOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.BufferSize < 1 {
		options.BufferSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	j := &Journal{
		ctx:    ctx,
		cancel: cancel,
		store:  store,
		logger: logger,
		opts:   options,
		now:    time.Now,
		events: make(chan models.ChangeEvent, options.BufferSize),
		done:   make(chan struct{}),
	}
	go j.run()
	return j
}

// WithMetrics reports journal outcomes to metrics. Call before Attach.
func (j *Journal) WithMetrics(metrics *monitoring.Metrics) *Journal {
	j.metrics = metrics
	return j
}

// Attach subscribes the journal to changes of every key on reg. With no keys,
// it attaches to every type currently known to reg.
//
// Attach, Detach and the registry mutations must run on the same goroutine,
// since the Registry itself is not safe for concurrent use.
func (j *Journal) Attach(reg *definitionhelper.Registry, keys ...definitionhelper.TypeKey) {
	if len(keys) == 0 {
		keys = reg.Types()
	}

	for _, key := range keys {
		key := key
		id := reg.RegisterOnUpdate(key, func(definitionID string, kind definitionhelper.ChangeKind) {
			size := 0
			if kind != definitionhelper.Removed {
				if payload, err := reg.GetDefinition(definitionID, key); err == nil {
					size = len(payload)
				}
			}
			j.enqueue(key, definitionID, kind, size)
		})

		j.mu.Lock()
		j.attached = append(j.attached, attachment{reg: reg, key: key, id: id})
		j.mu.Unlock()

		j.logger.Debug("Journal attached", zap.String("type", key.Name))
	}
}

// Detach removes every subscription made by Attach.
func (j *Journal) Detach() {
	j.mu.Lock()
	attached := j.attached
	j.attached = nil
	j.mu.Unlock()

	for _, a := range attached {
		a.reg.UnregisterOnUpdate(a.key, a.id)
	}
}

func (j *Journal) enqueue(key definitionhelper.TypeKey, definitionID string, kind definitionhelper.ChangeKind, size int) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed || j.stopped.Load() {
		return
	}

	ev := models.ChangeEvent{
		Type:         key.Name,
		Origin:       key.Origin,
		DefinitionID: definitionID,
		Kind:         kind.String(),
		KindCode:     int(kind),
		PayloadSize:  size,
		Sequence:     j.sequence.Add(1),
		At:           j.now().UTC(),
	}

	select {
	case j.events <- ev:
	default:
		j.dropped.Add(1)
		j.metrics.RecordJournal("dropped")
		j.logger.Warn("Journal buffer full, dropping event",
			zap.String("type", ev.Type),
			zap.String("id", ev.DefinitionID),
			zap.Int64("sequence", ev.Sequence),
		)
	}
}

func (j *Journal) run() {
	defer close(j.done)

	for ev := range j.events {
		if j.stopped.Load() || j.ctx.Err() != nil {
			j.dropped.Add(1)
			continue
		}

		record := models.NewJournalRecord(uuid.NewString(), ev)
		if err := j.write(record); err != nil {
			j.metrics.RecordJournal("failed")
			j.logger.Error("Failed to write journal record",
				zap.String("type", record.Type),
				zap.String("id", record.DefinitionID),
				zap.Int64("sequence", record.Sequence),
				zap.Error(err),
			)
			if j.opts.ErrorHandler != nil && !j.opts.ErrorHandler(err) {
				j.stopped.Store(true)
				j.logger.Warn("Journal stopped by error handler")
			}
			continue
		}

		j.written.Add(1)
		j.metrics.RecordJournal("written")
	}
}

// write is the only retry layer for journal records; stores should be built
// without their own retries.
func (j *Journal) write(record models.JournalRecord) error {
	var err error
	for attempt := 0; attempt <= j.opts.MaxRetries; attempt++ {
		if err = j.store.Put(j.ctx, record); err == nil {
			return nil
		}
		if j.opts.Retryable != nil && !j.opts.Retryable(err) {
			return err
		}

		// Don't sleep after last attempt
		if attempt < j.opts.MaxRetries {
			select {
			case <-j.ctx.Done():
				return j.ctx.Err()
			case <-time.After(time.Duration(attempt+1) * j.opts.RetryBackoff):
			}
		}
	}
	return err
}

// Close detaches the journal, stops accepting events and waits until queued
// events are written. When ctx is done first, in-flight retries are abandoned,
// the remaining events are dropped and ctx's error is returned.
func (j *Journal) Close(ctx context.Context) error {
	j.Detach()

	j.mu.Lock()
	if !j.closed {
		j.closed = true
		close(j.events)
	}
	j.mu.Unlock()

	select {
	case <-j.done:
		j.cancel()
		return nil
	case <-ctx.Done():
		j.cancel()
		return ctx.Err()
	}
}

// Dropped returns the number of events that were never written because the
// buffer was full or the journal was stopped.
func (j *Journal) Dropped() int64 {
	return j.dropped.Load()
}

// Written returns the number of records stored successfully.
func (j *Journal) Written() int64 {
	return j.written.Load()
}
