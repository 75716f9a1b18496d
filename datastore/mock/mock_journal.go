/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

// Package mock provides an in-memory datastore.JournalStore for testing
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/StarCoreSE/DefinitionHelper/errors"
	"github.com/StarCoreSE/DefinitionHelper/models"
)

// JournalStore is an in-memory implementation of datastore.JournalStore
type JournalStore struct {
	mu       sync.RWMutex
	records  []models.JournalRecord
	putError error
	putHook  func(models.JournalRecord)
}

// New creates a new mock JournalStore
func New() *JournalStore {
	return &JournalStore{}
}

// WithPutError makes Put operations return an error
func (m *JournalStore) WithPutError(err error) *JournalStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putError = err
	return m
}

// WithPutHook registers a function called with every successfully stored record
func (m *JournalStore) WithPutHook(f func(models.JournalRecord)) *JournalStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putHook = f
	return m
}

// Put stores a record
func (m *JournalStore) Put(ctx context.Context, record models.JournalRecord) error {
	m.mu.Lock()
	if m.putError != nil {
		err := m.putError
		m.mu.Unlock()
		return err
	}
	if record.EventID == "" {
		m.mu.Unlock()
		return errors.NewValidationError("eventId", "journal records need an event id")
	}
	m.records = append(m.records, record)
	hook := m.putHook
	m.mu.Unlock()

	if hook != nil {
		hook(record)
	}
	return nil
}

// Query returns the records of params.Type ordered by sequence
func (m *JournalStore) Query(ctx context.Context, params *models.QueryParams) ([]models.JournalRecord, error) {
	if params == nil || params.Type == "" {
		return nil, errors.NewValidationError("type", "journal queries need a definition type")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]models.JournalRecord, 0)
	for _, r := range m.records {
		if r.Type == params.Type {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if params.Newest {
			return results[i].Sequence > results[j].Sequence
		}
		return results[i].Sequence < results[j].Sequence
	})
	if params.Limit > 0 && int(params.Limit) < len(results) {
		results = results[:params.Limit]
	}
	return results, nil
}

// Records returns a copy of all stored records in insertion order
func (m *JournalStore) Records() []models.JournalRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.JournalRecord, len(m.records))
	copy(out, m.records)
	return out
}

// Count returns the number of stored records
func (m *JournalStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Clear removes all records
func (m *JournalStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
}
