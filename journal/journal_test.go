/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package journal_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	definitionhelper "github.com/StarCoreSE/DefinitionHelper"
	"github.com/StarCoreSE/DefinitionHelper/datastore/mock"
	"github.com/StarCoreSE/DefinitionHelper/journal"
	"github.com/StarCoreSE/DefinitionHelper/models"
	"github.com/StarCoreSE/DefinitionHelper/monitoring"
)

var weapon = definitionhelper.NewTypeKey("Weapon")

func closeJournal(t *testing.T, j *journal.Journal) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, j.Close(ctx))
}

func TestJournal_RecordsChangesInOrder(t *testing.T) {
	store := mock.New()
	reg := definitionhelper.New()
	j := journal.New(store, zaptest.NewLogger(t))

	j.Attach(reg, weapon)

	reg.RegisterDefinition("laser", weapon, []byte("12345"))
	require.NoError(t, reg.RegisterDelegates("laser", weapon, definitionhelper.DelegateBundle{"Fire": func() {}}))
	reg.RemoveDefinition("laser", weapon)

	closeJournal(t, j)

	records := store.Records()
	require.Len(t, records, 3)

	require.Equal(t, "CreatedOrUpdated", records[0].Kind)
	require.Equal(t, 0, records[0].KindCode)
	require.Equal(t, 5, records[0].PayloadSize)
	require.Equal(t, "DelegatesUpdated", records[1].Kind)
	require.Equal(t, "Removed", records[2].Kind)
	require.Equal(t, 0, records[2].PayloadSize)

	for i, r := range records {
		require.Equal(t, int64(i+1), r.Sequence)
		require.Equal(t, "Weapon", r.Type)
		require.Equal(t, "laser", r.DefinitionID)
		require.NotEmpty(t, r.EventID)
	}
	require.Equal(t, int64(3), j.Written())
}

func TestJournal_AttachAllKnownTypes(t *testing.T) {
	store := mock.New()
	reg := definitionhelper.New()
	reg.RegisterDefinition("laser", weapon, []byte("x"))
	reg.RegisterDefinition("corvette", definitionhelper.NewTypeKey("Ship"), []byte("y"))

	j := journal.New(store, nil)
	j.Attach(reg)

	reg.RegisterDefinition("railgun", weapon, []byte("z"))
	reg.RegisterDefinition("frigate", definitionhelper.NewTypeKey("Ship"), []byte("w"))
	closeJournal(t, j)

	ships, err := store.Query(context.Background(), &models.QueryParams{Type: "Ship"})
	require.NoError(t, err)
	require.Len(t, ships, 1)
	require.Equal(t, "frigate", ships[0].DefinitionID)
	require.Equal(t, 2, store.Count())
}

func TestJournal_DetachStopsRecording(t *testing.T) {
	store := mock.New()
	reg := definitionhelper.New()
	j := journal.New(store, nil)

	j.Attach(reg, weapon)
	reg.RegisterDefinition("laser", weapon, nil)
	j.Detach()
	reg.RegisterDefinition("railgun", weapon, nil)

	closeJournal(t, j)
	require.Equal(t, 1, store.Count())
}

func TestJournal_DropsWhenBufferFull(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	store := mock.New().WithPutHook(func(models.JournalRecord) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
	})

	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	reg := definitionhelper.New()
	j := journal.New(store, nil, models.WithBufferSize(1)).WithMetrics(metrics)
	j.Attach(reg, weapon)

	reg.RegisterDefinition("a", weapon, nil)
	<-started
	reg.RegisterDefinition("b", weapon, nil)
	reg.RegisterDefinition("c", weapon, nil)

	require.Equal(t, int64(1), j.Dropped())
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.JournalRecords.WithLabelValues("dropped")))

	close(release)
	closeJournal(t, j)

	require.Equal(t, 2, store.Count())
	require.Equal(t, 2.0, testutil.ToFloat64(metrics.JournalRecords.WithLabelValues("written")))
}

type flakyStore struct {
	*mock.JournalStore
	mu       sync.Mutex
	failures int
	calls    int
}

func (f *flakyStore) Put(ctx context.Context, record models.JournalRecord) error {
	f.mu.Lock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		f.mu.Unlock()
		return fmt.Errorf("temporary failure")
	}
	f.mu.Unlock()
	return f.JournalStore.Put(ctx, record)
}

func (f *flakyStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestJournal_RetriesFailedWrites(t *testing.T) {
	store := &flakyStore{JournalStore: mock.New(), failures: 2}
	reg := definitionhelper.New()
	j := journal.New(store, nil, models.WithMaxRetries(2), models.WithRetryBackoff(time.Millisecond))
	j.Attach(reg, weapon)

	reg.RegisterDefinition("laser", weapon, nil)
	closeJournal(t, j)

	require.Equal(t, 1, store.Count())
	require.Equal(t, 3, store.Calls())
}

func TestJournal_RetryPolicySkipsPermanentErrors(t *testing.T) {
	store := &flakyStore{JournalStore: mock.New(), failures: 10}
	reg := definitionhelper.New()
	j := journal.New(store, nil,
		models.WithMaxRetries(3),
		models.WithRetryBackoff(time.Millisecond),
		models.WithRetryPolicy(func(error) bool { return false }),
	)
	j.Attach(reg, weapon)

	reg.RegisterDefinition("laser", weapon, nil)
	closeJournal(t, j)

	require.Equal(t, 1, store.Calls())
	require.Equal(t, 0, store.Count())
}

func TestJournal_CloseInterruptsRetryBackoff(t *testing.T) {
	store := &flakyStore{JournalStore: mock.New(), failures: 100}
	reg := definitionhelper.New()
	j := journal.New(store, nil, models.WithMaxRetries(5), models.WithRetryBackoff(time.Hour))
	j.Attach(reg, weapon)

	reg.RegisterDefinition("laser", weapon, nil)
	require.Eventually(t, func() bool { return store.Calls() == 1 }, 5*time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, j.Close(ctx), context.DeadlineExceeded)

	// The worker gives up its backoff once Close cancels it.
	closeJournal(t, j)
	require.Equal(t, 1, store.Calls())
	require.Equal(t, int64(0), j.Written())
}

func TestJournal_ErrorHandlerStopsJournal(t *testing.T) {
	store := mock.New().WithPutError(fmt.Errorf("table missing"))
	reg := definitionhelper.New()

	var mu sync.Mutex
	var handled []error
	j := journal.New(store, nil,
		models.WithMaxRetries(0),
		models.WithErrorHandler(func(err error) bool {
			mu.Lock()
			defer mu.Unlock()
			handled = append(handled, err)
			return false
		}),
	)
	j.Attach(reg, weapon)

	reg.RegisterDefinition("laser", weapon, nil)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(handled) == 1
	}, 5*time.Second, time.Millisecond)

	reg.RegisterDefinition("railgun", weapon, nil)
	closeJournal(t, j)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, handled, 1)
	require.Equal(t, 0, store.Count())
}

func TestJournal_CloseIsIdempotent(t *testing.T) {
	j := journal.New(mock.New(), nil)
	closeJournal(t, j)
	closeJournal(t, j)
}
