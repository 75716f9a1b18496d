/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecording(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordMutation("Weapon", "register")
	m.RecordMutation("Weapon", "register")
	m.SetDefinitions("Weapon", 2)
	m.RecordNotification("Weapon", "CreatedOrUpdated")
	m.RecordCallbackPanic("Weapon")
	m.RecordJournal("dropped")

	require.Equal(t, 2.0, testutil.ToFloat64(m.Mutations.WithLabelValues("Weapon", "register")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Definitions.WithLabelValues("Weapon")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("Weapon", "CreatedOrUpdated")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CallbackPanics.WithLabelValues("Weapon")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.JournalRecords.WithLabelValues("dropped")))

	m.ResetDefinitions()
	require.Equal(t, 0, testutil.CollectAndCount(m.Definitions))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.RecordMutation("Weapon", "remove")
		m.SetDefinitions("Weapon", 1)
		m.ResetDefinitions()
		m.SetSubscriptions("Weapon", 1)
		m.RecordNotification("Weapon", "Removed")
		m.RecordCallbackPanic("Weapon")
		m.RecordJournal("written")
		m.RecordAnnouncement("load")
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.RecordAnnouncement("load")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "defhelper_api_announcements_total"))
}
