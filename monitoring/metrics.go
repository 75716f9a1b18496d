/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the definition registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Registry metrics
	Mutations     *prometheus.CounterVec
	Definitions   *prometheus.GaugeVec
	Subscriptions *prometheus.GaugeVec

	// Notifier metrics
	Notifications  *prometheus.CounterVec
	CallbackPanics *prometheus.CounterVec

	// Journal metrics
	JournalRecords *prometheus.CounterVec

	// API metrics
	Announcements *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "defhelper_mutations_total",
				Help: "Total number of registry mutations",
			},
			[]string{"type", "operation"},
		),
		Definitions: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "defhelper_definitions",
				Help: "Number of definitions currently registered",
			},
			[]string{"type"},
		),
		Subscriptions: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "defhelper_subscriptions",
				Help: "Number of update subscriptions",
			},
			[]string{"type"},
		),
		Notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "defhelper_notifications_total",
				Help: "Total number of update callbacks invoked",
			},
			[]string{"type", "kind"},
		),
		CallbackPanics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "defhelper_callback_panics_total",
				Help: "Total number of update callbacks that panicked",
			},
			[]string{"type"},
		),
		JournalRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "defhelper_journal_records_total",
				Help: "Journal records by outcome",
			},
			[]string{"result"},
		),
		Announcements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "defhelper_api_announcements_total",
				Help: "Method table announcements sent to peers",
			},
			[]string{"reason"},
		),
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
