// Package monitoring provides Prometheus metrics for DefinitionHelper.
//
// Collectors are registered against a caller-supplied prometheus.Registerer
// so that independent registries (and tests) never collide on the default
// global registry.
//
// Metrics:
//   - defhelper_mutations_total{type,operation}
//   - defhelper_definitions{type}
//   - defhelper_subscriptions{type}
//   - defhelper_notifications_total{type,kind}
//   - defhelper_callback_panics_total{type}
//   - defhelper_journal_records_total{result}
//   - defhelper_api_announcements_total{reason}
//
// Example Usage:
//
//	reg := prometheus.NewRegistry()
//	metrics := monitoring.NewMetrics(reg)
//	http.Handle("/metrics", monitoring.Handler(reg))
package monitoring
