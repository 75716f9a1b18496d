/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package monitoring

// RecordMutation counts a register, delegates or remove operation.
func (m *Metrics) RecordMutation(typeName, operation string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(typeName, operation).Inc()
}

// SetDefinitions sets the current definition count for a type.
func (m *Metrics) SetDefinitions(typeName string, n int) {
	if m == nil {
		return
	}
	m.Definitions.WithLabelValues(typeName).Set(float64(n))
}

// ResetDefinitions zeroes every definition gauge.
func (m *Metrics) ResetDefinitions() {
	if m == nil {
		return
	}
	m.Definitions.Reset()
}

// SetSubscriptions sets the current subscription count for a type.
func (m *Metrics) SetSubscriptions(typeName string, n int) {
	if m == nil {
		return
	}
	m.Subscriptions.WithLabelValues(typeName).Set(float64(n))
}

// RecordNotification counts one callback invocation.
func (m *Metrics) RecordNotification(typeName, kind string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(typeName, kind).Inc()
}

// RecordCallbackPanic counts one recovered callback panic.
func (m *Metrics) RecordCallbackPanic(typeName string) {
	if m == nil {
		return
	}
	m.CallbackPanics.WithLabelValues(typeName).Inc()
}

// RecordJournal counts a journal outcome ("written", "failed", "dropped").
func (m *Metrics) RecordJournal(result string) {
	if m == nil {
		return
	}
	m.JournalRecords.WithLabelValues(result).Inc()
}

// RecordAnnouncement counts a method table announcement ("load", "request", "unload").
func (m *Metrics) RecordAnnouncement(reason string) {
	if m == nil {
		return
	}
	m.Announcements.WithLabelValues(reason).Inc()
}
