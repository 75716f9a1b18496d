/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package models

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// ChangeEvent is a registry change captured by the journal.
type ChangeEvent struct {
	// Type is the stable name of the definition type.
	Type string
	// Origin is the origin of the canonical type key.
	Origin string
	// DefinitionID is the id that changed.
	DefinitionID string
	// Kind is the change kind name ("CreatedOrUpdated", "Removed", "DelegatesUpdated").
	Kind string
	// KindCode is the numeric change kind exchanged with peer modules.
	KindCode int
	// PayloadSize is the size of the stored payload after the change, 0 when absent.
	PayloadSize int
	// Sequence orders events within one journal (1-based).
	Sequence int64
	// At is when the journal observed the change.
	At time.Time
}

// JournalRecord is the stored form of a ChangeEvent.
type JournalRecord struct {
	EventID      string          `json:"eventId"`
	Type         string          `json:"type"`
	Origin       string          `json:"origin,omitempty"`
	DefinitionID string          `json:"definitionId"`
	Kind         string          `json:"kind"`
	KindCode     int             `json:"kindCode"`
	PayloadSize  int             `json:"payloadSize"`
	Sequence     int64           `json:"sequence"`
	RecordedAt   strfmt.DateTime `json:"recordedAt"`
}

// NewJournalRecord converts a ChangeEvent into a record with the given event id.
func NewJournalRecord(eventID string, ev ChangeEvent) JournalRecord {
	return JournalRecord{
		EventID:      eventID,
		Type:         ev.Type,
		Origin:       ev.Origin,
		DefinitionID: ev.DefinitionID,
		Kind:         ev.Kind,
		KindCode:     ev.KindCode,
		PayloadSize:  ev.PayloadSize,
		Sequence:     ev.Sequence,
		RecordedAt:   strfmt.DateTime(ev.At),
	}
}

// QueryParams selects journal records of one definition type.
type QueryParams struct {
	// Type is the definition type name to query.
	Type string
	// Limit caps the number of records returned; 0 means no limit.
	Limit int32
	// Newest returns records in descending sequence order when true.
	Newest bool
}
