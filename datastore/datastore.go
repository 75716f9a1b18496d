/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/StarCoreSE/DefinitionHelper/models"
)

// JournalStore persists change-journal records.
type JournalStore interface {
	Put(ctx context.Context, record models.JournalRecord) error

	Query(ctx context.Context, params *models.QueryParams) ([]models.JournalRecord, error)
}
