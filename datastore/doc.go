/*
Package datastore defines the storage interface behind the change journal.

	type JournalStore interface {
	    Put(ctx context.Context, record models.JournalRecord) error
	    Query(ctx context.Context, params *models.QueryParams) ([]models.JournalRecord, error)
	}

Implementations:
  - ddb: DynamoDB implementation using a single table and macro-expanded keys
  - mock: In-memory implementation for testing

The journal only records that definitions changed. Definition payloads live
in the in-process registry and are never written to a JournalStore.
*/
package datastore
