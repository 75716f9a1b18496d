/*
Package ddb provides a DynamoDB implementation of datastore.JournalStore.

Records live in a single table. Keys are produced by macro expansion over the
record fields:

	indexMap := map[string]string{
	    "PK": "TYPE#{Type}",       // Becomes "TYPE#ShipDef"
	    "SK": "EVT#{SequenceKey}", // Zero-padded sequence number
	}

Every item carries EntityType "JournalRecord". Put and Query retry throttling
and internal server errors with a linear backoff.

	client, err := ddb.NewClient(ctx, ddb.ClientConfig{Region: "us-east-1"})
	store := ddb.NewJournalStore(client, "definition-journal", 3, 200*time.Millisecond)
*/
package ddb
