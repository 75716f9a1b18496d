/*
Package journal records registry changes to a datastore.JournalStore.

A Journal subscribes to definition types through Registry.RegisterOnUpdate and
turns each notification into a models.JournalRecord. Notifications are queued
without blocking the mutating caller; a single worker writes them in order and
retries failed writes. When the queue is full the event is dropped and counted.

The journal is an audit trail. It stores payload sizes, never payloads, and is
never replayed into a registry.

	j := journal.New(store, logger, models.WithBufferSize(512))
	j.Attach(reg, definitionhelper.NewTypeKey("Weapon"))
	...
	j.Detach()
	err := j.Close(ctx)
*/
package journal
