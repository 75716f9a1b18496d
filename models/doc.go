/*
Package models defines the data structures shared by the change journal and its stores.

Key Types:

ChangeEvent:
A registry change as observed by a journal subscriber:

	ev := ChangeEvent{
	    Type:         "Weapon",
	    DefinitionID: "Laser",
	    Kind:         "Removed",
	    KindCode:     1,
	    Sequence:     42,
	}

JournalRecord:
The stored form of a ChangeEvent, with an event id and a strfmt timestamp.
Records describe changes only; payloads are never journaled.

JournalOptions:
Configuration for journal behavior:

	opts := []JournalOption{
	    WithBufferSize(512),
	    WithMaxRetries(5),
	    WithRetryBackoff(time.Second),
	}
*/
package models
