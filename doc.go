/*
Package definitionhelper provides an in-process registry where independent
components publish named, typed definitions and look them up by id.

A definition is an opaque payload registered under a TypeKey and an id.
Owners may attach a DelegateBundle of named callables to a definition, and
consumers may subscribe to per-type change notifications.

Key Features:
  - Type keys compared by stable name, so the same logical type arriving as
    different descriptor instances resolves to one canonical key
  - Overwrite-on-register semantics (re-registering an id replaces its payload)
  - Ordered, synchronous change notification with per-callback panic isolation
  - Structured logging (zap) and Prometheus metrics through functional options
  - A versioned named-method table for peer modules (see package api)

Basic Usage:

	reg := definitionhelper.New(definitionhelper.WithLogger(logger))
	defer reg.Close()

	weapon := definitionhelper.NewTypeKey("Weapon")
	sub := reg.RegisterOnUpdate(weapon, func(id string, kind definitionhelper.ChangeKind) {
	    log.Printf("%s changed: %s", id, kind)
	})
	defer reg.UnregisterOnUpdate(weapon, sub)

	reg.RegisterDefinition("Laser", weapon, []byte{1, 2, 3})
	payload, err := reg.GetDefinition("Laser", weapon)

Lookups of an unregistered definition fail with errors.ErrNotFound; attaching
delegates to a type that has no definitions fails with errors.ErrInvalidState.
Every other irregular call degrades to an empty result.

A Registry performs no locking and is meant to be driven from a single
goroutine at a time.
*/
package definitionhelper
