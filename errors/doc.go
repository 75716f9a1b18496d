/*
Package errors provides semantic error types for DefinitionHelper.

The package defines the failure scenarios of the definition registry and its
API boundary as sentinels that can be checked with the standard errors.Is()
function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound            = errors.New("definition not found")
	    ErrInvalidState        = errors.New("invalid state")
	    ErrInvalidInput        = errors.New("invalid input")
	    ErrProviderUnavailable = errors.New("definition provider unavailable")
	    ErrVersionMismatch     = errors.New("api version mismatch")
	)

Only two of them are raised by the registry itself: a lookup of a definition
that was never registered fails with ErrNotFound, and registering delegates for
a type that has no definitions yet fails with ErrInvalidState. Every other
irregular lookup degrades to an empty result.

Usage:

	payload, err := reg.GetDefinition("Laser", weaponKey)
	if err != nil {
	    if errors.IsNotFound(err) {
	        return nil, fmt.Errorf("weapon %s does not exist", "Laser")
	    }
	    return nil, err
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
