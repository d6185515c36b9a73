package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDerivedKeyInvalid means a supplied address or bump does not match
	// recomputation from the canonical seeds. Never retried; the caller must
	// correct its input.
	ErrDerivedKeyInvalid = errors.New("derived key invalid")

	// ErrAuthorityMismatch means the caller is not the auction house's
	// configured authority for an authority-gated operation.
	ErrAuthorityMismatch = errors.New("authority mismatch")

	// ErrDuplicateEntity means creation was attempted where an entity already
	// exists at the derived address.
	ErrDuplicateEntity = errors.New("entity already exists at derived address")

	ErrNotFound = errors.New("entity not found")

	// ErrSupplyExceedsAvailable means a requested max supply is above what the
	// underlying resource edition has left.
	ErrSupplyExceedsAvailable = errors.New("supply exceeds available")

	// ErrSupplyNotProvided means the resource edition is capped but the caller
	// gave no max supply.
	ErrSupplyNotProvided = errors.New("max supply not provided")

	ErrStringTooLong = errors.New("string field exceeds limit")
)

// DelegatedCallError wraps a rejection from the external auction engine. The
// engine's reason is propagated verbatim; no local state was mutated when one
// of these is returned.
type DelegatedCallError struct {
	Call string
	Err  error
}

func (e *DelegatedCallError) Error() string {
	return fmt.Sprintf("delegated %s call rejected: %v", e.Call, e.Err)
}

func (e *DelegatedCallError) Unwrap() error {
	return e.Err
}
