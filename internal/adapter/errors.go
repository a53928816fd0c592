package adapter

import "errors"

// Sentinel errors returned by adapters. Transport details are wrapped, so
// match with [errors.Is].
var (
	// ErrTransient marks a retryable failure: the network is unreachable, the
	// remote timed out or answered 5xx/408/429, or Postgres reported a
	// connection or serialization failure. Affected rows stay pending.
	ErrTransient = errors.New("transient remote error")

	ErrUnauthorized = errors.New("client unauthorized")
	ErrForbidden    = errors.New("access forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")

	// ErrMalformedRow marks a remote row that fails validation. Such rows are
	// skipped with a warning and never abort the enclosing batch.
	ErrMalformedRow = errors.New("malformed remote row")

	// ErrNoAddress is returned by a geocoder that found nothing at the
	// requested coordinates.
	ErrNoAddress = errors.New("no address for coordinates")
)

// IsTransient reports whether err is worth retrying on the next sync cycle.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
