package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when an operation targets a catalog
	// record that does not exist in the local mirror.
	ErrRecordNotFound = errors.New("catalog record was not found")

	// ErrRecordReferenced is returned when deleting a catalog record that is
	// still referenced by a favorite row.
	ErrRecordReferenced = errors.New("catalog record is referenced by a favorite")

	// ErrFavoriteNotFound is returned when removing a favorite that was never
	// added.
	ErrFavoriteNotFound = errors.New("favorite was not found")

	// ErrEntryNotFound is returned when a cache key has no entry.
	ErrEntryNotFound = errors.New("cache entry was not found")

	// ErrSerialization is returned when a value cannot be encoded for the
	// key/value cache. Callers skip the affected item.
	ErrSerialization = errors.New("cache entry serialization failed")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared.
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
