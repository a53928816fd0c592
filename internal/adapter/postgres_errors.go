package adapter

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapPostgresError wraps err with the matching sentinel. Connection,
// rollback and operator-intervention failures are transient; constraint
// violations are conflicts.
func mapPostgresError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w: %w", op, classifyPgError(pgErr), err)
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return mapTransportError(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// classifyPgError maps a PostgreSQL error code to a sentinel.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func classifyPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	// Class 08 — connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return ErrTransient

	// Class 40 — transaction rollback
	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected:
		return ErrTransient

	// Class 57 — operator intervention
	case pgerrcode.CannotConnectNow,
		pgerrcode.AdminShutdown:
		return ErrTransient

	// Class 23 — integrity constraint violations
	case pgerrcode.UniqueViolation,
		pgerrcode.ForeignKeyViolation,
		pgerrcode.RestrictViolation:
		return ErrConflict

	case pgerrcode.NotNullViolation,
		pgerrcode.CheckViolation,
		pgerrcode.InvalidTextRepresentation:
		return ErrBadRequest

	// Class 42 — access rule violations
	case pgerrcode.InsufficientPrivilege:
		return ErrForbidden
	case pgerrcode.UndefinedTable:
		return ErrNotFound
	}

	if pgerrcode.IsConnectionException(pgErr.Code) || pgerrcode.IsTransactionRollback(pgErr.Code) {
		return ErrTransient
	}
	return ErrBadRequest
}
