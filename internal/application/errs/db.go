package errs

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeInsufficientPrivilege = "42501"
	codeUniqueViolation       = "23505"
	codeForeignKeyViolation   = "23503"
	codeCheckViolation        = "23514"
	codeInvalidTextRepr       = "22P02"
)

// FromDB turns a database error into one of the typed errors above. Row level
// security rejections surface as insufficient_privilege and are reported as
// permission errors naming the table.
func FromDB(resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFoundError{Resource: resource, Err: err}
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("err accessing %s, %w", resource, err)
	}
	switch pgErr.Code {
	case codeInsufficientPrivilege:
		table := pgErr.TableName
		if table == "" {
			table = resource
		}
		return PermissionsError{Err: fmt.Errorf("row-level security policy denied access to %s", table)}
	case codeUniqueViolation:
		return ConflictError{Err: fmt.Errorf("%s already exists (%s)", resource, pgErr.ConstraintName)}
	case codeForeignKeyViolation:
		return ValidationError{Err: fmt.Errorf("%s references a missing record (%s)", resource, pgErr.ConstraintName)}
	case codeCheckViolation, codeInvalidTextRepr:
		return ValidationError{Err: fmt.Errorf("invalid %s: %s", resource, pgErr.Message)}
	}
	return fmt.Errorf("err accessing %s, %w", resource, err)
}
