package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestFromDBMapsNoRowsToNotFound(t *testing.T) {
	err := errs.FromDB("site", fmt.Errorf("scan: %w", pgx.ErrNoRows))

	var nf errs.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "site not found", err.Error())
	require.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestFromDBFormatsRowLevelSecurityDenials(t *testing.T) {
	err := errs.FromDB("page", &pgconn.PgError{Code: "42501", TableName: "pages", Message: "new row violates row-level security policy"})

	var perm errs.PermissionsError
	require.True(t, errors.As(err, &perm))
	require.Equal(t, "error in permissions: row-level security policy denied access to pages", err.Error())
}

func TestFromDBMapsConstraintViolations(t *testing.T) {
	err := errs.FromDB("domain", &pgconn.PgError{Code: "23505", ConstraintName: "domains_hostname_key"})
	var conflict errs.ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Contains(t, err.Error(), "domains_hostname_key")

	err = errs.FromDB("profile", &pgconn.PgError{Code: "23503", ConstraintName: "business_profiles_logo_asset_id_fkey"})
	var invalid errs.ValidationError
	require.True(t, errors.As(err, &invalid))
}

func TestFromDBWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection reset")
	err := errs.FromDB("site", cause)

	require.True(t, errors.Is(err, cause))
	require.Nil(t, errs.FromDB("site", nil))
}

func TestInvalidLiftsPageDataIssues(t *testing.T) {
	_, parseErr := pagedata.Parse([]byte(`{"sections":[{"type":"unknown"}]}`))
	require.Error(t, parseErr)

	err := errs.Invalid(parseErr)
	var invalid errs.ValidationError
	require.True(t, errors.As(err, &invalid))
	require.Equal(t, []string{`sections[0].type: unknown section type "unknown"`}, invalid.Details)
}
