package errs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
)

type PermissionsError struct {
	Err error
}

func (t PermissionsError) Error() string {
	return fmt.Sprintf("error in permissions: %v", t.Err)
}

func (t PermissionsError) Unwrap() error { return t.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (t NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", t.Resource)
}

func (t NotFoundError) Unwrap() error { return t.Err }

type ConflictError struct {
	Err error
}

func (t ConflictError) Error() string {
	return fmt.Sprintf("conflict: %v", t.Err)
}

func (t ConflictError) Unwrap() error { return t.Err }

// ValidationError is returned when request input is rejected. Details holds
// one "field: message" entry per problem.
type ValidationError struct {
	Err     error
	Details []string
}

func (t ValidationError) Error() string {
	if len(t.Details) > 0 && t.Err == nil {
		return "validation failed: " + strings.Join(t.Details, "; ")
	}
	return fmt.Sprintf("validation failed: %v", t.Err)
}

func (t ValidationError) Unwrap() error { return t.Err }

// Invalid wraps err as a ValidationError, lifting per-field issues out of a
// page data validation error.
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	var verr *pagedata.ValidationError
	if errors.As(err, &verr) {
		return ValidationError{Err: err, Details: verr.Details()}
	}
	return ValidationError{Err: err}
}

func Invalidf(format string, args ...any) error {
	return ValidationError{Err: fmt.Errorf(format, args...)}
}

// UpstreamError is a failure of a third-party service we proxy to.
type UpstreamError struct {
	Service string
	Err     error
	Details []string
}

func (t UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", t.Service, t.Err)
}

func (t UpstreamError) Unwrap() error { return t.Err }

type RetryableError struct {
	Err error
}

func (t RetryableError) Error() string {
	return fmt.Sprintf("retryable error: %v", t.Err)
}

func (t RetryableError) Unwrap() error { return t.Err }
