package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel values for the client-facing error taxonomy.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateSlug = errors.New("duplicate slug")
	ErrValidation    = errors.New("validation failed")
	ErrBadRequest    = errors.New("malformed request")
)

// Persistence-layer sentinels. Anything not classified below surfaces as a
// generic server error without leaking internal detail.
var (
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

type ApiErr struct {
	StatusCode int
	err        error
	Details    string // additional details about the error
	Field      string // field that caused the error (for validation errors)
	Cause      error  // the underlying cause of the error
}

// implements error interface. this allows us to pass an instance of ApiErr
// as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		if apiErr, ok := e.Cause.(*ApiErr); ok {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// NewNotFound reports that the referenced entity does not exist.
func NewNotFound(entity string, id any) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
		Details:    fmt.Sprintf("%s with id %v not found", entity, id),
	}
}

// NewDuplicateSlug reports a slug uniqueness conflict, naming the
// conflicting slug.
func NewDuplicateSlug(slug string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrDuplicateSlug,
		Details:    fmt.Sprintf("project with slug '%s' already exists", slug),
		Field:      "slug",
	}
}

// NewValidationFailed wraps a schema validation failure. The cause carries
// the per-field detail and is surfaced to the caller.
func NewValidationFailed(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrValidation,
		Details:    cause.Error(),
		Cause:      cause,
	}
}

// NewInvalidFieldError flags a single out-of-range or malformed field.
func NewInvalidFieldError(field, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrValidation,
		Details:    fmt.Sprintf("invalid field %s: %s", field, reason),
		Field:      field,
	}
}

func NewBadRequestError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrBadRequest,
		Details:    message,
	}
}

// NewDatabaseError classifies a persistence failure. Unique-constraint
// violations on the slug index are the storage-level guard against
// concurrent inserts and translate to the duplicate-slug error.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("failed to %s %s", operation, entity)

	if cause != nil {
		errStr := cause.Error()
		switch {
		case strings.Contains(errStr, "duplicate key"),
			strings.Contains(errStr, "duplicated key"),
			strings.Contains(errStr, "UNIQUE constraint"):
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        ErrDuplicateSlug,
				Details:    fmt.Sprintf("%s already exists", entity),
				Field:      "slug",
				Cause:      cause,
			}
		case strings.Contains(errStr, "record not found"):
			return &ApiErr{
				StatusCode: http.StatusNotFound,
				err:        fmt.Errorf("%s %w", entity, ErrNotFound),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "connection"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrDatabaseConnection,
				Details:    "unable to reach database",
				Cause:      cause,
			}
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateSlug(err error) bool {
	return errors.Is(err, ErrDuplicateSlug)
}

func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValidation)
}
