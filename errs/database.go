package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound                  = errors.New("not found")
	ErrDatabaseQuery             = errors.New("database query failed")
	ErrDatabaseConnection        = errors.New("database connection failed")
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrBackendUnavailable        = errors.New("storage backend unavailable")
	ErrAlreadyShared             = errors.New("already shared")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewAlreadySharedError covers a second share attempt on the same project by
// the same user. Distinct from a silent no-op by contract.
func NewAlreadySharedError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotAcceptable,
		err:        ErrAlreadyShared,
		Details:    "Already shared",
	}
}

// NewBackendUnavailableError covers operational storage failures on
// engagement mutations; these surface as 503 rather than a generic 500.
func NewBackendUnavailableError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrBackendUnavailable,
		Details:    fmt.Sprintf("Failed to %s", operation),
		Cause:      cause,
	}
}

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	// Check for common database errors and provide more specific messages
	if cause != nil {
		errStr := cause.Error()
		switch {
		case IsUniqueViolation(cause):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        fmt.Errorf("%s already exists", entity),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "foreign key constraint"):
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        fmt.Errorf("invalid reference in %s", entity),
				Details:    "The referenced resource does not exist or cannot be linked",
				Cause:      cause,
			}
		case strings.Contains(errStr, "not found"):
			return &ApiErr{
				StatusCode: http.StatusNotFound,
				err:        fmt.Errorf("%s not found", entity),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "connection"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrDatabaseConnection,
				Details:    "Unable to connect to database",
				Cause:      cause,
			}
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}

// IsUniqueViolation reports whether err stems from a unique-constraint
// violation. Matched textually because the error may arrive either from the
// postgres driver (SQLSTATE 23505), already stringified by GORM, or in
// sqlite's wording when running against the test driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUniqueConstraintViolation) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "23505") ||
		strings.Contains(errStr, "UNIQUE constraint failed")
}

func IsAlreadyShared(err error) bool {
	return errors.Is(err, ErrAlreadyShared)
}

func IsBackendUnavailable(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}
