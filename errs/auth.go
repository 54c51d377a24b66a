package errs

import (
	"errors"
	"net/http"
)

// Login & session-token errors
var (
	ErrInvalidSignature = errors.New("invalid login signature")
	ErrExpiredLogin     = errors.New("login expired")
	ErrMissingToken     = errors.New("missing access token")
	ErrExpiredToken     = errors.New("expired access token")
	ErrInvalidToken     = errors.New("invalid access token")
	ErrNoSubject        = errors.New("token carries no subject")
	ErrSubjectNotFound  = errors.New("token subject not found")
)

// NewInvalidSignatureError covers a login payload whose HMAC does not match.
func NewInvalidSignatureError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidSignature,
		Details:    "Invalid hash",
		Field:      "hash",
	}
}

// NewExpiredLoginError covers a login payload whose auth_date is too old.
func NewExpiredLoginError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrExpiredLogin,
		Details:    "Login expired",
		Field:      "auth_date",
	}
}

func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingToken,
		Details:    "Authentication is required",
		Field:      "authorization",
	}
}

func NewExpiredTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrExpiredToken,
		Details:    "Token expired",
		Field:      "authorization",
	}
}

func NewInvalidTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrInvalidToken,
		Details:    "Invalid token",
		Field:      "authorization",
	}
}

func NewNoSubjectError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrNoSubject,
		Details:    "Authentication is required",
		Field:      "authorization",
	}
}

func NewSubjectNotFoundError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrSubjectNotFound,
		Details:    "User not found",
	}
}

func IsInvalidSignature(err error) bool {
	return errors.Is(err, ErrInvalidSignature)
}

func IsExpiredToken(err error) bool {
	return errors.Is(err, ErrExpiredToken)
}

func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}
