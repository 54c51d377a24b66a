package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Request & input-validation errors
var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrInvalidDocument  = errors.New("invalid document structure")
	ErrNotOwner         = errors.New("resource owned by another user")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrOversizedMedia   = errors.New("media exceeds size limit")
)

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMalformedPayload,
		Details:    fmt.Sprintf("Malformed %s payload", payloadType),
		Cause:      cause,
		Field:      "payload",
	}
}

// NewInvalidDocumentError covers a block sequence that violates the document
// structure rules. reason names the violated rule.
func NewInvalidDocumentError(reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidDocument,
		Details:    reason,
		Field:      "blocks",
	}
}

func NewNotOwnerError(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrNotOwner,
		Details:    fmt.Sprintf("%s is not yours", entity),
	}
}

func NewUnsupportedMediaError(contentType string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrUnsupportedMedia,
		Details:    fmt.Sprintf("Unsupported media type: %s", contentType),
		Field:      "file",
	}
}

func NewOversizedMediaError(maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrOversizedMedia,
		Details:    fmt.Sprintf("File exceeds maximum allowed size of %d bytes", maxSize),
		Field:      "file",
	}
}

func IsInvalidDocument(err error) bool {
	return errors.Is(err, ErrInvalidDocument)
}

func IsNotOwner(err error) bool {
	return errors.Is(err, ErrNotOwner)
}

func IsUnsupportedMedia(err error) bool {
	return errors.Is(err, ErrUnsupportedMedia)
}

func IsOversizedMedia(err error) bool {
	return errors.Is(err, ErrOversizedMedia)
}
