package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginErrorTaxonomy(t *testing.T) {
	invalidSig := NewInvalidSignatureError()
	assert.True(t, IsInvalidSignature(invalidSig))
	assert.Equal(t, http.StatusBadRequest, invalidSig.StatusCode)
	assert.Equal(t, "hash", invalidSig.Field)

	expiredLogin := NewExpiredLoginError()
	assert.Equal(t, http.StatusBadRequest, expiredLogin.StatusCode)
	assert.Equal(t, "auth_date", expiredLogin.Field)
}

func TestTokenErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        *ApiErr
		wantStatus int
	}{
		{"missing", NewMissingTokenError(), http.StatusUnauthorized},
		{"expired", NewExpiredTokenError(), http.StatusUnauthorized},
		{"invalid", NewInvalidTokenError(), http.StatusForbidden},
		{"no subject", NewNoSubjectError(), http.StatusUnauthorized},
		{"subject gone", NewSubjectNotFoundError(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
		})
	}

	assert.True(t, IsExpiredToken(NewExpiredTokenError()))
	assert.True(t, IsInvalidToken(NewInvalidTokenError()))
	assert.False(t, IsInvalidToken(NewExpiredTokenError()))
}
