package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundspark/fundspark-backend/errs"
)

const testSecret = "test-secret-key"

func newTestManager(t *testing.T, lifetime time.Duration) TokenManager {
	t.Helper()
	m, err := NewTokenManager(testSecret, "HS256", lifetime)
	require.NoError(t, err)
	return m
}

func TestNewTokenManagerRejectsNonHMAC(t *testing.T) {
	for _, alg := range []string{"RS256", "ES256", "none", "bogus"} {
		_, err := NewTokenManager(testSecret, alg, time.Hour)
		assert.Error(t, err, "algorithm %s", alg)
	}
}

func TestNewTokenManagerAcceptsHMACFamily(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		_, err := NewTokenManager(testSecret, alg, time.Hour)
		assert.NoError(t, err, "algorithm %s", alg)
	}
}

func TestIssueAndSubjectRoundtrip(t *testing.T) {
	m := newTestManager(t, time.Hour)

	token, expiry, err := m.Issue(12345)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	userID, err := m.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), userID)
}

func TestSubjectExpiredToken(t *testing.T) {
	m := newTestManager(t, -time.Minute)

	token, _, err := m.Issue(1)
	require.NoError(t, err)

	_, err = m.Subject(token)
	require.Error(t, err)
	assert.True(t, errs.IsExpiredToken(err))

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestSubjectWrongSecret(t *testing.T) {
	m := newTestManager(t, time.Hour)
	other, err := NewTokenManager("a-different-secret", "HS256", time.Hour)
	require.NoError(t, err)

	token, _, err := m.Issue(1)
	require.NoError(t, err)

	_, err = other.Subject(token)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidToken(err))

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
}

func TestSubjectMalformedToken(t *testing.T) {
	m := newTestManager(t, time.Hour)

	_, err := m.Subject("not.a.token")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidToken(err))
}

func TestSubjectMissingUserID(t *testing.T) {
	m := newTestManager(t, time.Hour)

	// Token signed with the right key but carrying no user_id claim.
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Type: accessTokenType,
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = m.Subject(signed)
	require.Error(t, err)

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestSubjectRejectsForeignAlgorithm(t *testing.T) {
	m := newTestManager(t, time.Hour)

	// HS512 token against an HS256 manager, signed with the same secret.
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Type:   accessTokenType,
		UserID: "1",
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = m.Subject(signed)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidToken(err))
}

func TestSubjectNonNumericUserID(t *testing.T) {
	m := newTestManager(t, time.Hour)

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Type:   accessTokenType,
		UserID: "not-a-number",
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = m.Subject(signed)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidToken(err))
}
