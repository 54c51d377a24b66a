package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fundspark/fundspark-backend/errs"
)

const accessTokenType = "access_token"

// Claims are the access-token claims: the registered set plus the token type
// marker and the subject user id as a decimal string.
type Claims struct {
	jwt.RegisteredClaims
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}

// TokenManager issues and validates signed session tokens. It is immutable
// after construction and safe for concurrent use.
type TokenManager struct {
	secret   []byte
	method   jwt.SigningMethod
	lifetime time.Duration
}

// NewTokenManager builds a manager for the given HMAC signing algorithm
// (HS256, HS384 or HS512). Any other algorithm name is rejected.
func NewTokenManager(secret, algorithm string, lifetime time.Duration) (TokenManager, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return TokenManager{}, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return TokenManager{
		secret:   []byte(secret),
		method:   method,
		lifetime: lifetime,
	}, nil
}

// Issue creates a token for userID and returns it with its expiry instant.
func (m TokenManager) Issue(userID int64) (string, time.Time, error) {
	now := time.Now().UTC()
	expiry := now.Add(m.lifetime)

	token := jwt.NewWithClaims(m.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
		Type:   accessTokenType,
		UserID: strconv.FormatInt(userID, 10),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiry, nil
}

// Subject verifies tokenString and extracts the user id it identifies.
// Expiry and invalidity map to distinct credential errors so the transport
// layer can answer 401 and 403 respectively.
func (m TokenManager) Subject(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{m.method.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, errs.NewExpiredTokenError()
		}
		return 0, errs.NewInvalidTokenError()
	}
	if !token.Valid {
		return 0, errs.NewInvalidTokenError()
	}

	if claims.UserID == "" {
		return 0, errs.NewNoSubjectError()
	}
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return 0, errs.NewInvalidTokenError()
	}
	return userID, nil
}
