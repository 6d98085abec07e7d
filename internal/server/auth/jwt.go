// Package auth issues and verifies the bearer tokens handed out on register
// and login, and hashes account passwords.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is the fixed lifetime of an issued token.
const TokenValidity = 7 * 24 * time.Hour

// Claims holds the standard registered claims plus the owner id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenService signs tokens with an HS256 secret. The clock is injectable so
// expiry can be exercised in tests.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService returns a TokenService using the wall clock.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy of s that reads time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	return &TokenService{secret: s.secret, now: now}
}

// Issue returns a signed token for userID that expires TokenValidity from now.
func (s *TokenService) Issue(userID string) (string, error) {
	issuedAt := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenValidity)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature, algorithm and expiry and returns the owner id.
// The result is common.ErrTokenExpired for expired tokens and
// common.ErrInvalidToken for anything else.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
