// Package auth issues and verifies the stateless session tokens used by
// the API. A token is valid iff its signature checks out against the
// server secret and it has not expired; there is no revocation list, so a
// leaked token stays usable until it expires naturally.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// unexpected algorithm, malformed payload, missing user id, or expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated user identifier alongside the standard
// registered claims (exp, iat).
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// IssueToken signs an HS256 session token for the given user, valid for ttl.
func IssueToken(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates a session token and returns the embedded
// user identifier. Any failure is reported as ErrInvalidToken.
func VerifyToken(tokenString, secret string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
