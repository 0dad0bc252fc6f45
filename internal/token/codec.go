// Package token decodes timing claims out of bearer tokens.
//
// Nothing here verifies a signature. The decoded expiry is advisory,
// used only to arm the refresh timer; the backend remains the sole
// authority on whether a token is accepted.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry returns the expiry of a JWT access token.
//
// The token is parsed without signature verification. The second return
// value is false for any malformed input: missing segments, invalid
// base64, a non-JSON payload, or a missing exp claim. Expiry never
// panics and never returns an error; callers that get ok=false fall
// back to a fixed refresh delay.
func Expiry(tokenString string) (time.Time, bool) {
	if tokenString == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return time.Time{}, false
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}

// RemainingValidity reports how long the token is still valid relative
// to now. ok is false when the expiry cannot be decoded.
func RemainingValidity(tokenString string, now time.Time) (time.Duration, bool) {
	exp, ok := Expiry(tokenString)
	if !ok {
		return 0, false
	}
	return exp.Sub(now), true
}
