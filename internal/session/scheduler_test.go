package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenExpiringAt(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestRefreshDelay(t *testing.T) {
	now := time.Now()
	lead := time.Minute
	min := 5 * time.Second
	fallback := 4 * time.Minute

	t.Run("refreshes one lead before expiry", func(t *testing.T) {
		tok := tokenExpiringAt(t, now.Add(5*time.Minute))

		delay := refreshDelay(tok, now, lead, min, fallback)
		assert.InDelta(t, (4 * time.Minute).Seconds(), delay.Seconds(), 1.5)
	})

	t.Run("clamps to the minimum near expiry", func(t *testing.T) {
		tok := tokenExpiringAt(t, now.Add(30*time.Second))

		delay := refreshDelay(tok, now, lead, min, fallback)
		assert.Equal(t, min, delay)
	})

	t.Run("clamps to the minimum past expiry", func(t *testing.T) {
		tok := tokenExpiringAt(t, now.Add(-time.Hour))

		delay := refreshDelay(tok, now, lead, min, fallback)
		assert.Equal(t, min, delay)
	})

	t.Run("undecodable expiry falls back to the fixed cadence", func(t *testing.T) {
		for _, tok := range []string{"", "garbage", "a.b.c"} {
			delay := refreshDelay(tok, now, lead, min, fallback)
			assert.Equal(t, fallback, delay)
		}
	})

	t.Run("token without exp claim falls back", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "admin"})
		s, err := tok.SignedString([]byte("test-key"))
		require.NoError(t, err)

		delay := refreshDelay(s, now, lead, min, fallback)
		assert.Equal(t, fallback, delay)
	})
}
