package session

import (
	"time"

	"github.com/geia-vip/pet-manager-console/internal/token"
)

// Refresh timing. The timer fires RefreshLead before the decoded
// expiry, clamped to MinDelay so a token already at the edge still
// gets one orderly refresh instead of a hot loop. Tokens without a
// decodable expiry refresh on the fixed FallbackDelay cadence.
const (
	DefaultRefreshLead   = time.Minute
	DefaultMinDelay      = 5 * time.Second
	DefaultFallbackDelay = 4 * time.Minute
)

// refreshDelay computes how long to wait before refreshing the given
// access token. The decode is advisory only; a malformed token is not
// an error here, it just selects the fallback cadence.
func refreshDelay(accessToken string, now time.Time, lead, min, fallback time.Duration) time.Duration {
	exp, ok := token.Expiry(accessToken)
	if !ok {
		return fallback
	}

	delay := exp.Sub(now) - lead
	if delay < min {
		return min
	}
	return delay
}

// schedule arms the refresh timer for the given access token,
// cancelling any pending timer first so at most one exists.
// Callers must hold m.mu.
func (m *Manager) scheduleLocked(accessToken string) {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}

	delay := refreshDelay(accessToken, time.Now(), m.cfg.RefreshLead, m.cfg.MinDelay, m.cfg.FallbackDelay)
	m.logger.Debug("refresh scheduled", "delay", delay.String())

	m.timer = time.AfterFunc(delay, m.timerFired)
}

// cancelTimerLocked clears any pending refresh timer.
// Callers must hold m.mu.
func (m *Manager) cancelTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
