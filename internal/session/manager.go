package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/geia-vip/pet-manager-console/internal/api"
	"github.com/geia-vip/pet-manager-console/internal/errors"
	"github.com/geia-vip/pet-manager-console/internal/log"
)

// ManagerConfig holds tuning knobs for the refresh scheduler. Zero
// values select the defaults; tests shrink them to keep timer paths
// fast.
type ManagerConfig struct {
	RefreshLead   time.Duration // refresh this long before expiry
	MinDelay      time.Duration // never schedule closer than this
	FallbackDelay time.Duration // cadence when expiry is undecodable
	RefreshCtx    time.Duration // budget for a timer-initiated refresh
}

// Manager is the authentication facade. It owns the Store, the
// Keystore, and the refresh timer; the CLI and TUI only ever talk to
// it, never to the pieces underneath.
//
// Manager implements api.TokenSource, so the auth transport shares the
// same coalesced refresh path as the proactive timer: any number of
// concurrent 401s and a timer fire together still produce exactly one
// network refresh.
type Manager struct {
	cfg    ManagerConfig
	store  *Store
	keys   *Keystore
	auth   *api.AuthService
	logger *log.Logger

	mu    sync.Mutex
	timer *time.Timer

	group singleflight.Group
}

// NewManager creates a Manager. logger may be nil.
func NewManager(auth *api.AuthService, store *Store, keys *Keystore, cfg ManagerConfig, logger *log.Logger) *Manager {
	if cfg.RefreshLead == 0 {
		cfg.RefreshLead = DefaultRefreshLead
	}
	if cfg.MinDelay == 0 {
		cfg.MinDelay = DefaultMinDelay
	}
	if cfg.FallbackDelay == 0 {
		cfg.FallbackDelay = DefaultFallbackDelay
	}
	if cfg.RefreshCtx == 0 {
		cfg.RefreshCtx = 30 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Manager{
		cfg:    cfg,
		store:  store,
		keys:   keys,
		auth:   auth,
		logger: logger,
	}
}

// Store exposes the observable session state.
func (m *Manager) Store() *Store {
	return m.store
}

// Bootstrap loads durable credentials into the store so a previous
// session survives a process restart. Call once at startup, before
// StartRefreshTimer.
func (m *Manager) Bootstrap() error {
	auth, err := m.keys.Load()
	if err != nil {
		return err
	}
	if auth.AccessToken == "" {
		return nil
	}

	role := roleFor(auth.Username)
	m.store.SetLogin(User{Username: auth.Username, Role: role}, auth.AccessToken, auth.RefreshToken)
	return nil
}

// Login authenticates and, on success, persists the tokens, updates
// the store, and arms the refresh timer. A rejected login leaves the
// session unauthenticated with a user-facing error in the store.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.store.SetLoading(true)

	pair, err := m.auth.Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		m.store.SetError("incorrect username or password")
		return err
	}

	if err := m.keys.Save(StoredAuth{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Username:     username,
	}); err != nil {
		m.logger.WithError(err).Warn("credentials not persisted; session will not survive restart")
	}

	m.store.SetLogin(User{Username: username, Role: roleFor(username)}, pair.AccessToken, pair.RefreshToken)

	m.mu.Lock()
	m.scheduleLocked(pair.AccessToken)
	m.mu.Unlock()

	m.logger.Info("logged in", "username", username)
	return nil
}

// AccessToken implements api.TokenSource.
func (m *Manager) AccessToken() string {
	if tok := m.store.Current().AccessToken; tok != "" {
		return tok
	}
	// Durable storage is authoritative when the store has not been
	// bootstrapped yet.
	auth, err := m.keys.Load()
	if err != nil {
		return ""
	}
	return auth.AccessToken
}

// Refresh exchanges the durable refresh token for a new pair. All
// concurrent callers coalesce onto one upstream request and share its
// outcome. Any failure is fatal: the session is logged out before the
// error is returned. Implements api.TokenSource.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	result, err, _ := m.group.Do("refresh", func() (any, error) {
		return m.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (m *Manager) doRefresh(ctx context.Context) (string, error) {
	refreshToken := m.store.Current().RefreshToken
	if refreshToken == "" {
		auth, err := m.keys.Load()
		if err == nil {
			refreshToken = auth.RefreshToken
		}
	}
	if refreshToken == "" {
		m.Logout()
		return "", errors.NewNoSessionError()
	}

	pair, err := m.auth.Refresh(ctx, refreshToken)
	if err != nil {
		m.logger.WithError(err).Warn("token refresh failed, closing session")
		m.Logout()
		return "", errors.NewRefreshFailedError(err)
	}

	// A backend that does not rotate refresh tokens answers without
	// one; keep the previous token in that case.
	if pair.RefreshToken == "" {
		pair.RefreshToken = refreshToken
	}

	username := m.store.Current().User
	stored := StoredAuth{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
	if username != nil {
		stored.Username = username.Username
	} else if auth, err := m.keys.Load(); err == nil {
		stored.Username = auth.Username
	}
	if err := m.keys.Save(stored); err != nil {
		m.logger.WithError(err).Warn("refreshed credentials not persisted")
	}

	m.store.SetTokens(pair.AccessToken, pair.RefreshToken)

	m.mu.Lock()
	m.scheduleLocked(pair.AccessToken)
	m.mu.Unlock()

	m.logger.Debug("token refreshed")
	return pair.AccessToken, nil
}

// timerFired runs when the proactive refresh timer elapses.
func (m *Manager) timerFired() {
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.RefreshCtx)
	defer cancel()

	if _, err := m.Refresh(ctx); err != nil {
		// Refresh already logged out; nothing to recover here.
		m.logger.WithError(err).Debug("scheduled refresh failed")
	}
}

// StartRefreshTimer arms scheduling from whatever token is available
// in memory or durable storage. Used at startup so an existing session
// continues to refresh itself. A missing token is a no-op.
func (m *Manager) StartRefreshTimer() {
	accessToken := m.AccessToken()
	if accessToken == "" {
		return
	}

	m.mu.Lock()
	m.scheduleLocked(accessToken)
	m.mu.Unlock()
}

// Logout disarms the scheduler, clears durable storage, and resets the
// store. Safe to call any number of times. Implements api.TokenSource.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.cancelTimerLocked()
	m.mu.Unlock()

	if err := m.keys.Clear(); err != nil {
		m.logger.WithError(err).Warn("stored credentials not removed")
	}
	m.store.Logout()
}

// roleFor mirrors the backend's fixed role assignment: the admin user
// administers, everyone else operates.
func roleFor(username string) string {
	if username == "admin" {
		return "ADMIN"
	}
	return "USUARIO"
}
