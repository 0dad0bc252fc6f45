// Package session owns the authenticated-session lifecycle: the
// observable session state, durable token storage, and the proactive
// refresh scheduling that keeps an access token valid until logout.
package session

import "sync"

// User identifies the logged-in operator.
type User struct {
	Username string
	Role     string
}

// Session is a snapshot of the authentication state. Values are
// immutable once published; mutations go through Store actions which
// publish a fresh snapshot.
type Session struct {
	User          *User
	AccessToken   string
	RefreshToken  string
	Authenticated bool
	Loading       bool
	Err           string
}

// Store holds the current Session and notifies subscribers on every
// mutation. All mutations are serialized; subscribers observe
// snapshots in the exact order they were produced.
type Store struct {
	mu      sync.Mutex
	emitMu  sync.Mutex
	current Session
	subs    map[int]func(Session)
	nextSub int
}

// NewStore creates a Store with the given initial session.
func NewStore(initial Session) *Store {
	initial.Authenticated = initial.AccessToken != ""
	return &Store{
		current: initial,
		subs:    make(map[int]func(Session)),
	}
}

// Current returns the latest snapshot.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn to receive every future snapshot. It returns
// a cancel function. fn runs on the mutating goroutine and must not
// block; it may read the store but must not mutate it.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// apply mutates the session under the state lock, then notifies
// subscribers under the emit lock. Taking emitMu before releasing mu
// guarantees snapshots are delivered in mutation order.
func (s *Store) apply(mutate func(*Session)) {
	s.mu.Lock()
	next := s.current
	mutate(&next)
	next.Authenticated = next.AccessToken != ""
	s.current = next

	fns := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}

	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

// SetLoading marks the session as busy and clears any prior error.
func (s *Store) SetLoading(loading bool) {
	s.apply(func(sess *Session) {
		sess.Loading = loading
		if loading {
			sess.Err = ""
		}
	})
}

// SetError records a user-facing error message and stops loading.
func (s *Store) SetError(msg string) {
	s.apply(func(sess *Session) {
		sess.Loading = false
		sess.Err = msg
	})
}

// SetLogin installs a fully authenticated session after a successful
// login.
func (s *Store) SetLogin(user User, accessToken, refreshToken string) {
	s.apply(func(sess *Session) {
		u := user
		sess.User = &u
		sess.AccessToken = accessToken
		sess.RefreshToken = refreshToken
		sess.Loading = false
		sess.Err = ""
	})
}

// SetTokens replaces the token pair after a refresh, leaving the user
// untouched.
func (s *Store) SetTokens(accessToken, refreshToken string) {
	s.apply(func(sess *Session) {
		sess.AccessToken = accessToken
		sess.RefreshToken = refreshToken
	})
}

// Logout resets the store to the unauthenticated default. It is
// idempotent: calling it on an already logged-out store publishes the
// same zero snapshot again.
func (s *Store) Logout() {
	s.apply(func(sess *Session) {
		*sess = Session{}
	})
}
