package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// TokenSource supplies bearer tokens to the auth transport and performs
// the coalesced refresh when the backend rejects one. The session
// manager is the only implementation outside tests.
type TokenSource interface {
	// AccessToken returns the current access token, or "" when the
	// session is unauthenticated.
	AccessToken() string

	// Refresh exchanges the durable refresh token for a new access
	// token. Concurrent callers share a single upstream call and its
	// outcome. A failure is fatal for the session: the implementation
	// logs out before returning the error.
	Refresh(ctx context.Context) (string, error)

	// Logout tears the session down. Called when a replayed request is
	// rejected again, at which point a newer token cannot help.
	Logout()
}

// authTransport decorates a RoundTripper with bearer injection and a
// single refresh-and-retry on authorization failures.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

// NewAuthTransport wraps base so that every request carries
// Authorization and X-Request-Id headers, and a 401 response triggers
// exactly one token refresh followed by one replay of the original
// request. A second 401 forces logout and the response is returned
// as-is.
func NewAuthTransport(base http.RoundTripper, tokens TokenSource) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, tokens: tokens}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.Header.Set("X-Request-Id", uuid.NewString())

	attached := false
	if out.Header.Get("Authorization") == "" {
		if tok := t.tokens.AccessToken(); tok != "" {
			out.Header.Set("Authorization", "Bearer "+tok)
			attached = true
		}
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	// Only retry when we attached the token ourselves; a caller-set
	// Authorization header (the refresh call itself) must not loop.
	if resp.StatusCode != http.StatusUnauthorized || !attached {
		return resp, nil
	}

	newToken, refreshErr := t.tokens.Refresh(req.Context())
	if refreshErr != nil {
		// Refresh already forced logout; surface the original 401.
		return resp, nil
	}

	resp.Body.Close()

	retry := req.Clone(req.Context())
	retry.Header.Set("X-Request-Id", uuid.NewString())
	retry.Header.Set("Authorization", "Bearer "+newToken)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}

	retryResp, err := t.base.RoundTrip(retry)
	if err != nil {
		return nil, err
	}

	if retryResp.StatusCode == http.StatusUnauthorized {
		// A fresh token was rejected; the session is not salvageable.
		t.tokens.Logout()
	}

	return retryResp, nil
}
