package api

import (
	"context"
	"net/http"

	"github.com/geia-vip/pet-manager-console/internal/errors"
)

// AuthService talks to the authentication endpoints. It is built on an
// unauthenticated client: login needs no token and refresh carries the
// refresh token explicitly, so neither may go through the auth
// transport's injection-and-retry path.
type AuthService struct {
	client *Client
}

// NewAuthService creates an AuthService on the given client.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for a token pair.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (TokenPair, error) {
	var pair TokenPair
	err := s.client.doJSON(ctx, http.MethodPost, "/autenticacao/login", nil, creds, &pair)
	if err != nil {
		if consoleErr, ok := err.(*errors.ConsoleError); ok && consoleErr.Code == errors.ErrCodeAPIUnauthorized {
			return TokenPair{}, errors.NewCredentialsError()
		}
		return TokenPair{}, err
	}
	return pair, nil
}

// Refresh exchanges a refresh token for a new token pair. The refresh
// token travels in the Authorization header, per the API contract.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.client.baseURL+"/autenticacao/refresh", nil)
	if err != nil {
		return TokenPair{}, errors.Wrap(errors.ErrCodeAPIRequest, "create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	httpResp, err := s.client.httpClient.Do(req)
	if err != nil {
		return TokenPair{}, errors.Wrap(errors.ErrCodeAPIRequest, "PUT /autenticacao/refresh", err)
	}

	var pair TokenPair
	if err := parseResponse(httpResp, &pair); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}
