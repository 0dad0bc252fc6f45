package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geia-vip/pet-manager-console/internal/errors"
)

func TestParseResponseErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode errors.ErrorCode
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"token expirado"}`, errors.ErrCodeAPIUnauthorized, "token expirado"},
		{"forbidden", http.StatusForbidden, ``, errors.ErrCodeAPIUnauthorized, "Forbidden"},
		{"not found", http.StatusNotFound, `{"error":"pet não encontrado"}`, errors.ErrCodeAPINotFound, "pet não encontrado"},
		{"server error plain body", http.StatusInternalServerError, `boom`, errors.ErrCodeAPIStatus, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			err := client.doJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
			require.Error(t, err)

			consoleErr, ok := err.(*errors.ConsoleError)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, consoleErr.Code)
			assert.Contains(t, consoleErr.Message, tt.wantMsg)
		})
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client := NewClient("https://example.test/v1/")
	assert.Equal(t, "https://example.test/v1", client.BaseURL())
}

func TestDoJSONDecodesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"id":7,"nome":"Mia","raca":"siamês","idade":2}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var pet Pet
	require.NoError(t, client.doJSON(context.Background(), http.MethodGet, "/pets/7", nil, nil, &pet))
	assert.Equal(t, Pet{ID: 7, Name: "Mia", Breed: "siamês", Age: 2}, pet)
}

func TestDoJSONRejectsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{{{`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var pet Pet
	err := client.doJSON(context.Background(), http.MethodGet, "/pets/1", nil, nil, &pet)
	require.Error(t, err)

	consoleErr, ok := err.(*errors.ConsoleError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeAPIDecode, consoleErr.Code)
}
