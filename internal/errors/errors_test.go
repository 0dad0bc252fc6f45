package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeAPINotFound, "pet not found")
	assert.Equal(t, "[API-004] pet not found", err.Error())

	err = err.WithSuggestion("Check the id")
	assert.Contains(t, err.Error(), "Suggestions:")
	assert.Contains(t, err.Error(), "Check the id")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Wrap(ErrCodeAPIRequest, "GET /pets", cause)

	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, cause)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConsoleError
		wantCode ErrorCode
	}{
		{"credentials", NewCredentialsError(), ErrCodeAuthCredentials},
		{"no session", NewNoSessionError(), ErrCodeAuthNoSession},
		{"refresh failed", NewRefreshFailedError(stderrors.New("boom")), ErrCodeAuthRefreshFailed},
		{"config invalid", NewConfigInvalidError("api.timeout must be positive"), ErrCodeConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.NotEmpty(t, tt.err.Suggestions)
		})
	}
}
