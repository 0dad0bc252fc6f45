package exitcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"auth code", errors.New("[AUTH-003] not logged in"), AuthError},
		{"unauthorized", errors.New("request failed with status 401: unauthorized"), AuthError},
		{"connection refused", errors.New("dial tcp: connection refused"), NetworkError},
		{"timeout", errors.New("context deadline exceeded"), NetworkError},
		{"unknown flag", errors.New("unknown flag: --bogus"), UsageError},
		{"anything else", errors.New("boom"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}
