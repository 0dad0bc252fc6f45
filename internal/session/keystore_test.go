package session

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeystoreRoundTrip(t *testing.T) {
	k := NewKeystore(t.TempDir())

	// Loading before anything was saved is a normal logged-out state.
	auth, err := k.Load()
	require.NoError(t, err)
	assert.Equal(t, StoredAuth{}, auth)

	saved := StoredAuth{AccessToken: "a", RefreshToken: "r", Username: "admin"}
	require.NoError(t, k.Save(saved))

	loaded, err := k.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(k.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "tokens must be owner-readable only")
	}
}

func TestKeystoreClearIsIdempotent(t *testing.T) {
	k := NewKeystore(t.TempDir())
	require.NoError(t, k.Save(StoredAuth{AccessToken: "a"}))

	require.NoError(t, k.Clear())
	require.NoError(t, k.Clear())

	auth, err := k.Load()
	require.NoError(t, err)
	assert.Equal(t, StoredAuth{}, auth)
}

func TestKeystoreRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	k := NewKeystore(dir)
	require.NoError(t, os.WriteFile(k.Path(), []byte("{not json"), 0600))

	_, err := k.Load()
	assert.Error(t, err)
}
