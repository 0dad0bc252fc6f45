package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/geia-vip/pet-manager-console/internal/errors"
)

const authFileName = "auth.json"

// StoredAuth is the durable credential record. It is the terminal
// equivalent of the browser's two localStorage entries, kept in one
// file so a write is atomic.
type StoredAuth struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
}

// Keystore persists tokens across console invocations. Only the
// session manager writes to it, which keeps concurrent mutations from
// tearing the file.
type Keystore struct {
	dir string
}

// NewKeystore creates a Keystore rooted at dir.
func NewKeystore(dir string) *Keystore {
	return &Keystore{dir: dir}
}

// Path returns the backing file location.
func (k *Keystore) Path() string {
	return filepath.Join(k.dir, authFileName)
}

// Load reads the stored credentials. A missing file is a normal
// logged-out state, not an error.
func (k *Keystore) Load() (StoredAuth, error) {
	data, err := os.ReadFile(k.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return StoredAuth{}, nil
		}
		return StoredAuth{}, errors.Wrap(errors.ErrCodeFileReadFailed, "read "+k.Path(), err)
	}

	var auth StoredAuth
	if err := json.Unmarshal(data, &auth); err != nil {
		return StoredAuth{}, errors.Wrap(errors.ErrCodeFileReadFailed, "parse "+k.Path(), err)
	}
	return auth, nil
}

// Save writes the credentials with owner-only permissions.
func (k *Keystore) Save(auth StoredAuth) error {
	if err := os.MkdirAll(k.dir, 0700); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "create "+k.dir, err)
	}

	data, err := json.MarshalIndent(auth, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "encode credentials", err)
	}

	if err := os.WriteFile(k.Path(), data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write "+k.Path(), err)
	}
	return nil
}

// Clear removes the stored credentials. Clearing an already empty
// keystore succeeds.
func (k *Keystore) Clear() error {
	err := os.Remove(k.Path())
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "remove "+k.Path(), err)
	}
	return nil
}
