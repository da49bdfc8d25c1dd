// Package credentials persists the rotating OAuth refresh token.
//
// The remote token endpoint invalidates the previous refresh token on every
// successful refresh, so the replacement must be written to durable storage
// before anything else happens. Losing it means the next run cannot
// authenticate at all.
package credentials

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
)

// Store manages the single persisted refresh token.
// Load returns ErrNoRefreshToken when no token has been stored yet.
type Store interface {
	Load() (string, error)
	Save(token string) error
}

var _ Store = (*FileStore)(nil)

// FileStore keeps the refresh token as the sole content of a file.
type FileStore struct {
	path string
}

// NewFileStore creates a Store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored refresh token.
func (fs *FileStore) Load() (string, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return "", apperrors.ErrNoRefreshToken
	}
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrStorage, "read refresh token %s (%v)", fs.path, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", apperrors.ErrNoRefreshToken
	}
	return token, nil
}

// Save overwrites the stored refresh token. The write goes through a
// temporary file and rename so a crash cannot leave a half-written token.
func (fs *FileStore) Save(token string) error {
	if token == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidArgument, "refresh token is empty")
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "create credential dir (%v)", err)
	}
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token+"\n"), 0o600); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "write refresh token (%v)", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "replace refresh token (%v)", err)
	}
	return nil
}
