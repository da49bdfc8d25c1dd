package credentialsrepofake

import (
	"sync"

	"github.com/jrsteele09/go-webinar-sync/credentials"
	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
)

var _ credentials.Store = (*FakeCredentialStore)(nil)

type FakeCredentialStore struct {
	token   string
	SaveErr error // returned from Save when set
	Saves   int
	lock    sync.Mutex
}

func NewFakeCredentialStore(token string) *FakeCredentialStore {
	return &FakeCredentialStore{token: token}
}

func (f *FakeCredentialStore) Load() (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.token == "" {
		return "", apperrors.ErrNoRefreshToken
	}
	return f.token, nil
}

func (f *FakeCredentialStore) Save(token string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.token = token
	f.Saves++
	return nil
}
