package ledgerrepofake

import (
	"sync"

	"github.com/jrsteele09/go-webinar-sync/ledger"
)

var _ ledger.Store = (*FakeStore)(nil)

type FakeStore struct {
	keys      []string
	LoadErr   error // returned from Load when set
	AppendErr error // returned from Append when set
	lock      sync.Mutex
}

func NewFakeStore(keys ...string) *FakeStore {
	return &FakeStore{keys: keys}
}

func (f *FakeStore) Load() (map[string]struct{}, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	set := make(map[string]struct{}, len(f.keys))
	for _, k := range f.keys {
		set[k] = struct{}{}
	}
	return set, nil
}

func (f *FakeStore) Append(keys []string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.AppendErr != nil {
		return f.AppendErr
	}
	f.keys = append(f.keys, keys...)
	return nil
}

// Keys returns the appended key log in order.
func (f *FakeStore) Keys() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}
