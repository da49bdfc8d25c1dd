// Package ledger implements the append-only deduplication ledger that makes
// each sync pass idempotent. One ledger exists per entity type and
// direction (uploaded leads, downloaded registrants, downloaded attendees);
// keys are opaque strings and are never pruned.
package ledger

// Store persists the processed-key set of one ledger.
type Store interface {
	// Load reads the full key set. A ledger that does not exist yet loads
	// as empty.
	Load() (map[string]struct{}, error)

	// Append adds keys to the ledger. Implementations append only; existing
	// entries are never rewritten.
	Append(keys []string) error
}

// Ledger filters and commits items against one persisted key set.
type Ledger struct {
	store Store
}

// New creates a Ledger over store.
func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// FilterUnprocessed returns the items whose key is not yet in the ledger.
// The key set is re-read from storage on every call.
func FilterUnprocessed[T any](l *Ledger, items []T, keyFn func(T) string) ([]T, error) {
	processed, err := l.store.Load()
	if err != nil {
		return nil, err
	}

	unprocessed := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := processed[keyFn(item)]; !ok {
			unprocessed = append(unprocessed, item)
		}
	}
	return unprocessed, nil
}

// Commit appends the keys of items to the ledger. Callers must pass only
// the subset whose downstream work actually succeeded; committing the
// pre-filter superset would permanently skip entities whose processing
// failed. Duplicate keys within one batch are collapsed.
func Commit[T any](l *Ledger, items []T, keyFn func(T) string) error {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	keys := make([]string, 0, len(items))
	for _, item := range items {
		key := keyFn(item)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil
	}

	return l.store.Append(keys)
}
