package ledger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-webinar-sync/ledger"
	ledgerrepofake "github.com/jrsteele09/go-webinar-sync/ledger/repofake"
)

type record struct {
	Key   string
	Value string
}

func recordKey(r record) string { return r.Key }

func TestFilterUnprocessedKeepsOnlyUnseenKeys(t *testing.T) {
	store := ledgerrepofake.NewFakeStore("a", "c")
	l := ledger.New(store)

	items := []record{{Key: "a"}, {Key: "b"}, {Key: "c"}, {Key: "d"}}
	unprocessed, err := ledger.FilterUnprocessed(l, items, recordKey)
	require.NoError(t, err)
	require.Equal(t, []record{{Key: "b"}, {Key: "d"}}, unprocessed)
}

func TestCommitCollapsesDuplicatesAndSkipsEmptyKeys(t *testing.T) {
	store := ledgerrepofake.NewFakeStore()
	l := ledger.New(store)

	items := []record{{Key: "x"}, {Key: "x"}, {Key: ""}, {Key: "y"}}
	require.NoError(t, ledger.Commit(l, items, recordKey))
	require.Equal(t, []string{"x", "y"}, store.Keys())
}

func TestCommitWithNoItemsIsANoOp(t *testing.T) {
	store := ledgerrepofake.NewFakeStore()
	l := ledger.New(store)
	require.NoError(t, ledger.Commit(l, nil, recordKey))
	require.Empty(t, store.Keys())
}

func TestLedgerIsMonotonicAcrossRuns(t *testing.T) {
	store := ledgerrepofake.NewFakeStore()
	l := ledger.New(store)

	require.NoError(t, ledger.Commit(l, []record{{Key: "r1"}}, recordKey))
	afterFirst := store.Keys()

	require.NoError(t, ledger.Commit(l, []record{{Key: "r2"}}, recordKey))
	afterSecond := store.Keys()

	for _, key := range afterFirst {
		require.Contains(t, afterSecond, key)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	store := ledger.NewFileStore(path)

	// A ledger that does not exist yet loads as empty.
	keys, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, keys)

	require.NoError(t, store.Append([]string{"k1", "k2"}))
	require.NoError(t, store.Append([]string{"k3"}))

	keys, err = store.Load()
	require.NoError(t, err)
	require.Len(t, keys, 3)
	require.Contains(t, keys, "k1")
	require.Contains(t, keys, "k2")
	require.Contains(t, keys, "k3")
}

func TestFileStoreAppendsLinesWithoutRewriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	store := ledger.NewFileStore(path)

	require.NoError(t, store.Append([]string{"first"}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, store.Append([]string{"second"}))
	after, err := os.ReadFile(path)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(string(after), string(before)),
		"append must not rewrite earlier content")
	require.Equal(t, "first\nsecond\n", string(after))
}

func TestFileStoreFilterCommitEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendees.txt")
	l := ledger.New(ledger.NewFileStore(path))

	// Composite webinar+registrant keys must not collide across webinars.
	type attendee struct{ WebinarKey, RegistrantKey string }
	key := func(a attendee) string { return a.WebinarKey + ":" + a.RegistrantKey }

	first := []attendee{{"w1", "r1"}, {"w1", "r2"}}
	require.NoError(t, ledger.Commit(l, first, key))

	second := []attendee{{"w1", "r1"}, {"w2", "r1"}}
	unprocessed, err := ledger.FilterUnprocessed(l, second, key)
	require.NoError(t, err)
	require.Equal(t, []attendee{{"w2", "r1"}}, unprocessed)
}
