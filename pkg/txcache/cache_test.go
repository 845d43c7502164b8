package txcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddKeepsNewestFirstAndBounded(t *testing.T) {
	c := New("", 3)
	for _, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, c.Add(Record{TxID: id, SubmittedAt: time.Now()}))
	}

	recent := c.Recent()
	require.Len(t, recent, 3)
	require.Equal(t, "D", recent[0].TxID)
	require.Equal(t, "B", recent[2].TxID)
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.json")

	c := New(path, 10)
	require.NoError(t, c.Add(Record{TxID: "TX1", Kind: "payment", SubmittedAt: time.Now()}))
	require.NoError(t, c.MarkConfirmed("TX1", 42, 777))

	reloaded := New(path, 10)
	recent := reloaded.Recent()
	require.Len(t, recent, 1)
	require.Equal(t, uint64(42), recent[0].Round)
	require.Equal(t, uint64(777), recent[0].AssetID)
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	c := New(path, 10)
	require.Empty(t, c.Recent())
}

func TestMarkConfirmedUnknownTxIsNoop(t *testing.T) {
	c := New("", 10)
	require.NoError(t, c.MarkConfirmed("missing", 1, 0))
	require.Empty(t, c.Recent())
}
