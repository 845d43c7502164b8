package indexer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qchain/sdk-go/types"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestLookupTransactionUnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/transactions/TX1", r.URL.Path)
		w.Write([]byte(`{"transaction": {"id": "TX1", "confirmed-round": 5, "created-asset-index": 9}}`))
	}))

	rec, err := c.LookupTransaction(context.Background(), "TX1")
	require.NoError(t, err)
	require.Equal(t, uint64(5), rec.ConfirmedRound)
	require.Equal(t, uint64(9), rec.AssetID)
}

func TestLookupTransactionEmptyEnvelopeIsNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	_, err := c.LookupTransaction(context.Background(), "TX1")
	require.True(t, errors.Is(err, types.ErrNotFound))
}

func TestLookupTransaction404IsNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no transaction found"}`, http.StatusNotFound)
	}))

	_, err := c.LookupTransaction(context.Background(), "TX1")
	require.True(t, errors.Is(err, types.ErrNotFound))
}

func TestLookupCreatedAsset(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transaction": {"id": "TX1", "confirmed-round": 5, "asset-index": 321}}`))
	}))

	id, err := c.LookupCreatedAsset(context.Background(), "TX1")
	require.NoError(t, err)
	require.Equal(t, uint64(321), id)
}

func TestLookupCreatedAssetNoAsset(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transaction": {"id": "TX1", "confirmed-round": 5}}`))
	}))

	_, err := c.LookupCreatedAsset(context.Background(), "TX1")
	require.True(t, errors.Is(err, types.ErrNotFound))
}

func TestLookupTransactionStructuredError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"rate limited"}`, http.StatusTooManyRequests)
	}))

	_, err := c.LookupTransaction(context.Background(), "TX1")
	require.Error(t, err)
	require.False(t, errors.Is(err, types.ErrNotFound))
	require.ErrorContains(t, err, "rate limited")
}
