package quantum

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/sign", r.URL.Path)
		var req struct {
			Digest string `json:"digest"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, base64.StdEncoding.EncodeToString([]byte("digest")), req.Digest)

		w.Write([]byte(`{"signature": "` + base64.StdEncoding.EncodeToString([]byte("sig")) + `", "algorithm": "ML-DSA-65"}`))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	sig, err := c.Sign(context.Background(), []byte("digest"))
	require.NoError(t, err)
	require.Equal(t, []byte("sig"), sig.Bytes)
	require.Equal(t, "ML-DSA-65", sig.Algorithm)
}

func TestSignRejectsEmptyDigest(t *testing.T) {
	c, err := New(Config{BaseURL: "http://localhost:1"})
	require.NoError(t, err)
	_, err = c.Sign(context.Background(), nil)
	require.Error(t, err)
}

func TestSignSurfacesRelayErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "key ceremony in progress", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	_, err = c.Sign(context.Background(), []byte("digest"))
	require.ErrorContains(t, err, "key ceremony")
}
