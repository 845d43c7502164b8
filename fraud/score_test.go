package fraud

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreDeterministic(t *testing.T) {
	sig := Signals{Amount: 900, Balance: 1000, NewRecipient: true, RecentCount: 4}
	require.Equal(t, Score(sig), Score(sig))
}

func TestScoreBounds(t *testing.T) {
	low := Score(Signals{Amount: 1, Balance: 1_000_000})
	high := Score(Signals{Amount: 1_000_000, Balance: 1_000_000, NewRecipient: true, RecentCount: 20, RoundTrip: true})

	require.Greater(t, high, low)
	require.GreaterOrEqual(t, low, 0.0)
	require.LessOrEqual(t, high, 1.0)
}

func TestScoreEmptyBalanceSpend(t *testing.T) {
	// Spending against a zero balance scores at least as high as draining a
	// funded account.
	drained := Score(Signals{Amount: 100, Balance: 100})
	empty := Score(Signals{Amount: 100, Balance: 0})
	require.GreaterOrEqual(t, empty, drained)
}

func TestVerdictBuckets(t *testing.T) {
	require.Equal(t, "low", Verdict(0.2))
	require.Equal(t, "elevated", Verdict(0.6))
	require.Equal(t, "high", Verdict(0.9))
}

func TestEvaluatePrefersRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/score", r.URL.Path)
		w.Write([]byte(`{"score": 0.91, "verdict": "high"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	res, err := c.Evaluate(context.Background(), "TX1", "A", "B", Signals{Amount: 10, Balance: 100})
	require.NoError(t, err)
	require.True(t, res.Remote)
	require.Equal(t, 0.91, res.Score)
	require.Equal(t, "high", res.Verdict)
}

func TestEvaluateFallsBackToLocal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	sig := Signals{Amount: 10, Balance: 100}
	res, err := c.Evaluate(context.Background(), "TX1", "A", "B", sig)
	require.NoError(t, err)
	require.False(t, res.Remote)
	require.Equal(t, Score(sig), res.Score)
}

func TestEvaluateLocalOnly(t *testing.T) {
	c := New(Config{})
	res, err := c.Evaluate(context.Background(), "TX1", "A", "B", Signals{Amount: 10, Balance: 100})
	require.NoError(t, err)
	require.False(t, res.Remote)
	require.Equal(t, Verdict(res.Score), res.Verdict)
}
