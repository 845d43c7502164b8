package zkverify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func wsServer(t *testing.T, handler func(conn *websocket.Conn)) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestVerifyReceivesVerdict(t *testing.T) {
	url := wsServer(t, func(conn *websocket.Conn) {
		var req verifyRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		conn.WriteJSON(Verdict{ProofID: req.ProofID, Valid: true})
	})

	c, err := New(Config{URL: url})
	require.NoError(t, err)

	v, err := c.Verify(context.Background(), "proof-1", []byte("proof"), []string{"42"})
	require.NoError(t, err)
	require.True(t, v.Valid)
	require.Equal(t, "proof-1", v.ProofID)
}

func TestVerifySkipsForeignVerdicts(t *testing.T) {
	url := wsServer(t, func(conn *websocket.Conn) {
		var req verifyRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		conn.WriteJSON(Verdict{ProofID: "other", Valid: true})
		conn.WriteJSON(Verdict{ProofID: req.ProofID, Valid: false, Reason: "pairing check failed"})
	})

	c, err := New(Config{URL: url})
	require.NoError(t, err)

	v, err := c.Verify(context.Background(), "proof-1", []byte("proof"), nil)
	require.NoError(t, err)
	require.False(t, v.Valid)
	require.Equal(t, "pairing check failed", v.Reason)
}

func TestVerifyTimesOut(t *testing.T) {
	url := wsServer(t, func(conn *websocket.Conn) {
		// Read the request, answer nothing.
		var req verifyRequest
		conn.ReadJSON(&req)
		time.Sleep(2 * time.Second)
	})

	c, err := New(Config{URL: url, Timeout: 100 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Verify(context.Background(), "proof-1", []byte("proof"), nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestVerifyValidation(t *testing.T) {
	c, err := New(Config{URL: "ws://localhost:1"})
	require.NoError(t, err)

	_, err = c.Verify(context.Background(), "", []byte("proof"), nil)
	require.Error(t, err)
	_, err = c.Verify(context.Background(), "proof-1", nil, nil)
	require.Error(t, err)
}
