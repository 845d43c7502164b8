package zkverify

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Config for the zero-knowledge verification stream.
type Config struct {
	URL     string // ws:// or wss:// endpoint
	Timeout time.Duration
}

// Client submits proof-verification requests over a websocket and waits for
// the backend's verdict frame. The connection is dialed per request; the
// backend is stateless between verifications.
type Client struct {
	url     string
	timeout time.Duration
	dialer  *websocket.Dialer
}

// Verdict is the backend's answer for one proof.
type Verdict struct {
	ProofID string `json:"proofId"`
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
}

type verifyRequest struct {
	ProofID string   `json:"proofId"`
	Proof   string   `json:"proof"` // base64
	Inputs  []string `json:"inputs,omitempty"`
}

// New creates a verification client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("zk verify url is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:     cfg.URL,
		timeout: timeout,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}, nil
}

// Verify submits a proof and blocks until the backend answers, the timeout
// elapses, or ctx is cancelled.
func (c *Client) Verify(ctx context.Context, proofID string, proof []byte, inputs []string) (Verdict, error) {
	if proofID == "" {
		return Verdict{}, fmt.Errorf("proof id is required")
	}
	if len(proof) == 0 {
		return Verdict{}, fmt.Errorf("proof is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, resp, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return Verdict{}, fmt.Errorf("dial verifier: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// Unblock the read below when the context ends mid-wait.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	req := verifyRequest{
		ProofID: proofID,
		Proof:   base64.StdEncoding.EncodeToString(proof),
		Inputs:  inputs,
	}
	if err := conn.WriteJSON(req); err != nil {
		return Verdict{}, fmt.Errorf("send proof: %w", err)
	}

	for {
		var verdict Verdict
		if err := conn.ReadJSON(&verdict); err != nil {
			if ctx.Err() != nil {
				return Verdict{}, fmt.Errorf("verify %s: %w", proofID, ctx.Err())
			}
			return Verdict{}, fmt.Errorf("read verdict: %w", err)
		}
		// The stream may interleave verdicts for other proofs.
		if verdict.ProofID != "" && verdict.ProofID != proofID {
			continue
		}
		verdict.ProofID = proofID
		return verdict, nil
	}
}
