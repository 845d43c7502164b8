package fraud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sdklog "github.com/qchain/sdk-go/pkg/log"
	"github.com/qchain/sdk-go/types"
)

// Config for the fraud-scoring backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  sdklog.Logger
}

// Client forwards transaction metadata to the remote fraud-scoring backend.
// The backend is opaque; when it is unreachable the client falls back to the
// local formula so callers always get a score.
type Client struct {
	base   string
	http   *http.Client
	logger sdklog.Logger
}

// New creates a fraud client. An empty BaseURL yields a local-only client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = sdklog.NoopLogger{}
	}
	return &Client{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type scoreRequest struct {
	TxID      string  `json:"txid"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    uint64  `json:"amount"`
	LocalHint float64 `json:"localHint"`
}

type scoreResponse struct {
	Score   float64 `json:"score"`
	Verdict string  `json:"verdict"`
}

// Evaluate scores a transfer. Remote first, local formula on any remote
// failure; the Remote flag on the result says which one answered.
func (c *Client) Evaluate(ctx context.Context, txid, from, to string, sig Signals) (types.RiskResult, error) {
	local := Score(sig)

	if c.base == "" {
		return types.RiskResult{Score: local, Verdict: Verdict(local)}, nil
	}

	res, err := c.remote(ctx, scoreRequest{
		TxID:      txid,
		From:      from,
		To:        to,
		Amount:    sig.Amount,
		LocalHint: local,
	})
	if err != nil {
		c.logger.Printf("fraud backend unavailable, using local score: %v", err)
		return types.RiskResult{Score: local, Verdict: Verdict(local)}, nil
	}
	return types.RiskResult{Score: res.Score, Verdict: res.Verdict, Remote: true}, nil
}

func (c *Client) remote(ctx context.Context, reqBody scoreRequest) (scoreResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return scoreResponse{}, fmt.Errorf("encode score request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/v1/score", bytes.NewReader(payload))
	if err != nil {
		return scoreResponse{}, fmt.Errorf("build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return scoreResponse{}, fmt.Errorf("score request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return scoreResponse{}, fmt.Errorf("score backend: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return scoreResponse{}, fmt.Errorf("decode score response: %w", err)
	}
	if out.Verdict == "" {
		out.Verdict = Verdict(out.Score)
	}
	return out, nil
}
