package quantum

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config for the post-quantum signing relay client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client asks the remote relay to produce a post-quantum signature over a
// digest. All PQC math lives in the relay; the SDK only moves bytes.
type Client struct {
	base string
	http *http.Client
}

// Signature is a relay-produced signature with its algorithm label.
type Signature struct {
	Bytes     []byte
	Algorithm string
}

// New creates a relay client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("quantum relay url is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}, nil
}

type signRequest struct {
	Digest string `json:"digest"` // base64
}

type signResponse struct {
	Signature string `json:"signature"` // base64
	Algorithm string `json:"algorithm"`
}

// Sign requests a signature over the digest.
func (c *Client) Sign(ctx context.Context, digest []byte) (Signature, error) {
	if len(digest) == 0 {
		return Signature{}, fmt.Errorf("digest is empty")
	}

	payload, err := json.Marshal(signRequest{Digest: base64.StdEncoding.EncodeToString(digest)})
	if err != nil {
		return Signature{}, fmt.Errorf("encode sign request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/v1/sign", bytes.NewReader(payload))
	if err != nil {
		return Signature{}, fmt.Errorf("build sign request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Signature{}, fmt.Errorf("sign request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Signature{}, fmt.Errorf("quantum relay: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out signResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Signature{}, fmt.Errorf("decode sign response: %w", err)
	}
	sig, err := base64.StdEncoding.DecodeString(out.Signature)
	if err != nil {
		return Signature{}, fmt.Errorf("decode signature: %w", err)
	}
	if len(sig) == 0 {
		return Signature{}, fmt.Errorf("quantum relay returned empty signature")
	}
	return Signature{Bytes: sig, Algorithm: out.Algorithm}, nil
}
