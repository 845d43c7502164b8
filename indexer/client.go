package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/qchain/sdk-go/txwatch"
	"github.com/qchain/sdk-go/types"
)

// Config for the indexer client.
type Config struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// Client talks to the historical index over REST. It lags the node by a few
// rounds but is the durable source of truth once a transaction is indexed.
type Client struct {
	base  *url.URL
	token string
	http  *http.Client
}

// New creates an indexer client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("indexer base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse indexer url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:  base,
		token: cfg.APIToken,
		http:  &http.Client{Timeout: timeout},
	}, nil
}

// Close releases pooled connections. The client must not be used afterwards.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

type txEnvelope struct {
	Transaction *txRecord `json:"transaction"`
}

type txRecord struct {
	ID                string `json:"id"`
	ConfirmedRound    uint64 `json:"confirmed-round"`
	AssetIndex        uint64 `json:"asset-index"`
	CreatedAssetIndex uint64 `json:"created-asset-index"`
}

type apiError struct {
	Message string `json:"message"`
}

// LookupTransaction fetches a transaction by id from the index. An empty or
// missing record maps to types.ErrNotFound: the transaction may simply not
// be indexed yet, which callers treat as benign.
func (c *Client) LookupTransaction(ctx context.Context, txid string) (txwatch.TxRecord, error) {
	if txid == "" {
		return txwatch.TxRecord{}, fmt.Errorf("transaction id is required")
	}
	var env txEnvelope
	if err := c.get(ctx, "/v2/transactions/"+url.PathEscape(txid), &env); err != nil {
		return txwatch.TxRecord{}, err
	}
	if env.Transaction == nil {
		return txwatch.TxRecord{}, fmt.Errorf("indexer has no record for %s: %w", txid, types.ErrNotFound)
	}
	assetID := env.Transaction.CreatedAssetIndex
	if assetID == 0 {
		assetID = env.Transaction.AssetIndex
	}
	return txwatch.TxRecord{
		ConfirmedRound: env.Transaction.ConfirmedRound,
		AssetID:        assetID,
	}, nil
}

// LookupCreatedAsset resolves the asset id created by a transaction, for
// records that confirmed without carrying one.
func (c *Client) LookupCreatedAsset(ctx context.Context, txid string) (uint64, error) {
	rec, err := c.LookupTransaction(ctx, txid)
	if err != nil {
		return 0, err
	}
	if rec.AssetID == 0 {
		return 0, fmt.Errorf("transaction %s created no asset: %w", txid, types.ErrNotFound)
	}
	return rec.AssetID, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String()+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("X-API-Key", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("indexer request %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("indexer %s: %w", path, types.ErrNotFound)
	case resp.StatusCode >= 400:
		var apiErr apiError
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("indexer %s: %s", path, apiErr.Message)
		}
		return fmt.Errorf("indexer %s: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode indexer response: %w", err)
	}
	return nil
}
