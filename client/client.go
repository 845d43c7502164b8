package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/qchain/sdk-go/chain"
	"github.com/qchain/sdk-go/explorer"
	"github.com/qchain/sdk-go/fraud"
	"github.com/qchain/sdk-go/indexer"
	sdklog "github.com/qchain/sdk-go/pkg/log"
	"github.com/qchain/sdk-go/pkg/txcache"
	"github.com/qchain/sdk-go/quantum"
	"github.com/qchain/sdk-go/txwatch"
	"github.com/qchain/sdk-go/wallet"
	"github.com/qchain/sdk-go/zkverify"
)

// Client provides unified access to the chain, the index, the confirmation
// monitor and the q-chain backend services.
type Client struct {
	// High-level modules
	Chain   *chain.Client
	Indexer *indexer.Client
	Monitor *txwatch.Monitor
	Fraud   *fraud.Client
	Quantum *quantum.Client // nil unless QuantumURL is configured
	ZK      *zkverify.Client // nil unless ZKVerifyWS is configured

	// Configuration
	config Config
	cache  *txcache.Cache
	logger sdklog.Logger
}

// New creates a new unified q-chain client.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	// Apply options
	for _, opt := range opts {
		opt(&cfg)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = sdklog.NoopLogger{}
	}

	chainClient, err := chain.New(chain.Config{
		BaseURL:  cfg.NodeURL,
		APIToken: cfg.APIToken,
		Timeout:  cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize node client: %w", err)
	}

	indexerClient, err := indexer.New(indexer.Config{
		BaseURL:  cfg.IndexerURL,
		APIToken: cfg.APIToken,
		Timeout:  cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize indexer client: %w", err)
	}

	monitor, err := txwatch.New(chainClient, indexerClient, cfg.Watch, explorer.TxLinks(cfg.Network), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize confirmation monitor: %w", err)
	}

	fraudClient := fraud.New(fraud.Config{
		BaseURL: cfg.FraudURL,
		Timeout: cfg.BackendTimeout,
		Logger:  logger,
	})

	var quantumClient *quantum.Client
	if cfg.QuantumURL != "" {
		quantumClient, err = quantum.New(quantum.Config{BaseURL: cfg.QuantumURL, Timeout: cfg.BackendTimeout})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize quantum relay client: %w", err)
		}
	}

	var zkClient *zkverify.Client
	if cfg.ZKVerifyWS != "" {
		zkClient, err = zkverify.New(zkverify.Config{URL: cfg.ZKVerifyWS, Timeout: cfg.BackendTimeout})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize zk verify client: %w", err)
		}
	}

	return &Client{
		Chain:   chainClient,
		Indexer: indexerClient,
		Monitor: monitor,
		Fraud:   fraudClient,
		Quantum: quantumClient,
		ZK:      zkClient,
		config:  cfg,
		cache:   txcache.New(cfg.CachePath, txcache.DefaultLimit),
		logger:  logger,
	}, nil
}

// Close releases the client's network resources. In-flight confirmation
// sessions are not interrupted; cancel their contexts to stop them.
func (c *Client) Close() error {
	c.Chain.Close()
	c.Indexer.Close()
	return nil
}

// NewWalletSession builds a wallet session bound to this client's node and
// recent-transaction cache. The caller owns the session's lifecycle.
func (c *Client) NewWalletSession(signer wallet.Signer) (*wallet.Session, error) {
	return wallet.NewSession(c.Chain, signer, c.cache, c.logger)
}

// WatchTransaction starts a confirmation session for txid.
func (c *Client) WatchTransaction(ctx context.Context, txid string) (*txwatch.Session, error) {
	return c.Monitor.Start(ctx, txid)
}

// CheckTransaction performs one immediate confirmation check (the "check
// now" action), outside any session cadence.
func (c *Client) CheckTransaction(ctx context.Context, txid string) txwatch.Status {
	return c.Monitor.Poll(ctx, txid)
}

// ExplorerLinks builds viewer URLs for a transaction on this client's network.
func (c *Client) ExplorerLinks(txid string) []string {
	return explorer.Links(txid, explorer.KindTransaction, c.config.Network)
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// WithZap returns an option that installs a zap-backed SDK logger.
func WithZap(l *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = sdklog.NewZapLogger(l)
	}
}
