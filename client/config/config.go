package config

import (
	"fmt"
	"time"

	sdklog "github.com/qchain/sdk-go/pkg/log"
	"github.com/qchain/sdk-go/types"
)

// Config holds all configuration for the q-chain client.
type Config struct {
	// Network selects explorer link construction and CLI defaults.
	Network types.Network `toml:"network"`

	// Read paths
	NodeURL    string `toml:"node_url"`    // fast path: node REST endpoint
	IndexerURL string `toml:"indexer_url"` // slow path: historical index endpoint
	APIToken   string `toml:"api_token"`   // optional bearer token for both read paths

	// Backend services
	FraudURL   string `toml:"fraud_url"`   // fraud-scoring HTTP backend
	QuantumURL string `toml:"quantum_url"` // post-quantum signing relay
	ZKVerifyWS string `toml:"zk_verify_ws"` // zero-knowledge verification websocket

	// EVMRPCURL is the JSON-RPC endpoint used by the contract deploy
	// commands. Unused by the read paths.
	EVMRPCURL string `toml:"evm_rpc_url"`

	// Timeouts
	RequestTimeout time.Duration `toml:"request_timeout"`
	BackendTimeout time.Duration `toml:"backend_timeout"`

	// Watch controls transaction confirmation behaviour.
	Watch WatchConfig `toml:"watch"`

	// CachePath is where the recent-transaction cache is persisted.
	// Empty disables persistence.
	CachePath string `toml:"cache_path"`

	// Logger is optional; when set, SDK operations emit diagnostics.
	Logger sdklog.Logger `toml:"-"`
}

// WatchConfig configures how the SDK waits for transaction confirmation.
type WatchConfig struct {
	// PollInterval controls how frequently a session queries the read paths.
	PollInterval time.Duration `toml:"poll_interval"`
	// MaxAttempts limits poll attempts before the session reports a timeout.
	// Roughly 100 rounds of a ~4 second block time by default.
	MaxAttempts int `toml:"max_attempts"`
	// IndexCheckEvery forces a slow-path lookup every N attempts even while
	// the fast path is still answering, to shorten latency when indexing lags.
	IndexCheckEvery int `toml:"index_check_every"`
	// ErrorStreakLimit ends a session early after N consecutive attempts in
	// which both read paths returned structured errors.
	ErrorStreakLimit int `toml:"error_streak_limit"`
	// PollBackoffMultiplier > 1 enables exponential growth for poll intervals.
	PollBackoffMultiplier float64 `toml:"poll_backoff_multiplier"`
	// PollBackoffMaxInterval caps the exponential backoff delay (0 => unlimited).
	PollBackoffMaxInterval time.Duration `toml:"poll_backoff_max_interval"`
	// PollBackoffJitter randomizes delays (0..1) to avoid synced retries.
	PollBackoffJitter float64 `toml:"poll_backoff_jitter"`
}

// Validate checks if the configuration is valid and populates defaults.
func (c *Config) Validate() error {
	if c.NodeURL == "" {
		return fmt.Errorf("node_url is required")
	}
	if c.IndexerURL == "" {
		return fmt.Errorf("indexer_url is required")
	}

	if c.Network == "" {
		c.Network = types.NetworkTestNet
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.BackendTimeout == 0 {
		c.BackendTimeout = 15 * time.Second
	}
	ApplyWatchDefaults(&c.Watch)

	return nil
}

// Default returns a configuration with sensible defaults for testnet.
func Default() Config {
	return Config{
		Network:        types.NetworkTestNet,
		NodeURL:        "https://testnet-api.qchain.dev",
		IndexerURL:     "https://testnet-idx.qchain.dev",
		RequestTimeout: 10 * time.Second,
		BackendTimeout: 15 * time.Second,
		Watch:          DefaultWatchConfig(),
	}
}

// DefaultWatchConfig returns recommended defaults for confirmation watching.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		PollInterval:           4 * time.Second,
		MaxAttempts:            100,
		IndexCheckEvery:        5,
		ErrorStreakLimit:       8,
		PollBackoffMultiplier:  1,
		PollBackoffMaxInterval: 20 * time.Second,
		PollBackoffJitter:      0,
	}
}

// ApplyWatchDefaults normalizes zero or negative values using defaults.
func ApplyWatchDefaults(cfg *WatchConfig) {
	if cfg == nil {
		return
	}
	def := DefaultWatchConfig()

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.IndexCheckEvery <= 0 {
		cfg.IndexCheckEvery = def.IndexCheckEvery
	}
	if cfg.ErrorStreakLimit <= 0 {
		cfg.ErrorStreakLimit = def.ErrorStreakLimit
	}
	if cfg.PollBackoffMultiplier <= 0 {
		cfg.PollBackoffMultiplier = def.PollBackoffMultiplier
	}
	if cfg.PollBackoffMaxInterval <= 0 {
		cfg.PollBackoffMaxInterval = def.PollBackoffMaxInterval
	}
	if cfg.PollBackoffJitter < 0 {
		cfg.PollBackoffJitter = 0
	}
}
