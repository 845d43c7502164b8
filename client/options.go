package client

import (
	"time"

	"github.com/qchain/sdk-go/types"
)

// Option is a function that modifies Config
type Option func(*Config)

// WithNetwork sets the target network
func WithNetwork(network types.Network) Option {
	return func(c *Config) {
		c.Network = network
	}
}

// WithNodeURL sets the node REST endpoint
func WithNodeURL(url string) Option {
	return func(c *Config) {
		c.NodeURL = url
	}
}

// WithIndexerURL sets the indexer REST endpoint
func WithIndexerURL(url string) Option {
	return func(c *Config) {
		c.IndexerURL = url
	}
}

// WithAPIToken sets the API token sent to both read paths
func WithAPIToken(token string) Option {
	return func(c *Config) {
		c.APIToken = token
	}
}

// WithRequestTimeout sets the per-request timeout for the read paths
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = timeout
	}
}

// WithPollInterval sets the confirmation poll interval
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.Watch.PollInterval = interval
	}
}

// WithMaxAttempts sets the confirmation attempt ceiling
func WithMaxAttempts(attempts int) Option {
	return func(c *Config) {
		c.Watch.MaxAttempts = attempts
	}
}

// WithFraudBackend sets the fraud-scoring backend URL
func WithFraudBackend(url string) Option {
	return func(c *Config) {
		c.FraudURL = url
	}
}

// WithQuantumRelay sets the post-quantum signing relay URL
func WithQuantumRelay(url string) Option {
	return func(c *Config) {
		c.QuantumURL = url
	}
}

// WithZKVerifier sets the zero-knowledge verification websocket URL
func WithZKVerifier(url string) Option {
	return func(c *Config) {
		c.ZKVerifyWS = url
	}
}

// WithCachePath sets where the recent-transaction cache is persisted
func WithCachePath(path string) Option {
	return func(c *Config) {
		c.CachePath = path
	}
}
