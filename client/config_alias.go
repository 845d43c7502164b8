package client

import clientconfig "github.com/qchain/sdk-go/client/config"

// Config re-exports the config.Config type for convenience.
type Config = clientconfig.Config

// WatchConfig re-exports the confirmation-watch config type.
type WatchConfig = clientconfig.WatchConfig

// DefaultConfig mirrors config.Default.
func DefaultConfig() Config {
	return clientconfig.Default()
}

// DefaultWatchConfig mirrors config.DefaultWatchConfig.
func DefaultWatchConfig() WatchConfig {
	return clientconfig.DefaultWatchConfig()
}

// ApplyWatchDefaults mirrors config.ApplyWatchDefaults.
func ApplyWatchDefaults(cfg *WatchConfig) {
	clientconfig.ApplyWatchDefaults(cfg)
}
