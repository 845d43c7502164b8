package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/qchain/sdk-go/types"
)

// fileConfig mirrors Config for TOML decoding. Durations are strings
// ("4s", "2m") and every field is a pointer so absent keys keep defaults.
type fileConfig struct {
	Network    *string `toml:"network"`
	NodeURL    *string `toml:"node_url"`
	IndexerURL *string `toml:"indexer_url"`
	APIToken   *string `toml:"api_token"`

	FraudURL   *string `toml:"fraud_url"`
	QuantumURL *string `toml:"quantum_url"`
	ZKVerifyWS *string `toml:"zk_verify_ws"`
	EVMRPCURL  *string `toml:"evm_rpc_url"`

	RequestTimeout *string `toml:"request_timeout"`
	BackendTimeout *string `toml:"backend_timeout"`

	Watch fileWatchConfig `toml:"watch"`

	CachePath *string `toml:"cache_path"`
}

type fileWatchConfig struct {
	PollInterval           *string  `toml:"poll_interval"`
	MaxAttempts            *int     `toml:"max_attempts"`
	IndexCheckEvery        *int     `toml:"index_check_every"`
	ErrorStreakLimit       *int     `toml:"error_streak_limit"`
	PollBackoffMultiplier  *float64 `toml:"poll_backoff_multiplier"`
	PollBackoffMaxInterval *string  `toml:"poll_backoff_max_interval"`
	PollBackoffJitter      *float64 `toml:"poll_backoff_jitter"`
}

// LoadFile reads a TOML configuration file and overlays it on the testnet
// defaults. Unknown keys are rejected so typos surface early.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var file fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := Default()
	if err := file.apply(&cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (f *fileConfig) apply(cfg *Config) error {
	if f.Network != nil {
		cfg.Network = types.Network(*f.Network)
	}
	if f.NodeURL != nil {
		cfg.NodeURL = *f.NodeURL
	}
	if f.IndexerURL != nil {
		cfg.IndexerURL = *f.IndexerURL
	}
	if f.APIToken != nil {
		cfg.APIToken = *f.APIToken
	}
	if f.FraudURL != nil {
		cfg.FraudURL = *f.FraudURL
	}
	if f.QuantumURL != nil {
		cfg.QuantumURL = *f.QuantumURL
	}
	if f.ZKVerifyWS != nil {
		cfg.ZKVerifyWS = *f.ZKVerifyWS
	}
	if f.EVMRPCURL != nil {
		cfg.EVMRPCURL = *f.EVMRPCURL
	}
	if f.CachePath != nil {
		cfg.CachePath = *f.CachePath
	}

	if err := setDuration(&cfg.RequestTimeout, f.RequestTimeout, "request_timeout"); err != nil {
		return err
	}
	if err := setDuration(&cfg.BackendTimeout, f.BackendTimeout, "backend_timeout"); err != nil {
		return err
	}

	w := f.Watch
	if err := setDuration(&cfg.Watch.PollInterval, w.PollInterval, "watch.poll_interval"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Watch.PollBackoffMaxInterval, w.PollBackoffMaxInterval, "watch.poll_backoff_max_interval"); err != nil {
		return err
	}
	if w.MaxAttempts != nil {
		cfg.Watch.MaxAttempts = *w.MaxAttempts
	}
	if w.IndexCheckEvery != nil {
		cfg.Watch.IndexCheckEvery = *w.IndexCheckEvery
	}
	if w.ErrorStreakLimit != nil {
		cfg.Watch.ErrorStreakLimit = *w.ErrorStreakLimit
	}
	if w.PollBackoffMultiplier != nil {
		cfg.Watch.PollBackoffMultiplier = *w.PollBackoffMultiplier
	}
	if w.PollBackoffJitter != nil {
		cfg.Watch.PollBackoffJitter = *w.PollBackoffJitter
	}
	return nil
}

func setDuration(dst *time.Duration, src *string, key string) error {
	if src == nil {
		return nil
	}
	d, err := time.ParseDuration(*src)
	if err != nil {
		return fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	*dst = d
	return nil
}
