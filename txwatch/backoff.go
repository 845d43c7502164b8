package txwatch

import (
	"context"
	"math"
	"math/rand"
	"time"

	clientconfig "github.com/qchain/sdk-go/client/config"
)

type constantBackoff struct{ every time.Duration }

func (b constantBackoff) Next(int) time.Duration { return b.every }

type exponentialBackoff struct {
	initial    time.Duration
	multiplier float64
	max        time.Duration
	jitter     float64
	randFn     func() float64
}

func (b *exponentialBackoff) Next(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	// Cap values before converting to time.Duration to avoid overflow.
	const safetyMargin = 2048.0
	maxDurationFloat := float64(math.MaxInt64) - safetyMargin

	initial := b.initial
	if initial <= 0 {
		initial = 500 * time.Millisecond
	}
	multiplier := b.multiplier
	if multiplier <= 1 {
		multiplier = 1
	}
	maxDelay := b.max
	base := float64(initial)
	if multiplier > 1 {
		base *= math.Pow(multiplier, float64(attempt-1))
	}
	if maxDelay > 0 {
		maxCap := float64(maxDelay)
		if maxCap > maxDurationFloat {
			maxCap = maxDurationFloat
		}
		if base > maxCap {
			base = maxCap
		}
	}
	if base > maxDurationFloat {
		base = maxDurationFloat
	}
	if base < 0 {
		base = 0
	}
	delay := time.Duration(base)
	jitter := b.jitter
	if jitter > 1 {
		jitter = 1
	}
	if jitter < 0 {
		jitter = 0
	}
	if jitter > 0 {
		randFn := b.randFn
		if randFn == nil {
			randFn = rand.Float64
		}
		factor := 1 + (randFn()*2-1)*jitter
		if factor < 0 {
			factor = 0
		}
		floatDelay := float64(delay) * factor
		if floatDelay > maxDurationFloat {
			floatDelay = maxDurationFloat
		}
		if floatDelay < 0 {
			floatDelay = 0
		}
		delay = time.Duration(floatDelay)
	}
	if delay <= 0 {
		delay = time.Millisecond
	}
	return delay
}

// NewBackoff constructs a session backoff from the watch configuration.
func NewBackoff(cfg clientconfig.WatchConfig) Backoff {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	var backoff Backoff = constantBackoff{every: interval}
	if cfg.PollBackoffMultiplier > 1 || cfg.PollBackoffJitter > 0 || (cfg.PollBackoffMaxInterval > 0 && cfg.PollBackoffMaxInterval != interval) {
		backoff = &exponentialBackoff{
			initial:    interval,
			multiplier: cfg.PollBackoffMultiplier,
			max:        cfg.PollBackoffMaxInterval,
			jitter:     cfg.PollBackoffJitter,
		}
	}
	return backoff
}

func sleepCtx(ctx context.Context, d time.Duration) <-chan struct{} {
	ch := make(chan struct{})
	if d <= 0 {
		close(ch)
		return ch
	}
	go func() {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
		close(ch)
	}()
	return ch
}
