// Package conf contains the configuration structure used to set up the perf
// client, along with loading and normalization helpers.
package conf

import (
	"context"
	"math"

	"github.com/sethvargo/go-envconfig"
)

// PerfConfig struct used to set up a perf tracking client.
//
// Parameters:
// - Enabled: master switch; when false no event is ever sampled or queued
// - SampleRate: per-session inclusion probability, clamped to [0, 1]
// - BatchSize: events removed from the queue per delivery attempt
// - FlushIntervalMs: delay of the timer-paced flush
// - Endpoint: base URL of the collection service
// - AppVersion: stamped on every event, optional
type PerfConfig struct {
	Enabled         bool    `env:"PERF_TELEMETRY_ENABLED,default=true"`
	SampleRate      float64 `env:"PERF_TELEMETRY_SAMPLE_RATE,default=0.1"`
	BatchSize       int     `env:"PERF_TELEMETRY_BATCH_SIZE,default=20"`
	FlushIntervalMs int     `env:"PERF_TELEMETRY_FLUSH_INTERVAL_MS,default=15000"`
	Endpoint        string  `env:"PERF_TELEMETRY_ENDPOINT"`
	AppVersion      string  `env:"PERF_APP_VERSION"`
}

// Default returns a config struct with all the default values
func Default() *PerfConfig {
	return &PerfConfig{
		Enabled:         true,
		SampleRate:      defaultSampleRate,
		BatchSize:       defaultBatchSize,
		FlushIntervalMs: defaultFlushIntervalMs,
	}
}

// Load reads the configuration from the environment and normalizes it.
// Telemetry setup must never take the host application down, so parsing is
// absorbed per value: a malformed variable falls back to its own default and
// every other variable is honored as provided.
func Load(ctx context.Context) *PerfConfig {
	var cfg PerfConfig
	if err := envconfig.Process(ctx, &cfg); err == nil {
		Normalize(&cfg)
		return &cfg
	}

	cfg = *Default()

	var enabled struct {
		Value bool `env:"PERF_TELEMETRY_ENABLED,default=true"`
	}
	if envconfig.Process(ctx, &enabled) == nil {
		cfg.Enabled = enabled.Value
	}

	var sampleRate struct {
		Value float64 `env:"PERF_TELEMETRY_SAMPLE_RATE,default=0.1"`
	}
	if envconfig.Process(ctx, &sampleRate) == nil {
		cfg.SampleRate = sampleRate.Value
	}

	var batchSize struct {
		Value int `env:"PERF_TELEMETRY_BATCH_SIZE,default=20"`
	}
	if envconfig.Process(ctx, &batchSize) == nil {
		cfg.BatchSize = batchSize.Value
	}

	var flushInterval struct {
		Value int `env:"PERF_TELEMETRY_FLUSH_INTERVAL_MS,default=15000"`
	}
	if envconfig.Process(ctx, &flushInterval) == nil {
		cfg.FlushIntervalMs = flushInterval.Value
	}

	var text struct {
		Endpoint   string `env:"PERF_TELEMETRY_ENDPOINT"`
		AppVersion string `env:"PERF_APP_VERSION"`
	}
	if envconfig.Process(ctx, &text) == nil {
		cfg.Endpoint = text.Endpoint
		cfg.AppVersion = text.AppVersion
	}

	Normalize(&cfg)
	return &cfg
}

// Normalize checks the parameters passed by the user and clamps them into
// their documented ranges. Invalid input is absorbed silently; there is no
// error path.
func Normalize(cfg *PerfConfig) {
	if math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		cfg.SampleRate = defaultSampleRate
	}
	if cfg.SampleRate < 0 {
		cfg.SampleRate = 0
	}
	if cfg.SampleRate > 1 {
		cfg.SampleRate = 1
	}

	if cfg.BatchSize < minBatchSize {
		cfg.BatchSize = minBatchSize
	}
	if cfg.BatchSize > maxBatchSize {
		cfg.BatchSize = maxBatchSize
	}

	if cfg.FlushIntervalMs < minFlushIntervalMs {
		cfg.FlushIntervalMs = minFlushIntervalMs
	}
	if cfg.FlushIntervalMs > maxFlushIntervalMs {
		cfg.FlushIntervalMs = maxFlushIntervalMs
	}
}
