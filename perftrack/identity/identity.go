// Package identity derives and persists the device identifier, the session
// identifier and the per-session sampling verdict.
package identity

import (
	"math/rand"
	"os"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/homelinehq/perf-go-client/perftrack/conf"
	"github.com/homelinehq/perf-go-client/perftrack/storage"
)

const (
	deviceIDKey       = "perf_device_id"
	sessionIDKey      = "perf_session_id"
	sessionSampledKey = "perf_session_sampled"

	maxDeviceNameLen = 120
)

// Provider resolves identity state lazily. The device id lives in the
// durable store and survives restarts; the session id and the sampling
// verdict live in the session store and last one run.
type Provider struct {
	cfg     *conf.PerfConfig
	durable storage.KVStore
	session storage.KVStore
	logger  logging.LoggerInterface

	mutex   sync.Mutex
	sampled *bool
}

// NewProvider instantiates a Provider
func NewProvider(
	cfg *conf.PerfConfig,
	durable storage.KVStore,
	session storage.KVStore,
	logger logging.LoggerInterface,
) *Provider {
	return &Provider{
		cfg:     cfg,
		durable: durable,
		session: session,
		logger:  logger,
	}
}

func (p *Provider) identifierFrom(store storage.KVStore, key string) string {
	if value, ok := store.Get(key); ok {
		return value
	}
	// A broken store still yields a usable, ephemeral identifier.
	fresh := uuid.NewString()
	store.Set(key, fresh)
	p.logger.Debug("Generated fresh identifier for ", key)
	return fresh
}

// DeviceID returns the durable device identifier, generating and persisting
// one on first use.
func (p *Provider) DeviceID() string {
	return p.identifierFrom(p.durable, deviceIDKey)
}

// SessionID returns the session identifier, generating and persisting one on
// first use.
func (p *Provider) SessionID() string {
	return p.identifierFrom(p.session, sessionIDKey)
}

// SampledSession returns whether this session's telemetry is collected.
// The verdict is a single Bernoulli trial at the configured rate, drawn the
// first time it is needed and then pinned for the rest of the session so a
// session's events are included or excluded together.
func (p *Provider) SampledSession() bool {
	if !p.cfg.Enabled || p.cfg.SampleRate <= 0 {
		return false
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.sampled != nil {
		return *p.sampled
	}

	var verdict bool
	if stored, ok := p.session.Get(sessionSampledKey); ok {
		verdict = stored == "1"
	} else {
		verdict = rand.Float64() < p.cfg.SampleRate
		if verdict {
			p.session.Set(sessionSampledKey, "1")
		} else {
			p.session.Set(sessionSampledKey, "0")
		}
		p.logger.Debug("Drew sampling verdict for session: ", verdict)
	}

	p.sampled = &verdict
	return verdict
}

// DeviceName returns a best-effort descriptive label for the device, or ""
// when none can be derived.
func (p *Provider) DeviceName() string {
	host, err := os.Hostname()
	if err != nil {
		host = ""
	}
	return truncateLabel(strings.TrimSpace(host+" "+runtime.GOOS), maxDeviceNameLen)
}

// truncateLabel caps a label's byte length without splitting a multi-byte
// rune.
func truncateLabel(label string, max int) string {
	if len(label) <= max {
		return label
	}
	for max > 0 && !utf8.RuneStart(label[max]) {
		max--
	}
	return label[:max]
}
