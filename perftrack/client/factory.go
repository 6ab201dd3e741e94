package client

import (
	"os"
	"path/filepath"

	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/homelinehq/perf-go-client/perftrack/conf"
	"github.com/homelinehq/perf-go-client/perftrack/identity"
	"github.com/homelinehq/perf-go-client/perftrack/service"
	"github.com/homelinehq/perf-go-client/perftrack/service/api"
	"github.com/homelinehq/perf-go-client/perftrack/storage"
	"github.com/homelinehq/perf-go-client/perftrack/storage/mutexqueue"
)

// NewPerfTracker wires a tracker from a normalized config: HTTP delivery
// against cfg.Endpoint, a file-backed durable store under the user cache
// directory, an in-memory session store and a signal-based lifecycle
// notifier. A nil logger gets a default one.
func NewPerfTracker(cfg *conf.PerfConfig, logger logging.LoggerInterface) *PerfTracker {
	if logger == nil {
		logger = logging.NewLogger(&logging.LoggerOptions{})
	}

	durable := storage.NewFileStore(durableDir(), logger)
	recorder := api.NewHTTPEventsRecorder(cfg.Endpoint, logger)

	return newPerfTracker(cfg, logger, recorder, durable, storage.NewMemoryStore(), NewSignalNotifier())
}

func newPerfTracker(
	cfg *conf.PerfConfig,
	logger logging.LoggerInterface,
	recorder service.EventsRecorder,
	durable storage.KVStore,
	session storage.KVStore,
	notifier LifecycleNotifier,
) *PerfTracker {
	return &PerfTracker{
		cfg:      cfg,
		logger:   logger,
		identity: identity.NewProvider(cfg, durable, session, logger),
		recorder: recorder,
		events:   mutexqueue.NewPerfEventsQueue(conf.QueueLimit),
		notifier: notifier,
	}
}

func durableDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "perf-go-client")
}
