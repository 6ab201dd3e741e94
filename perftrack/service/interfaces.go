package service

import (
	"time"

	"github.com/homelinehq/perf-go-client/perftrack/service/dtos"
)

// EventsRecorder interface to post event batches. useBeacon requests the
// fire-and-forget delivery mode used when the host is shutting down and a
// response can no longer be awaited.
type EventsRecorder interface {
	Record(events []dtos.PerfEventDTO, useBeacon bool) error
}

// DrainableRecorder is implemented by recorders whose fire-and-forget sends
// run detached. Unlike a browser beacon, a detached goroutine does not
// survive process teardown, so terminal flush paths wait on it before the
// host exits.
type DrainableRecorder interface {
	Drain(timeout time.Duration) bool
}
