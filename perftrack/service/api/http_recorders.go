package api

import (
	"encoding/json"
	"time"

	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/homelinehq/perf-go-client/perftrack/service/dtos"
)

const eventsBulkPath = "/events/bulk"

// HTTPEventsRecorder is responsible for submitting event batches to the
// collection service. In beacon mode it tries the fire-and-forget sender
// first and only falls back to a standard acknowledged POST when the beacon
// rejects the payload.
type HTTPEventsRecorder struct {
	client *HTTPClient
	beacon *beaconSender
	logger logging.LoggerInterface
}

// NewHTTPEventsRecorder instantiates an HTTPEventsRecorder against endpoint
func NewHTTPEventsRecorder(endpoint string, logger logging.LoggerInterface) *HTTPEventsRecorder {
	return &HTTPEventsRecorder{
		client: NewHTTPClient(endpoint, logger),
		beacon: newBeaconSender(endpoint, logger),
		logger: logger,
	}
}

// Record sends a batch of events wrapped in a single envelope
func (r *HTTPEventsRecorder) Record(events []dtos.PerfEventDTO, useBeacon bool) error {
	if len(events) == 0 {
		return nil
	}

	data, err := json.Marshal(dtos.EventEnvelopeDTO{Events: events})
	if err != nil {
		r.logger.Error("Error marshaling JSON", err.Error())
		return err
	}

	if useBeacon && r.beacon.Send(eventsBulkPath, data) {
		return nil
	}

	err = r.client.Post(eventsBulkPath, data)
	if err != nil {
		r.logger.Error("Error posting events", err.Error())
		return err
	}

	return nil
}

// Drain waits for detached beacon deliveries still in flight, up to timeout.
func (r *HTTPEventsRecorder) Drain(timeout time.Duration) bool {
	return r.beacon.Wait(timeout)
}
