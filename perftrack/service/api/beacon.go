package api

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/homelinehq/perf-go-client/perftrack"
)

// Browser beacons reject payloads above 64KB; the same cap keeps the
// fire-and-forget path cheap here.
const maxBeaconBytes = 64 * 1024

const beaconHTTPTimeout = 10

// beaconSender is the fire-and-forget delivery strategy. Accept means the
// payload was handed off, not that it arrived: the POST runs detached and its
// outcome is only logged.
type beaconSender struct {
	url        string
	httpClient *http.Client
	logger     logging.LoggerInterface
	inflight   sync.WaitGroup
}

func newBeaconSender(endpoint string, logger logging.LoggerInterface) *beaconSender {
	return &beaconSender{
		url:        endpoint,
		httpClient: &http.Client{Timeout: beaconHTTPTimeout * time.Second},
		logger:     logger,
	}
}

// Send queues the payload for delivery and reports whether it was accepted.
// Oversized payloads are rejected so the caller can fall back to a standard
// request.
func (b *beaconSender) Send(service string, body []byte) bool {
	if len(body) > maxBeaconBytes {
		b.logger.Debug("Beacon payload too large, falling back to standard POST")
		return false
	}

	serviceURL := b.url + service
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		req, err := http.NewRequest("POST", serviceURL, bytes.NewReader(body))
		if err != nil {
			return
		}
		req.Header.Add("Content-Type", "application/json")
		req.Header.Add("PerfClientName", perftrack.ClientName)
		req.Header.Add("PerfClientVersion", perftrack.Version)

		resp, err := b.httpClient.Do(req)
		if err != nil {
			b.logger.Debug("Beacon delivery failed: ", err.Error())
			return
		}
		resp.Body.Close()
	}()

	return true
}

// Wait blocks until every detached delivery has finished or the timeout
// elapses, reporting whether all of them completed. Terminal flush paths use
// it so accepted beacons are actually written out before the process exits.
func (b *beaconSender) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
