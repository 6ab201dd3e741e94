package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/homelinehq/perf-go-client/perftrack"
	"github.com/homelinehq/perf-go-client/perftrack/service/dtos"
)

func someEvents() []dtos.PerfEventDTO {
	server := 80.5
	status := 200
	return []dtos.PerfEventDTO{
		{
			Type:             dtos.EventTypeAPIRequest,
			DurationMs:       120.25,
			APIPath:          "/api/tasks",
			Method:           "GET",
			ServerDurationMs: &server,
			StatusCode:       &status,
			OK:               true,
			DeviceID:         "device-1",
			SessionID:        "session-1",
			Sampled:          true,
			RecordedAt:       "2026-08-29T10:00:00.000Z",
		},
		{
			Type:       dtos.EventTypePageLoad,
			DurationMs: 900,
			PagePath:   "/stations/qc",
			OK:         true,
			DeviceID:   "device-1",
			SessionID:  "session-1",
			Sampled:    true,
			RecordedAt: "2026-08-29T10:00:01.000Z",
		},
	}
}

func TestPostEvents(t *testing.T) {
	logger := logging.NewLogger(&logging.LoggerOptions{})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/bulk" {
			t.Error("Wrong path: ", r.URL.Path)
		}
		if r.Header.Get("PerfClientVersion") != perftrack.Version {
			t.Error("Client version header not match")
		}
		if r.Header.Get("PerfClientName") != perftrack.ClientName {
			t.Error("Client name header not match")
		}

		rBody, _ := io.ReadAll(r.Body)
		var envelope dtos.EventEnvelopeDTO
		if err := json.Unmarshal(rBody, &envelope); err != nil {
			t.Error(err)
			return
		}
		if len(envelope.Events) != 2 {
			t.Error("Posted envelope should carry 2 events")
			return
		}
		if envelope.Events[0].APIPath != "/api/tasks" ||
			envelope.Events[0].Method != "GET" ||
			envelope.Events[1].PagePath != "/stations/qc" {
			t.Error("Posted events arrived mal-formed")
		}
		if !strings.Contains(string(rBody), `"duration_ms":120.25`) {
			t.Error("Wire field names should be snake_case")
		}
		if strings.Contains(string(rBody), `"server_duration_ms"`) == false {
			t.Error("Server duration missing from wire")
		}
	}))
	defer ts.Close()

	recorder := NewHTTPEventsRecorder(ts.URL, logger)
	if err := recorder.Record(someEvents(), false); err != nil {
		t.Error(err)
	}
}

func TestPostEventsOmitsEmptyOptionals(t *testing.T) {
	logger := logging.NewLogger(&logging.LoggerOptions{})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rBody, _ := io.ReadAll(r.Body)
		body := string(rBody)
		if strings.Contains(body, `"api_path"`) || strings.Contains(body, `"method"`) ||
			strings.Contains(body, `"status_code"`) || strings.Contains(body, `"request_id"`) {
			t.Error("Empty optionals must be omitted, body: ", body)
		}
	}))
	defer ts.Close()

	recorder := NewHTTPEventsRecorder(ts.URL, logger)
	err := recorder.Record([]dtos.PerfEventDTO{{
		Type:       dtos.EventTypePageLoad,
		DurationMs: 10,
		OK:         true,
		DeviceID:   "d",
		SessionID:  "s",
		Sampled:    true,
		RecordedAt: "2026-08-29T10:00:00.000Z",
	}}, false)
	if err != nil {
		t.Error(err)
	}
}

func TestPostEventsEmptyBatch(t *testing.T) {
	logger := logging.NewLogger(&logging.LoggerOptions{})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Empty batch should not hit the network")
	}))
	defer ts.Close()

	recorder := NewHTTPEventsRecorder(ts.URL, logger)
	if err := recorder.Record(nil, false); err != nil {
		t.Error(err)
	}
}

func TestPostEventsNonOKStatus(t *testing.T) {
	logger := logging.NewLogger(&logging.LoggerOptions{})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	recorder := NewHTTPEventsRecorder(ts.URL, logger)
	if err := recorder.Record(someEvents(), false); err == nil {
		t.Error("Non-OK status should be a delivery failure")
	}
}

func TestPostEventsNetworkError(t *testing.T) {
	logger := logging.NewLogger(&logging.LoggerOptions{})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing listening anymore

	recorder := NewHTTPEventsRecorder(ts.URL, logger)
	if err := recorder.Record(someEvents(), false); err == nil {
		t.Error("Connection refused should be a delivery failure")
	}
}

func TestBeaconModeDetaches(t *testing.T) {
	logger := logging.NewLogger(&logging.LoggerOptions{})

	received := make(chan string, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rBody, _ := io.ReadAll(r.Body)
		received <- string(rBody)
	}))
	defer ts.Close()

	recorder := NewHTTPEventsRecorder(ts.URL, logger)
	if err := recorder.Record(someEvents(), true); err != nil {
		t.Error("Accepted beacon should report success: ", err)
	}

	select {
	case body := <-received:
		if !strings.Contains(body, `"events"`) {
			t.Error("Beacon payload should be the same envelope")
		}
	case <-time.After(3 * time.Second):
		t.Error("Detached beacon request never arrived")
	}
}

func TestBeaconDrainWaitsForDelivery(t *testing.T) {
	logger := logging.NewLogger(&logging.LoggerOptions{})

	received := make(chan struct{}, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		io.Copy(io.Discard, r.Body)
		received <- struct{}{}
	}))
	defer ts.Close()

	recorder := NewHTTPEventsRecorder(ts.URL, logger)

	if !recorder.Drain(time.Second) {
		t.Error("Drain with nothing in flight should return immediately")
	}

	if err := recorder.Record(someEvents(), true); err != nil {
		t.Error("Accepted beacon should report success: ", err)
	}
	if !recorder.Drain(3 * time.Second) {
		t.Error("Drain timed out on an in-flight beacon")
	}

	// The detached POST must have completed by the time Drain returns.
	select {
	case <-received:
	default:
		t.Error("Drain returned before the detached request was delivered")
	}
}

func TestBeaconOversizeFallsBackToStandardPost(t *testing.T) {
	logger := logging.NewLogger(&logging.LoggerOptions{})

	requests := make(chan struct{}, 2)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		requests <- struct{}{}
	}))
	defer ts.Close()

	// ~200 events with maxed-out paths exceed the 64KB beacon cap.
	big := make([]dtos.PerfEventDTO, 0, 200)
	path := strings.Repeat("p", 255)
	for i := 0; i < 200; i++ {
		big = append(big, dtos.PerfEventDTO{
			Type:       dtos.EventTypeAPIRequest,
			DurationMs: 1,
			APIPath:    path,
			PagePath:   path,
			DeviceID:   "device-1",
			SessionID:  "session-1",
			Sampled:    true,
			RecordedAt: "2026-08-29T10:00:00.000Z",
		})
	}

	recorder := NewHTTPEventsRecorder(ts.URL, logger)
	if err := recorder.Record(big, true); err != nil {
		t.Error("Standard fallback should have succeeded: ", err)
	}

	// The synchronous fallback has already completed by now.
	if len(requests) != 1 {
		t.Error("Oversize beacon should fall back to exactly one standard POST")
	}
}
