// Package client contains the perf tracker public surface and the factory
// used to instantiate it.
package client

import (
	"sync"
	"time"

	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/homelinehq/perf-go-client/perftrack/conf"
	"github.com/homelinehq/perf-go-client/perftrack/identity"
	"github.com/homelinehq/perf-go-client/perftrack/service"
	"github.com/homelinehq/perf-go-client/perftrack/service/dtos"
	"github.com/homelinehq/perf-go-client/perftrack/storage/mutexqueue"
)

const recordedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// APIMetric describes one measured API call. ServerDurationMs and StatusCode
// are optional; nil means not observed.
type APIMetric struct {
	PagePath         string
	APIPath          string
	Method           string
	DurationMs       float64
	ServerDurationMs *float64
	StatusCode       *int
	OK               bool
	RequestID        string
}

// PageLoadMetric describes one measured page load.
type PageLoadMetric struct {
	PagePath   string
	DurationMs float64
	OK         bool
}

// PerfTracker is the single owner of the telemetry pipeline state: the event
// queue, the pending flush timer and the identity provider. The tracking
// methods never return errors and never block the caller on network I/O;
// telemetry loss is acceptable, telemetry interference is not.
type PerfTracker struct {
	cfg      *conf.PerfConfig
	logger   logging.LoggerInterface
	identity *identity.Provider
	recorder service.EventsRecorder
	events   *mutexqueue.PerfEventsQueue
	notifier LifecycleNotifier

	timerMutex sync.Mutex
	flushTimer *time.Timer

	flushMutex sync.Mutex

	bindOnce sync.Once
}

// TrackAPIPerformance records the timing of one API call. Calls with an
// out-of-range duration are silently discarded.
func (c *PerfTracker) TrackAPIPerformance(metric APIMetric) {
	if !validDuration(metric.DurationMs) {
		return
	}

	event := dtos.PerfEventDTO{
		Type:       dtos.EventTypeAPIRequest,
		DurationMs: roundDuration(metric.DurationMs),
		PagePath:   sanitizeText(metric.PagePath, maxPathLen),
		APIPath:    sanitizeText(metric.APIPath, maxPathLen),
		Method:     sanitizeMethod(metric.Method),
		OK:         metric.OK,
		RequestID:  sanitizeText(metric.RequestID, maxPathLen),
		AppVersion: c.cfg.AppVersion,
		RecordedAt: time.Now().UTC().Format(recordedAtLayout),
	}
	if metric.ServerDurationMs != nil {
		rounded := roundDuration(*metric.ServerDurationMs)
		event.ServerDurationMs = &rounded
	}
	if metric.StatusCode != nil {
		code := *metric.StatusCode
		event.StatusCode = &code
	}

	c.enqueue(event)
}

// TrackPageLoadPerformance records the timing of one page load. Calls with an
// out-of-range duration are silently discarded.
func (c *PerfTracker) TrackPageLoadPerformance(metric PageLoadMetric) {
	if !validDuration(metric.DurationMs) {
		return
	}

	c.enqueue(dtos.PerfEventDTO{
		Type:       dtos.EventTypePageLoad,
		DurationMs: roundDuration(metric.DurationMs),
		PagePath:   sanitizeText(metric.PagePath, maxPathLen),
		OK:         metric.OK,
		AppVersion: c.cfg.AppVersion,
		RecordedAt: time.Now().UTC().Format(recordedAtLayout),
	})
}

// NotifyHidden signals that the host went to background. Queued events are
// flushed immediately in fire-and-forget mode.
func (c *PerfTracker) NotifyHidden() {
	c.flushQueue(true)
}

// NotifyUnload signals that the host is going away. Queued events are flushed
// in fire-and-forget mode and detached sends are awaited briefly, since
// nothing survives the process.
func (c *PerfTracker) NotifyUnload() {
	c.terminalFlush()
}

// Flush forces one standard delivery attempt and waits for its outcome.
func (c *PerfTracker) Flush() {
	c.flushQueue(false)
}

// Shutdown stops the flush timer and drains the queue best-effort in
// fire-and-forget mode. The drain stops as soon as an attempt makes no
// progress; whatever is still queued at that point is dropped.
func (c *PerfTracker) Shutdown() {
	c.stopFlushTimer()

	for !c.events.Empty() {
		before := c.events.Count()
		c.flushQueue(true)
		if c.events.Count() >= before {
			break
		}
	}

	c.awaitDelivery()
}
