package client

import (
	"time"

	"github.com/homelinehq/perf-go-client/perftrack/service"
	"github.com/homelinehq/perf-go-client/perftrack/service/dtos"
)

// How long terminal flush paths wait for detached deliveries before giving
// up and letting the process go.
const terminalDrainTimeout = 3 * time.Second

// enqueue runs the admission path for a normalized event: sampling gate,
// identity stamping, capped append, lazy lifecycle binding and flush
// triggering. It never blocks on the network.
func (c *PerfTracker) enqueue(event dtos.PerfEventDTO) {
	if !c.identity.SampledSession() {
		return
	}

	event.DeviceID = c.identity.DeviceID()
	event.DeviceName = c.identity.DeviceName()
	event.SessionID = c.identity.SessionID()
	event.Sampled = true

	c.events.Push(event)

	c.bindOnce.Do(c.bindLifecycle)

	if c.events.Count() >= c.cfg.BatchSize {
		go c.flushQueue(false)
	} else {
		c.scheduleFlush()
	}
}

func (c *PerfTracker) bindLifecycle() {
	if c.notifier == nil {
		return
	}
	c.notifier.OnHidden(func() { c.flushQueue(true) })
	c.notifier.OnUnload(func() { c.terminalFlush() })
}

// terminalFlush is the unload path: one fire-and-forget attempt, then a
// bounded wait for the detached sends. The host is about to exit; without the
// wait an accepted beacon would be killed before its bytes hit the wire.
func (c *PerfTracker) terminalFlush() {
	c.flushQueue(true)
	c.awaitDelivery()
}

func (c *PerfTracker) awaitDelivery() {
	drainable, ok := c.recorder.(service.DrainableRecorder)
	if !ok {
		return
	}
	if !drainable.Drain(terminalDrainTimeout) {
		c.logger.Warning("Timed out waiting for in-flight event deliveries")
	}
}

// scheduleFlush arms the delayed flush timer. At most one timer is pending at
// any time; while one is armed this is a no-op.
func (c *PerfTracker) scheduleFlush() {
	c.timerMutex.Lock()
	defer c.timerMutex.Unlock()

	if c.flushTimer != nil {
		return
	}

	c.flushTimer = time.AfterFunc(time.Duration(c.cfg.FlushIntervalMs)*time.Millisecond, func() {
		c.timerMutex.Lock()
		c.flushTimer = nil
		c.timerMutex.Unlock()
		c.flushQueue(false)
	})
}

func (c *PerfTracker) stopFlushTimer() {
	c.timerMutex.Lock()
	defer c.timerMutex.Unlock()

	if c.flushTimer != nil {
		c.flushTimer.Stop()
		c.flushTimer = nil
	}
}

// flushQueue performs one delivery attempt. The mutex serializes timer-,
// threshold- and lifecycle-triggered attempts so they never race on the
// queue.
//
// A failed batch goes back to the front of the queue in its original order;
// only non-beacon attempts reschedule, since lifecycle attempts are terminal.
func (c *PerfTracker) flushQueue(useBeacon bool) {
	c.flushMutex.Lock()
	defer c.flushMutex.Unlock()

	if c.events.Empty() {
		return
	}

	batch := c.events.PopN(c.cfg.BatchSize)

	err := c.recorder.Record(batch, useBeacon)
	if err != nil {
		c.logger.Warning("Event delivery failed, requeueing batch: ", err.Error())
		c.events.Requeue(batch)
		if !useBeacon {
			c.scheduleFlush()
		}
		return
	}

	// Keep draining while backlog exists; timer-paced again once empty.
	if !c.events.Empty() && !useBeacon {
		c.scheduleFlush()
	}
}
