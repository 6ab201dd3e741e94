package client

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// LifecycleNotifier is the seam through which the host signals that it is
// about to go to background or terminate. The tracker binds its handlers
// lazily on the first enqueued event, so hosts that never produce telemetry
// never pay for the registration.
type LifecycleNotifier interface {
	// OnHidden registers a handler for the host going to background.
	OnHidden(handler func())
	// OnUnload registers a handler for the host shutting down.
	OnUnload(handler func())
}

// SignalNotifier adapts termination signals to the unload handler, so a plain
// Go process still gets a terminal best-effort flush. There is no backgrounded
// analog for a process, so hidden handlers are ignored.
type SignalNotifier struct {
	signals  []os.Signal
	mutex    sync.Mutex
	handlers []func()
	once     sync.Once
}

// NewSignalNotifier returns a SignalNotifier listening for the given signals,
// defaulting to SIGINT and SIGTERM.
func NewSignalNotifier(signals ...os.Signal) *SignalNotifier {
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	return &SignalNotifier{signals: signals}
}

// OnHidden is a no-op for process-level lifecycles
func (s *SignalNotifier) OnHidden(handler func()) {}

// OnUnload arms the signal listener on first registration
func (s *SignalNotifier) OnUnload(handler func()) {
	s.mutex.Lock()
	s.handlers = append(s.handlers, handler)
	s.mutex.Unlock()

	s.once.Do(func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, s.signals...)
		go func() {
			sig := <-ch
			signal.Stop(ch)
			s.mutex.Lock()
			handlers := append([]func(){}, s.handlers...)
			s.mutex.Unlock()
			for _, h := range handlers {
				h()
			}
			// Hand the signal back so the host terminates as usual.
			if p, err := os.FindProcess(os.Getpid()); err == nil {
				p.Signal(sig)
			}
		}()
	})
}

// ManualNotifier is a LifecycleNotifier driven entirely by explicit Hidden /
// Unload calls. Embedders that already track their own lifecycle (or tests)
// use it to fan the transitions into the tracker.
type ManualNotifier struct {
	mutex    sync.Mutex
	onHidden []func()
	onUnload []func()
}

// NewManualNotifier returns an empty ManualNotifier
func NewManualNotifier() *ManualNotifier {
	return &ManualNotifier{}
}

// OnHidden registers a hidden handler
func (m *ManualNotifier) OnHidden(handler func()) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.onHidden = append(m.onHidden, handler)
}

// OnUnload registers an unload handler
func (m *ManualNotifier) OnUnload(handler func()) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.onUnload = append(m.onUnload, handler)
}

// Hidden fires the hidden handlers
func (m *ManualNotifier) Hidden() {
	m.mutex.Lock()
	handlers := append([]func(){}, m.onHidden...)
	m.mutex.Unlock()
	for _, h := range handlers {
		h()
	}
}

// Unload fires the unload handlers
func (m *ManualNotifier) Unload() {
	m.mutex.Lock()
	handlers := append([]func(){}, m.onUnload...)
	m.mutex.Unlock()
	for _, h := range handlers {
		h()
	}
}
