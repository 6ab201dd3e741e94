// Package mutexqueue implements the bounded in-memory event queue.
package mutexqueue

import (
	"container/list"
	"sync"

	"github.com/homelinehq/perf-go-client/perftrack/service/dtos"
)

// NewPerfEventsQueue returns an instance of PerfEventsQueue
func NewPerfEventsQueue(queueSize int) *PerfEventsQueue {
	return &PerfEventsQueue{
		queue:      list.New(),
		size:       queueSize,
		mutexQueue: &sync.Mutex{},
	}
}

// PerfEventsQueue is a capped FIFO of pending measurements. Two distinct
// overflow policies apply: a fresh Push evicts the oldest element, while
// Requeue (failed delivery going back in) drops the newest elements from the
// tail so a retried batch is never evicted by younger traffic.
type PerfEventsQueue struct {
	queue      *list.List
	size       int
	mutexQueue *sync.Mutex
}

// Push appends an event. At capacity the oldest queued event is evicted to
// make room; Push itself never fails.
func (s *PerfEventsQueue) Push(event dtos.PerfEventDTO) {
	s.mutexQueue.Lock()
	defer s.mutexQueue.Unlock()

	if s.queue.Len() >= s.size {
		s.queue.Remove(s.queue.Front())
	}

	s.queue.PushBack(event)
}

// PopN pops up to N elements from the front of the queue
func (s *PerfEventsQueue) PopN(n int) []dtos.PerfEventDTO {
	s.mutexQueue.Lock()
	defer s.mutexQueue.Unlock()

	totalItems := n
	if s.queue.Len() < totalItems {
		totalItems = s.queue.Len()
	}

	toReturn := make([]dtos.PerfEventDTO, 0, totalItems)
	for i := 0; i < totalItems; i++ {
		toReturn = append(toReturn, s.queue.Remove(s.queue.Front()).(dtos.PerfEventDTO))
	}

	return toReturn
}

// Requeue reinserts a batch at the front of the queue, keeping the batch's
// internal order. If the queue overflows, the excess is truncated from the
// tail.
func (s *PerfEventsQueue) Requeue(batch []dtos.PerfEventDTO) {
	s.mutexQueue.Lock()
	defer s.mutexQueue.Unlock()

	for i := len(batch) - 1; i >= 0; i-- {
		s.queue.PushFront(batch[i])
	}

	for s.queue.Len() > s.size {
		s.queue.Remove(s.queue.Back())
	}
}

// Empty returns true if the queue holds no events
func (s *PerfEventsQueue) Empty() bool {
	s.mutexQueue.Lock()
	defer s.mutexQueue.Unlock()

	return s.queue.Len() == 0
}

// Count returns the number of queued events
func (s *PerfEventsQueue) Count() int {
	s.mutexQueue.Lock()
	defer s.mutexQueue.Unlock()

	return s.queue.Len()
}
