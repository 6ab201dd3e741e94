package conf

const (
	defaultSampleRate      = 0.1
	defaultBatchSize       = 20
	defaultFlushIntervalMs = 15000

	minBatchSize = 1
	maxBatchSize = 200

	minFlushIntervalMs = 1000
	maxFlushIntervalMs = 60000
)

// QueueLimit is the hard cap on queued events. It is deliberately not
// configurable: the queue is the worst-case memory bound when the collection
// endpoint is down.
const QueueLimit = 1000
