package client

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NewRequestID returns an opaque identifier suitable for correlating an API
// call with its server-side trace.
func NewRequestID() string {
	return uuid.NewString()
}

// ParseServerTiming extracts the dur value of the named metric from a
// Server-Timing style header ("db;dur=12.3, app;dur=45"). It returns false
// when the metric is absent or its duration cannot be parsed.
func ParseServerTiming(header string, metric string) (float64, bool) {
	for _, entry := range strings.Split(header, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ";")
		if strings.TrimSpace(parts[0]) != metric {
			continue
		}
		for _, attr := range parts[1:] {
			value, found := strings.CutPrefix(strings.TrimSpace(attr), "dur=")
			if !found {
				continue
			}
			dur, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return 0, false
			}
			return dur, true
		}
	}
	return 0, false
}
