package client

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	maxDurationMs = 120000
	maxPathLen    = 255
	maxMethodLen  = 12
)

// validDuration reports whether a measurement is usable. Anything non-finite
// or outside [0, maxDurationMs] is discarded at the facade and never reaches
// the queue.
func validDuration(durationMs float64) bool {
	if math.IsNaN(durationMs) || math.IsInf(durationMs, 0) {
		return false
	}
	return durationMs >= 0 && durationMs <= maxDurationMs
}

func roundDuration(durationMs float64) float64 {
	return math.Round(durationMs*100) / 100
}

// sanitizeText trims and truncates a free-text field. Truncation backs up to
// a rune boundary so a multi-byte character is never split. Empty-after-trim
// values come back as "" and are omitted from the wire by the DTO tags.
func sanitizeText(value string, max int) string {
	value = strings.TrimSpace(value)
	if len(value) > max {
		cut := max
		for cut > 0 && !utf8.RuneStart(value[cut]) {
			cut--
		}
		value = value[:cut]
	}
	return value
}

func sanitizeMethod(method string) string {
	return sanitizeText(strings.ToUpper(method), maxMethodLen)
}
