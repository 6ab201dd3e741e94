// Package dtos contains the wire structures exchanged with the collection
// service.
package dtos

//
// Performance event DTOs
//

// Event type discriminators. Exactly two kinds of measurement exist.
const (
	EventTypeAPIRequest = "api_request"
	EventTypePageLoad   = "page_load"
)

// PerfEventDTO struct mapping a single queued measurement json
type PerfEventDTO struct {
	Type             string   `json:"type"`
	DurationMs       float64  `json:"duration_ms"`
	PagePath         string   `json:"page_path,omitempty"`
	APIPath          string   `json:"api_path,omitempty"`
	Method           string   `json:"method,omitempty"`
	ServerDurationMs *float64 `json:"server_duration_ms,omitempty"`
	StatusCode       *int     `json:"status_code,omitempty"`
	OK               bool     `json:"ok"`
	RequestID        string   `json:"request_id,omitempty"`
	DeviceID         string   `json:"device_id"`
	DeviceName       string   `json:"device_name,omitempty"`
	AppVersion       string   `json:"app_version,omitempty"`
	SessionID        string   `json:"session_id"`
	Sampled          bool     `json:"sampled"`
	RecordedAt       string   `json:"recorded_at"`
}

// EventEnvelopeDTO is the single envelope a delivery attempt posts
type EventEnvelopeDTO struct {
	Events []PerfEventDTO `json:"events"`
}
