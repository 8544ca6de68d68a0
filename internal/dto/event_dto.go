package dto

import "time"

// EventEnvelope is the wire form of a domain event on the in-process bus.
type EventEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
