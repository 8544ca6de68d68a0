package entity

import (
	"time"

	"github.com/google/uuid"
)

// SystemLog is an audit row written by the domain event consumer.
type SystemLog struct {
	Id        uuid.UUID
	EventType string
	Details   map[string]interface{}
	CreatedAt time.Time
}
