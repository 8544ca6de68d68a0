package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is an uploaded file stored in object storage. It is created at
// upload time, before the message that references it; MessageId is linked
// when that message is created.
type Attachment struct {
	Id          uuid.UUID
	ChatId      uuid.UUID
	UserId      uuid.UUID
	MessageId   *uuid.UUID
	URL         string
	ContentType string
	CreatedAt   time.Time
}

// GeneratedFile is an image-generation output. Independent of any chat.
type GeneratedFile struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	URL         string
	Description string
	CreatedAt   time.Time
}
