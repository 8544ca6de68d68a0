package model

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"` // owner, checked on every access
	Model     string    `gorm:"type:text;not null"`
	ModelType string    `gorm:"type:varchar(20);not null;default:'provider'"`
	Endpoint  string    `gorm:"type:text"`
	Name      string    `gorm:"type:text"`
	Public    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Chat) TableName() string {
	return "chats"
}

type Message struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserId       uuid.UUID  `gorm:"type:uuid;not null"`
	Role         string     `gorm:"type:varchar(20);not null"`
	Content      string     `gorm:"type:text;not null"`
	AttachmentId *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}

type StreamCheckpoint struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId    uuid.UUID `gorm:"type:uuid;not null;index"`
	StreamId  string    `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"` // janitor expires by age
}

func (StreamCheckpoint) TableName() string {
	return "stream_checkpoints"
}
