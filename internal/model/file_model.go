package model

import (
	"time"

	"github.com/google/uuid"
)

type Attachment struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null"`
	MessageId   *uuid.UUID `gorm:"type:uuid;index"`
	URL         string     `gorm:"type:text;not null"`
	ContentType string     `gorm:"type:varchar(100)"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
}

func (Attachment) TableName() string {
	return "attachments"
}

type GeneratedFile struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	URL         string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (GeneratedFile) TableName() string {
	return "generated_files"
}
