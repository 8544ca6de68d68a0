package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Credential struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_credentials_user_provider"`
	ProviderId string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_credentials_user_provider"`
	Secret     string    `gorm:"type:text;not null"` // sealed, never plaintext
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Credential) TableName() string {
	return "credentials"
}

type CustomProvider struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId              uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type                string         `gorm:"type:varchar(20);not null"`
	Endpoint            string         `gorm:"type:text"`
	Name                string         `gorm:"type:text"`
	SupportsAttachments bool           `gorm:"not null;default:false"`
	Capabilities        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt           time.Time      `gorm:"autoCreateTime"`
}

func (CustomProvider) TableName() string {
	return "custom_providers"
}
