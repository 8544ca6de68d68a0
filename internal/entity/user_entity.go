package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is created lazily on first authenticated visit. Subject is the
// external identity provider's stable subject id ("sub" claim).
type User struct {
	Id        uuid.UUID
	Subject   string
	Email     string
	FullName  string
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
