package dto

import "github.com/google/uuid"

type LoginResponse struct {
	AuthURL string `json:"auth_url"`
}

type CallbackResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}
