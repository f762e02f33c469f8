package models

import "time"

// User is an authentication identity. Display data lives in Profile.
type User struct {
	ID           string    `json:"id"` // UUID
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	CreatedAt    time.Time `json:"createdAt"`
}

// UserToken represents a stored refresh token for a user
type UserToken struct {
	ID     int64  `json:"id"`
	UserID string `json:"userId"`
	Token  string `json:"token"`
}
