package models

import "time"

// Profile is the public identity record shown on the dashboard.
type Profile struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileSnippet is the short profile form embedded in moderation
// request listings. Email is filled for targets only.
type ProfileSnippet struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// UnknownProfileSnippet is the placeholder used when a request
// references a user whose profile no longer exists.
func UnknownProfileSnippet() ProfileSnippet {
	return ProfileSnippet{FullName: "Unknown", Username: "unknown"}
}
