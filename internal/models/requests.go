package models

// RegisterRequest represents a sign-up request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

// LoginRequest represents a sign-in request.
// Login accepts an email or a username.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// ChangeRoleRequest represents an owner changing a user's role
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// SubmitModerationRequest represents a moderator proposing a ban or removal
type SubmitModerationRequest struct {
	TargetUserID string `json:"targetUserId"`
	ActionType   string `json:"actionType"`
	Reason       string `json:"reason"`
}

// DecisionRequest represents an owner deciding a pending request
type DecisionRequest struct {
	Decision string `json:"decision"` // "approve" or "reject"
}

// DashboardResponse is the caller's profile together with their
// effective role.
type DashboardResponse struct {
	Profile *Profile `json:"profile"`
	Role    Role     `json:"role"`
}

// UserListItem is one row of the user management table
type UserListItem struct {
	Profile
	Role Role `json:"role"`
}

// DecisionResponse reports the outcome of a moderation decision.
// Warning is set when the request was approved but the follow-up
// account deletion failed.
type DecisionResponse struct {
	Request *ModerationRequest `json:"request"`
	Warning string             `json:"warning,omitempty"`
}
