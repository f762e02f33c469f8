package models

import "time"

// ActionType is the action a moderation request proposes.
type ActionType string

const (
	ActionBan    ActionType = "ban"
	ActionRemove ActionType = "remove"
)

// ParseActionType converts a string into an ActionType.
func ParseActionType(s string) (ActionType, error) {
	switch ActionType(s) {
	case ActionBan, ActionRemove:
		return ActionType(s), nil
	}
	return "", &InvalidValueError{Field: "actionType", Value: s}
}

// RequestStatus is the review state of a moderation request.
// Transitions go pending -> approved or pending -> rejected, never back.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// ModerationRequest is a proposed ban or removal awaiting owner decision.
type ModerationRequest struct {
	ID           int64         `json:"id"`
	TargetUserID string        `json:"targetUserId"`
	RequesterID  string        `json:"requesterId"`
	ActionType   ActionType    `json:"actionType"`
	Reason       string        `json:"reason"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	ReviewedAt   *time.Time    `json:"reviewedAt"`
}

// ModerationRequestView is a request hydrated with profile snippets for
// its target and requester.
type ModerationRequestView struct {
	ModerationRequest
	TargetUser ProfileSnippet `json:"targetUser"`
	Requester  ProfileSnippet `json:"requester"`
}

// InvalidValueError reports a client-supplied value outside its enum.
type InvalidValueError struct {
	Field string
	Value string
}

func (e *InvalidValueError) Error() string {
	return "invalid " + e.Field + ": " + e.Value
}
