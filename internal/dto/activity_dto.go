package dto

import (
	"fmt"
	"time"

	"github.com/noah-isme/gema-activities/internal/models"
)

// ActivityResponse is the public shape of an activity record. The name is the key of the enclosing map.
type ActivityResponse struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// ActivityListResponse maps activity name to its record.
type ActivityListResponse map[string]ActivityResponse

// NewActivityResponse converts a stored activity into its response shape.
func NewActivityResponse(activity models.Activity) ActivityResponse {
	participants := make([]string, len(activity.Participants))
	copy(participants, activity.Participants)

	return ActivityResponse{
		Description:     activity.Description,
		Schedule:        activity.Schedule,
		MaxParticipants: activity.MaxParticipants,
		Participants:    participants,
	}
}

// NewActivityListResponse converts a slice of activities into the keyed listing.
func NewActivityListResponse(activities []models.Activity) ActivityListResponse {
	result := make(ActivityListResponse, len(activities))
	for _, activity := range activities {
		result[activity.Name] = NewActivityResponse(activity)
	}
	return result
}

// SignupRequest carries the inputs of a roster signup.
type SignupRequest struct {
	Activity string `json:"activity" validate:"required"`
	Email    string `json:"email" validate:"required"`
}

// UnregisterRequest carries the inputs of a roster removal.
type UnregisterRequest struct {
	Activity string `json:"activity" validate:"required"`
	Email    string `json:"email" validate:"required"`
}

// MessageResponse is the confirmation payload for roster mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewSignedUpMessage builds the signup confirmation.
func NewSignedUpMessage(email, activity string) MessageResponse {
	return MessageResponse{Message: fmt.Sprintf("Signed up %s for %s", email, activity)}
}

// NewUnregisteredMessage builds the unregister confirmation.
func NewUnregisteredMessage(email, activity string) MessageResponse {
	return MessageResponse{Message: fmt.Sprintf("Unregistered %s from %s", email, activity)}
}

const (
	// RosterEventSignedUp is emitted after a participant joins an activity.
	RosterEventSignedUp = "participant.signed_up"
	// RosterEventUnregistered is emitted after a participant leaves an activity.
	RosterEventUnregistered = "participant.unregistered"
)

// RosterEvent describes a change to an activity roster.
type RosterEvent struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Activity     string    `json:"activity"`
	Email        string    `json:"email"`
	Participants int       `json:"participants"`
	OccurredAt   time.Time `json:"occurred_at"`
}
