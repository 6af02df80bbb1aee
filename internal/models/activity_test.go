package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActivityCloneDoesNotShareRoster(t *testing.T) {
	original := Activity{Name: "Chess Club", Participants: []string{"michael@mergington.edu"}}

	clone := original.Clone()
	clone.Participants[0] = "someone@else.edu"
	clone.Participants = append(clone.Participants, "new@mergington.edu")

	require.Equal(t, []string{"michael@mergington.edu"}, original.Participants)
	require.True(t, original.HasParticipant("michael@mergington.edu"))
	require.False(t, original.HasParticipant("new@mergington.edu"))
}

func TestActivityCloneOfEmptyRosterIsNotNil(t *testing.T) {
	clone := Activity{Name: "Art Club"}.Clone()
	require.NotNil(t, clone.Participants)
	require.Empty(t, clone.Participants)
}
