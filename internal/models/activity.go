package models

// Activity is an extracurricular offering students can sign up for.
type Activity struct {
	Name            string   `json:"name" mapstructure:"name"`
	Description     string   `json:"description" mapstructure:"description"`
	Schedule        string   `json:"schedule" mapstructure:"schedule"`
	MaxParticipants int      `json:"max_participants" mapstructure:"max_participants"`
	Participants    []string `json:"participants" mapstructure:"participants"`
}

// HasParticipant reports whether email is on the roster.
func (a Activity) HasParticipant(email string) bool {
	for _, participant := range a.Participants {
		if participant == email {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share the participants backing array.
func (a Activity) Clone() Activity {
	clone := a
	clone.Participants = make([]string, len(a.Participants))
	copy(clone.Participants, a.Participants)
	return clone
}
