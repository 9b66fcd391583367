package models

import "time"

type Message struct {
	ID     string    `json:"id"`
	Sender Role      `json:"sender"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// Chat is the two-party channel provisioned when a DM offer is accepted.
// The message log is append-only.
type Chat struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"studentId"`
	PsychologistID string    `json:"psychologistId"`
	Accepted       bool      `json:"accepted"`
	Messages       []Message `json:"messages"`
}

// Participant reports whether the account takes part in this chat and, if so,
// which side it speaks as.
func (c *Chat) Participant(accountID string) (Role, bool) {
	switch accountID {
	case c.StudentID:
		return RoleStudent, true
	case c.PsychologistID:
		return RolePsychologist, true
	default:
		return "", false
	}
}
