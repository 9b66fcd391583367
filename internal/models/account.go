package models

import "time"

type Role string

const (
	RoleStudent      Role = "student"
	RolePsychologist Role = "psychologist"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RolePsychologist
}

// PendingDm mirrors a pending DmRequest onto the post author's account so the
// author can discover offers without scanning every post.
type PendingDm struct {
	PostID             string `json:"postId"`
	FromPsychologistID string `json:"fromPsychologistId"`
	RequestID          string `json:"requestId"`
}

type Account struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Role         Role        `json:"role"`
	AliasSeed    string      `json:"aliasSeed"`
	PasswordHash string      `json:"passwordHash"`
	PendingDm    []PendingDm `json:"pendingDm"`
	CreatedAt    time.Time   `json:"createdAt"`
}
