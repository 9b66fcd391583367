package models

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// Terminal reports whether the status can no longer change.
func (s RequestStatus) Terminal() bool {
	return s == RequestAccepted || s == RequestRejected
}

// DmRequest is a psychologist's offer to talk privately with a post's author.
// At most one exists per (post, psychologist) pair, regardless of status.
type DmRequest struct {
	ID             string        `json:"id"`
	PsychologistID string        `json:"psychologistId"`
	Status         RequestStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	AliasSeed string    `json:"aliasSeed"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post carries its own alias seed, independent of the author account's seed,
// so two posts by the same author resolve to unrelated aliases.
type Post struct {
	ID         string      `json:"id"`
	AuthorID   string      `json:"authorId"`
	AliasSeed  string      `json:"aliasSeed"`
	Text       string      `json:"text"`
	Likes      int         `json:"likes"`
	Reports    int         `json:"reports"`
	CreatedAt  time.Time   `json:"createdAt"`
	Comments   []Comment   `json:"comments"`
	DmRequests []DmRequest `json:"dmRequests"`
}

// RequestByPsychologist returns the request made by the given psychologist,
// if any. Pointer into the post's slice; mutations stick.
func (p *Post) RequestByPsychologist(psychologistID string) *DmRequest {
	for i := range p.DmRequests {
		if p.DmRequests[i].PsychologistID == psychologistID {
			return &p.DmRequests[i]
		}
	}
	return nil
}

// RequestByID returns the request with the given id, if any.
func (p *Post) RequestByID(requestID string) *DmRequest {
	for i := range p.DmRequests {
		if p.DmRequests[i].ID == requestID {
			return &p.DmRequests[i]
		}
	}
	return nil
}
