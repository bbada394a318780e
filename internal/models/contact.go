package models

import (
	"fmt"
	"time"
)

type ContactStatus string

const (
	StatusNew     ContactStatus = "new"
	StatusRead    ContactStatus = "read"
	StatusReplied ContactStatus = "replied"
)

// * ParseContactStatus accepts only the closed set new/read/replied
func ParseContactStatus(raw string) (ContactStatus, error) {
	switch s := ContactStatus(raw); s {
	case StatusNew, StatusRead, StatusReplied:
		return s, nil
	}
	return "", fmt.Errorf("unknown contact status %q", raw)
}

// * CanTransitionTo reports whether a record in status s may move to next.
// * Allowed: new->read, any->replied, and re-applying the current status.
func (s ContactStatus) CanTransitionTo(next ContactStatus) bool {
	switch {
	case s == next:
		return true
	case next == StatusReplied:
		return true
	case s == StatusNew && next == StatusRead:
		return true
	}
	return false
}

// * Message left through the contact form
type Contact struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
	Status    ContactStatus `json:"status"`
}

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type StatusRequest struct {
	Status string `json:"status"`
}
