package contact

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Submission statuses.
const (
	StatusNew      = "New"
	StatusRead     = "Read"
	StatusReplied  = "Replied"
	StatusArchived = "Archived"
)

// PhoneNotProvided is stored when the submitter left the phone empty.
const PhoneNotProvided = "Not provided"

type Submission struct {
	bun.BaseModel `bun:"table:contact_submissions,alias:cs"`

	ID        string    `bun:"submission_id,pk" json:"submissionId"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull" json:"email"`
	Phone     string    `bun:"phone,notnull" json:"phone"`
	Subject   string    `bun:"subject,notnull" json:"subject"`
	Message   string    `bun:"message,notnull" json:"message"`
	Status    string    `bun:"status,notnull" json:"status"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"timestamp"`
}

// SubmitRequest is the body accepted by POST /contact, JSON or form encoded.
type SubmitRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// Normalize trims surrounding whitespace from every field.
func (r SubmitRequest) Normalize() SubmitRequest {
	return SubmitRequest{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Phone:   strings.TrimSpace(r.Phone),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	}
}

// SubmitResponse is the JSON reply to POST /contact.
type SubmitResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=New Read Replied Archived"`
}

// ListFilter narrows GET /admin/submissions.
type ListFilter struct {
	Status string
	Limit  int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// SubmissionEvent is published after a submission is stored.
type SubmissionEvent struct {
	SubmissionID string    `json:"submissionId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Subject      string    `json:"subject"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewSubmissionEvent(s *Submission) SubmissionEvent {
	return SubmissionEvent{
		SubmissionID: s.ID,
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.Phone,
		Subject:      s.Subject,
		Message:      s.Message,
		Timestamp:    s.CreatedAt,
	}
}
