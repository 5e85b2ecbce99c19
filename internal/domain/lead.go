package domain

import "context"

// LeadKind distinguishes why a visitor left contact details.
type LeadKind string

const (
	LeadEmailCapture LeadKind = "email_capture"
	LeadConsultation LeadKind = "consultation"
)

// Lead is a funnel outcome worth following up on.
type Lead struct {
	ID        LeadID    `json:"id"`
	SessionID SessionID `json:"session_id"`
	Kind      LeadKind  `json:"kind"`
	Email     string    `json:"email,omitempty"`
	JourneyID string    `json:"journey_id,omitempty"`
	CourseIDs []string  `json:"course_ids,omitempty"`
	Language  Language  `json:"language,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// LeadStore defines the minimum operations to persist leads
type LeadStore interface {
	AppendLead(ctx context.Context, lead *Lead) error
	ListLeads(ctx context.Context, limit int) ([]*Lead, error)
}
