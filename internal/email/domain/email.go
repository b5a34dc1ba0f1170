package domain

import (
	"strings"
	"time"
)

// Email categories assigned by the analyzer. An empty category means the
// message has not been classified yet; it is stored as CategoryOther on first
// insert and never overwrites an existing classification on re-sync.
const (
	CategoryInterviewRequest  = "interview_request"
	CategoryJobOffer          = "job_offer"
	CategoryApplicationUpdate = "application_update"
	CategoryRejection         = "rejection"
	CategoryOther             = "other"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Email is one stored inbox message, unique per (user email, message id).
type Email struct {
	ID        string `json:"-" gorm:"primaryKey"`
	UserEmail string `json:"-" gorm:"uniqueIndex:idx_user_message;not null"`
	// MessageID is the provider-assigned external id.
	MessageID string `json:"id" gorm:"uniqueIndex:idx_user_message;not null"`

	Sender  string    `json:"sender"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Date    time.Time `json:"date"`
	IsRead  bool      `json:"is_read"`

	Category        string `json:"category"`
	Priority        string `json:"priority"`
	Summary         string `json:"summary,omitempty"`
	SuggestedAction string `json:"suggested_action,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IncomingEmail is a message as fetched from the mailbox provider, with
// classification fields left empty until the analyzer fills them in.
type IncomingEmail struct {
	MessageID    string `json:"id"`
	Sender       string `json:"sender"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	ProviderDate string `json:"date"`

	Category        string `json:"category,omitempty"`
	Priority        string `json:"priority,omitempty"`
	Summary         string `json:"summary,omitempty"`
	SuggestedAction string `json:"suggested_action,omitempty"`
}

// Classified reports whether the analyzer produced a label for this message.
func (m *IncomingEmail) Classified() bool {
	return m.Category != ""
}

// EmailAnalysis is one classification result keyed by message id, as returned
// by the AI analyzer before it is merged back onto the incoming batch.
type EmailAnalysis struct {
	MessageID       string `json:"id"`
	Category        string `json:"category"`
	Priority        string `json:"priority"`
	Summary         string `json:"summary"`
	SuggestedAction string `json:"suggestedAction"`
}

// NormalizeCategory lowercases and validates a model-produced category.
// Unknown values collapse to CategoryOther so the enum stays closed.
func NormalizeCategory(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case CategoryInterviewRequest:
		return CategoryInterviewRequest
	case CategoryJobOffer:
		return CategoryJobOffer
	case CategoryApplicationUpdate:
		return CategoryApplicationUpdate
	case CategoryRejection:
		return CategoryRejection
	default:
		return CategoryOther
	}
}

// NormalizePriority lowercases and validates a model-produced priority,
// defaulting to medium.
func NormalizePriority(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// NewEmailRow builds the stored row for a message seen for the first time.
// Unclassified messages get the default category and priority; the read flag
// always starts false.
func NewEmailRow(userEmail string, in *Email, now time.Time) *Email {
	row := *in
	row.UserEmail = userEmail
	row.IsRead = false
	if row.Category == "" {
		row.Category = CategoryOther
	}
	if row.Priority == "" {
		row.Priority = PriorityMedium
	}
	row.CreatedAt = now
	row.UpdatedAt = now
	return &row
}

// MergeEmailRow applies a re-synced message onto its stored row. Content
// fields are overwritten; the read flag and creation timestamp are preserved;
// classification fields are overwritten only when the incoming row carries a
// classification, so a failed or partial analysis never downgrades an email
// that was classified on an earlier sync.
func MergeEmailRow(existing *Email, in *Email, now time.Time) {
	existing.Sender = in.Sender
	existing.Subject = in.Subject
	existing.Body = in.Body
	existing.Date = in.Date
	if in.Category != "" {
		existing.Category = in.Category
		existing.Priority = in.Priority
		existing.Summary = in.Summary
		existing.SuggestedAction = in.SuggestedAction
	}
	existing.UpdatedAt = now
}
