package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, CategoryInterviewRequest, NormalizeCategory("interview_request"))
	assert.Equal(t, CategoryJobOffer, NormalizeCategory(" Job_Offer "))
	assert.Equal(t, CategoryRejection, NormalizeCategory("REJECTION"))
	assert.Equal(t, CategoryOther, NormalizeCategory("spam"))
	assert.Equal(t, CategoryOther, NormalizeCategory(""))
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, NormalizePriority("HIGH"))
	assert.Equal(t, PriorityLow, NormalizePriority("low"))
	assert.Equal(t, PriorityMedium, NormalizePriority("medium"))
	assert.Equal(t, PriorityMedium, NormalizePriority("urgent"))
	assert.Equal(t, PriorityMedium, NormalizePriority(""))
}

func TestNewEmailRowDefaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	row := NewEmailRow("user@example.com", &Email{
		MessageID: "msg-1",
		Sender:    "hr@corp.io",
		Subject:   "Interview",
		IsRead:    true,
	}, now)

	assert.Equal(t, "user@example.com", row.UserEmail)
	assert.Equal(t, CategoryOther, row.Category)
	assert.Equal(t, PriorityMedium, row.Priority)
	assert.False(t, row.IsRead, "new rows always start unread")
	assert.Equal(t, now, row.CreatedAt)
	assert.Equal(t, now, row.UpdatedAt)
}

func TestNewEmailRowKeepsClassification(t *testing.T) {
	now := time.Now()

	row := NewEmailRow("user@example.com", &Email{
		MessageID: "msg-1",
		Category:  CategoryJobOffer,
		Priority:  PriorityHigh,
	}, now)

	assert.Equal(t, CategoryJobOffer, row.Category)
	assert.Equal(t, PriorityHigh, row.Priority)
}

func TestMergeEmailRowPreservesReadStateAndCreation(t *testing.T) {
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	existing := &Email{
		UserEmail: "user@example.com",
		MessageID: "msg-1",
		Subject:   "old subject",
		IsRead:    true,
		Category:  CategoryInterviewRequest,
		Priority:  PriorityHigh,
		Summary:   "call scheduled",
		CreatedAt: created,
	}

	MergeEmailRow(existing, &Email{
		MessageID: "msg-1",
		Sender:    "hr@corp.io",
		Subject:   "new subject",
		Body:      "updated body",
	}, now)

	assert.Equal(t, "new subject", existing.Subject)
	assert.Equal(t, "updated body", existing.Body)
	assert.True(t, existing.IsRead, "read state must survive a re-sync")
	assert.Equal(t, created, existing.CreatedAt)
	assert.Equal(t, now, existing.UpdatedAt)
}

func TestMergeEmailRowPreservesClassificationOnMiss(t *testing.T) {
	existing := &Email{
		MessageID:       "msg-1",
		Category:        CategoryJobOffer,
		Priority:        PriorityHigh,
		Summary:         "offer received",
		SuggestedAction: "review offer letter",
	}

	// Incoming row without a classification must not downgrade the stored one.
	MergeEmailRow(existing, &Email{MessageID: "msg-1", Subject: "re-synced"}, time.Now())

	assert.Equal(t, CategoryJobOffer, existing.Category)
	assert.Equal(t, PriorityHigh, existing.Priority)
	assert.Equal(t, "offer received", existing.Summary)
	assert.Equal(t, "review offer letter", existing.SuggestedAction)
}

func TestMergeEmailRowOverwritesClassificationWhenPresent(t *testing.T) {
	existing := &Email{
		MessageID: "msg-1",
		Category:  CategoryOther,
		Priority:  PriorityMedium,
	}

	MergeEmailRow(existing, &Email{
		MessageID:       "msg-1",
		Category:        CategoryRejection,
		Priority:        PriorityLow,
		Summary:         "not moving forward",
		SuggestedAction: "keep applying",
	}, time.Now())

	assert.Equal(t, CategoryRejection, existing.Category)
	assert.Equal(t, PriorityLow, existing.Priority)
	assert.Equal(t, "not moving forward", existing.Summary)
}
