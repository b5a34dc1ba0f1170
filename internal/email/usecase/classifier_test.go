package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	emaildomain "jobsense-backend/internal/email/domain"
)

type stubAnalyzer struct {
	analyses []emaildomain.EmailAnalysis
	err      error
	gotMsgs  []emaildomain.IncomingEmail
}

func (s *stubAnalyzer) AnalyzeEmails(ctx context.Context, userEmail string, msgs []emaildomain.IncomingEmail) ([]emaildomain.EmailAnalysis, error) {
	s.gotMsgs = msgs
	return s.analyses, s.err
}

func TestClassifyMergesResultsByID(t *testing.T) {
	analyzer := &stubAnalyzer{
		analyses: []emaildomain.EmailAnalysis{
			{MessageID: "1", Category: "interview_request", Priority: "high", Summary: "screen next week", SuggestedAction: "reply with availability"},
			{MessageID: "2", Category: "REJECTION", Priority: "bogus"},
		},
	}
	c := NewClassifier(analyzer)

	batch := []emaildomain.IncomingEmail{
		{MessageID: "1", Subject: "Interview"},
		{MessageID: "2", Subject: "Status"},
		{MessageID: "3", Subject: "Newsletter"},
	}

	out := c.Classify(context.Background(), "user@example.com", batch)

	assert.Equal(t, emaildomain.CategoryInterviewRequest, out[0].Category)
	assert.Equal(t, emaildomain.PriorityHigh, out[0].Priority)
	assert.Equal(t, "screen next week", out[0].Summary)

	// Enum values are normalized, unknown priority defaults to medium.
	assert.Equal(t, emaildomain.CategoryRejection, out[1].Category)
	assert.Equal(t, emaildomain.PriorityMedium, out[1].Priority)

	// Message the analyzer skipped stays unclassified.
	assert.Empty(t, out[2].Category)
}

func TestClassifyAnalyzerFailureDegrades(t *testing.T) {
	c := NewClassifier(&stubAnalyzer{err: errors.New("quota exceeded")})

	batch := []emaildomain.IncomingEmail{
		{MessageID: "1", Subject: "Interview"},
	}
	out := c.Classify(context.Background(), "user@example.com", batch)

	assert.Len(t, out, 1)
	assert.Empty(t, out[0].Category, "failed analysis leaves the batch unclassified")
}

func TestClassifyIgnoresUnknownIDs(t *testing.T) {
	c := NewClassifier(&stubAnalyzer{
		analyses: []emaildomain.EmailAnalysis{
			{MessageID: "nope", Category: "job_offer", Priority: "high"},
			{MessageID: "", Category: "job_offer"},
		},
	})

	out := c.Classify(context.Background(), "user@example.com", []emaildomain.IncomingEmail{
		{MessageID: "1"},
	})

	assert.Empty(t, out[0].Category)
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	c := NewClassifier(&stubAnalyzer{
		analyses: []emaildomain.EmailAnalysis{
			{MessageID: "1", Category: "job_offer", Priority: "high"},
		},
	})

	batch := []emaildomain.IncomingEmail{{MessageID: "1", Subject: "Offer"}}
	out := c.Classify(context.Background(), "user@example.com", batch)

	assert.Empty(t, batch[0].Category, "input batch must stay untouched")
	assert.Equal(t, emaildomain.CategoryJobOffer, out[0].Category)
}

func TestClassifyNilAnalyzer(t *testing.T) {
	c := NewClassifier(nil)

	batch := []emaildomain.IncomingEmail{{MessageID: "1"}}
	out := c.Classify(context.Background(), "user@example.com", batch)

	assert.Len(t, out, 1)
	assert.Empty(t, out[0].Category)
}
