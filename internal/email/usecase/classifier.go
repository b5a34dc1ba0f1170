package usecase

import (
	"context"
	"log"

	emaildomain "jobsense-backend/internal/email/domain"
)

// Classifier labels a batch of incoming messages with the AI analyzer and
// merges the results back by message id. It degrades instead of failing: any
// analyzer error, and any message the analyzer skipped, leaves that message
// unclassified so the sync pipeline never blocks on the AI provider.
type Classifier struct {
	analyzer Analyzer
}

func NewClassifier(analyzer Analyzer) *Classifier {
	return &Classifier{analyzer: analyzer}
}

// Classify returns a new slice; the input batch is never mutated.
func (c *Classifier) Classify(ctx context.Context, userEmail string, msgs []emaildomain.IncomingEmail) []emaildomain.IncomingEmail {
	out := make([]emaildomain.IncomingEmail, len(msgs))
	copy(out, msgs)

	if c.analyzer == nil || len(msgs) == 0 {
		return out
	}

	analyses, err := c.analyzer.AnalyzeEmails(ctx, userEmail, msgs)
	if err != nil {
		log.Printf("[WARN] email analysis failed, keeping batch unclassified: %v", err)
		return out
	}

	// Results for ids not present in the batch are ignored.
	byID := make(map[string]emaildomain.EmailAnalysis, len(analyses))
	for _, a := range analyses {
		if a.MessageID != "" && a.Category != "" {
			byID[a.MessageID] = a
		}
	}

	for i := range out {
		a, ok := byID[out[i].MessageID]
		if !ok {
			continue
		}
		out[i].Category = emaildomain.NormalizeCategory(a.Category)
		out[i].Priority = emaildomain.NormalizePriority(a.Priority)
		out[i].Summary = a.Summary
		out[i].SuggestedAction = a.SuggestedAction
	}

	return out
}
