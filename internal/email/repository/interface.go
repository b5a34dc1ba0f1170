package repository

import (
	"time"

	emaildomain "jobsense-backend/internal/email/domain"
)

// EmailRepository persists inbox messages, one row per (user email, message
// id). Single-row lookups return (nil, nil) when the row is absent.
type EmailRepository interface {
	ListByUser(userEmail string) ([]*emaildomain.Email, error)
	ListByCategory(userEmail, category string) ([]*emaildomain.Email, error)

	// UpsertBatch applies the batch atomically: either every row is
	// inserted/updated or none are. Existing rows keep their read flag and
	// creation timestamp, and keep their classification when the incoming
	// row is unclassified.
	UpsertBatch(userEmail string, rows []*emaildomain.Email) ([]*emaildomain.Email, error)

	MarkRead(userEmail, messageID string) (*emaildomain.Email, error)
	Delete(userEmail, messageID string) (bool, error)
	DeleteAll(userEmail string) (int64, error)
}

// SyncCursorRepository tracks the per-user timestamp of the last fully
// committed inbox sync.
type SyncCursorRepository interface {
	Get(userEmail string) (*time.Time, error)
	Set(userEmail string, t time.Time) error
}
