package usecase

import (
	"context"
	"time"

	emaildomain "jobsense-backend/internal/email/domain"
)

// SyncResult reports the outcome of one inbox sync: the persisted rows
// (post-merge) and the moment the batch was committed.
type SyncResult struct {
	Emails   []*emaildomain.Email `json:"emails"`
	Count    int                  `json:"count"`
	SyncedAt *time.Time           `json:"synced_at,omitempty"`
}

type EmailUsecase interface {
	SyncInbox(ctx context.Context, userEmail string) (*SyncResult, error)
	ListEmails(userEmail string) ([]*emaildomain.Email, error)
	ListByCategory(userEmail, category string) ([]*emaildomain.Email, error)
	SaveEmail(userEmail string, in emaildomain.IncomingEmail) (*emaildomain.Email, error)
	MarkRead(userEmail, messageID string) (*emaildomain.Email, error)
	Delete(userEmail, messageID string) (bool, error)
	DeleteAll(userEmail string) (int64, error)
	LastSync(userEmail string) (*time.Time, error)
}

// Analyzer labels a batch of raw messages via the AI provider. It may fail;
// the classifier wrapping it never lets that failure escape.
type Analyzer interface {
	AnalyzeEmails(ctx context.Context, userEmail string, msgs []emaildomain.IncomingEmail) ([]emaildomain.EmailAnalysis, error)
}

// SessionProvider exposes the per-user mailbox credential state the sync
// engine hands to the gateway, and persists token refreshes back.
type SessionProvider interface {
	Session(userEmail string) (*emaildomain.MailboxSession, error)
	UpdateTokens(userEmail, accessToken, refreshToken string, expiry time.Time) error
	TouchLastSync(userEmail string, t time.Time) error
}
