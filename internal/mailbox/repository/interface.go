package repository

import (
	"time"

	"jobsense-backend/internal/mailbox/domain"
)

type MailboxRepository interface {
	GetByUserEmail(userEmail string) (*domain.MailboxSettings, error)
	Upsert(settings *domain.MailboxSettings) error
	Disconnect(userEmail string) error
	UpdateTokens(userEmail, accessToken, refreshToken string, expiry time.Time) error
	UpdateLastSync(userEmail string, t time.Time) error
}
