package domain

import (
	"time"

	emaildomain "jobsense-backend/internal/email/domain"
)

// MailboxSettings holds the per-user mailbox connection state. Tokens are
// stored server-side only and never serialized into responses.
type MailboxSettings struct {
	ID               string     `json:"-" gorm:"primaryKey"`
	UserEmail        string     `json:"user_email" gorm:"uniqueIndex;not null"`
	IsConnected      bool       `json:"is_connected"`
	ConnectedAddress string     `json:"connected_address"`
	AccessToken      string     `json:"-"`
	RefreshToken     string     `json:"-"`
	TokenExpiry      *time.Time `json:"-"`
	LastProviderSync *time.Time `json:"last_provider_sync,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Session converts the stored connection state into the credential snapshot
// handed to a mailbox gateway.
func (m *MailboxSettings) Session() *emaildomain.MailboxSession {
	if m == nil {
		return &emaildomain.MailboxSession{}
	}
	return &emaildomain.MailboxSession{
		Email:        m.ConnectedAddress,
		Connected:    m.IsConnected,
		AccessToken:  m.AccessToken,
		RefreshToken: m.RefreshToken,
		Expiry:       m.TokenExpiry,
	}
}
