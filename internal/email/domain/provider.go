package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotConnected is returned when a fetch is attempted without a
	// connected mailbox session.
	ErrNotConnected = errors.New("mailbox not connected")

	// ErrSessionExpired is returned when the session's access token has
	// expired and cannot be refreshed.
	ErrSessionExpired = errors.New("mailbox session expired")
)

// MailboxSession is the explicit per-user credential state passed into every
// gateway call. Gateways check expiry before fetching; there is no ambient
// token cache.
type MailboxSession struct {
	Email        string
	Connected    bool
	AccessToken  string
	RefreshToken string
	Expiry       *time.Time
}

// Expired reports whether the access token is past its expiry and no refresh
// token is available to renew it.
func (s *MailboxSession) Expired(now time.Time) bool {
	if s.Expiry == nil {
		return false
	}
	return now.After(*s.Expiry) && s.RefreshToken == ""
}

// TokenUpdateFunc is invoked when a gateway transparently refreshes the
// session's access token, so the caller can persist the new credentials.
type TokenUpdateFunc func(accessToken, refreshToken string, expiry time.Time) error

// MailboxGateway fetches recent raw messages from a mail provider. Variants
// (Gmail, IMAP, sample) are selected once at startup by configuration.
type MailboxGateway interface {
	FetchRecent(ctx context.Context, session *MailboxSession, limit int, onTokenRefresh TokenUpdateFunc) ([]IncomingEmail, error)
}
