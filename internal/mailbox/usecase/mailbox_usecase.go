package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	emaildomain "jobsense-backend/internal/email/domain"
	"jobsense-backend/internal/mailbox/domain"
	"jobsense-backend/internal/mailbox/repository"
)

type MailboxUsecase interface {
	// Get returns the connection state with tokens redacted by the model's
	// json tags.
	Get(userEmail string) (*domain.MailboxSettings, error)
	Connect(ctx context.Context, userEmail, code string) (*domain.MailboxSettings, error)
	Disconnect(userEmail string) error

	// SessionProvider side, consumed by the sync engine.
	Session(userEmail string) (*emaildomain.MailboxSession, error)
	UpdateTokens(userEmail, accessToken, refreshToken string, expiry time.Time) error
	TouchLastSync(userEmail string, t time.Time) error
}

type mailboxUsecase struct {
	mailboxRepo repository.MailboxRepository
	oauthConfig *oauth2.Config
}

func NewMailboxUsecase(mailboxRepo repository.MailboxRepository, clientID, clientSecret, redirectURI string) MailboxUsecase {
	return &mailboxUsecase{
		mailboxRepo: mailboxRepo,
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{gmail.GmailReadonlyScope},
			Endpoint:     google.Endpoint,
		},
	}
}

func (u *mailboxUsecase) Get(userEmail string) (*domain.MailboxSettings, error) {
	settings, err := u.mailboxRepo.GetByUserEmail(userEmail)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &domain.MailboxSettings{UserEmail: userEmail}, nil
	}
	return settings, nil
}

// Connect exchanges the OAuth authorization code for tokens, resolves the
// connected Gmail address and persists the session.
func (u *mailboxUsecase) Connect(ctx context.Context, userEmail, code string) (*domain.MailboxSettings, error) {
	if u.oauthConfig.ClientID == "" || u.oauthConfig.ClientSecret == "" {
		return nil, fmt.Errorf("google OAuth credentials not configured")
	}

	token, err := u.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	service, err := gmail.NewService(ctx, option.WithTokenSource(u.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	profile, err := service.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("resolve mailbox address: %w", err)
	}

	settings := &domain.MailboxSettings{
		UserEmail:        userEmail,
		IsConnected:      true,
		ConnectedAddress: profile.EmailAddress,
		AccessToken:      token.AccessToken,
		RefreshToken:     token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		settings.TokenExpiry = &expiry
	}

	if err := u.mailboxRepo.Upsert(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (u *mailboxUsecase) Disconnect(userEmail string) error {
	return u.mailboxRepo.Disconnect(userEmail)
}

func (u *mailboxUsecase) Session(userEmail string) (*emaildomain.MailboxSession, error) {
	settings, err := u.mailboxRepo.GetByUserEmail(userEmail)
	if err != nil {
		return nil, err
	}
	return settings.Session(), nil
}

func (u *mailboxUsecase) UpdateTokens(userEmail, accessToken, refreshToken string, expiry time.Time) error {
	return u.mailboxRepo.UpdateTokens(userEmail, accessToken, refreshToken, expiry)
}

func (u *mailboxUsecase) TouchLastSync(userEmail string, t time.Time) error {
	return u.mailboxRepo.UpdateLastSync(userEmail, t)
}
