package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	emaildomain "jobsense-backend/internal/email/domain"
	"jobsense-backend/internal/email/repository"
)

// emailUsecase implements EmailUsecase. SyncInbox is the reconciliation
// engine: fetch, classify (best effort), normalize, upsert atomically,
// advance the cursor.
type emailUsecase struct {
	emailRepo  repository.EmailRepository
	cursorRepo repository.SyncCursorRepository
	sessions   SessionProvider
	gateway    emaildomain.MailboxGateway
	classifier *Classifier
	batchSize  int
}

// NewEmailUsecase creates a new instance of emailUsecase
func NewEmailUsecase(emailRepo repository.EmailRepository, cursorRepo repository.SyncCursorRepository, sessions SessionProvider, gateway emaildomain.MailboxGateway, classifier *Classifier, batchSize int) EmailUsecase {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &emailUsecase{
		emailRepo:  emailRepo,
		cursorRepo: cursorRepo,
		sessions:   sessions,
		gateway:    gateway,
		classifier: classifier,
		batchSize:  batchSize,
	}
}

func (u *emailUsecase) SyncInbox(ctx context.Context, userEmail string) (*SyncResult, error) {
	session, err := u.sessions.Session(userEmail)
	if err != nil {
		return nil, err
	}

	onRefresh := func(accessToken, refreshToken string, expiry time.Time) error {
		return u.sessions.UpdateTokens(userEmail, accessToken, refreshToken, expiry)
	}

	raw, err := u.gateway.FetchRecent(ctx, session, u.batchSize, onRefresh)
	if err != nil {
		return nil, fmt.Errorf("fetch mailbox: %w", err)
	}

	// An empty batch is a no-op; the cursor stays where it was.
	if len(raw) == 0 {
		return &SyncResult{Emails: []*emaildomain.Email{}}, nil
	}

	classified := u.classifier.Classify(ctx, userEmail, raw)
	rows := buildRows(classified, time.Now())

	saved, err := u.emailRepo.UpsertBatch(userEmail, rows)
	if err != nil {
		return nil, fmt.Errorf("persist sync batch: %w", err)
	}

	syncedAt := time.Now()
	if err := u.cursorRepo.Set(userEmail, syncedAt); err != nil {
		return nil, fmt.Errorf("advance sync cursor: %w", err)
	}
	if err := u.sessions.TouchLastSync(userEmail, syncedAt); err != nil {
		log.Printf("[WARN] failed to update mailbox last sync for %s: %v", userEmail, err)
	}

	return &SyncResult{Emails: saved, Count: len(saved), SyncedAt: &syncedAt}, nil
}

// buildRows converts a classified batch into store rows: provider dates are
// normalized (unparsable dates fall back to now) and duplicate message ids
// within the batch collapse to the last occurrence.
func buildRows(msgs []emaildomain.IncomingEmail, now time.Time) []*emaildomain.Email {
	rows := make([]*emaildomain.Email, 0, len(msgs))
	index := make(map[string]int, len(msgs))

	for _, m := range msgs {
		if m.MessageID == "" {
			continue
		}
		row := &emaildomain.Email{
			MessageID:       m.MessageID,
			Sender:          m.Sender,
			Subject:         m.Subject,
			Body:            m.Body,
			Date:            parseProviderDate(m.ProviderDate, now),
			Category:        m.Category,
			Priority:        m.Priority,
			Summary:         m.Summary,
			SuggestedAction: m.SuggestedAction,
		}
		if i, ok := index[m.MessageID]; ok {
			rows[i] = row
			continue
		}
		index[m.MessageID] = len(rows)
		rows = append(rows, row)
	}

	return rows
}

// providerDateLayouts covers the date forms the mail providers actually
// emit: RFC 2822 variants from message headers, ISO forms from APIs.
var providerDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 -0700 (MST)",
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseProviderDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	for _, layout := range providerDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	// Gmail's internalDate is epoch milliseconds.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms)
	}
	return fallback
}

func (u *emailUsecase) ListEmails(userEmail string) ([]*emaildomain.Email, error) {
	return u.emailRepo.ListByUser(userEmail)
}

func (u *emailUsecase) ListByCategory(userEmail, category string) ([]*emaildomain.Email, error) {
	return u.emailRepo.ListByCategory(userEmail, emaildomain.NormalizeCategory(category))
}

// SaveEmail upserts a single message, e.g. one the client already holds.
func (u *emailUsecase) SaveEmail(userEmail string, in emaildomain.IncomingEmail) (*emaildomain.Email, error) {
	if in.MessageID == "" {
		return nil, fmt.Errorf("message id is required")
	}
	if in.Category != "" {
		in.Category = emaildomain.NormalizeCategory(in.Category)
		in.Priority = emaildomain.NormalizePriority(in.Priority)
	}

	rows := buildRows([]emaildomain.IncomingEmail{in}, time.Now())
	saved, err := u.emailRepo.UpsertBatch(userEmail, rows)
	if err != nil {
		return nil, err
	}
	return saved[0], nil
}

func (u *emailUsecase) MarkRead(userEmail, messageID string) (*emaildomain.Email, error) {
	return u.emailRepo.MarkRead(userEmail, messageID)
}

func (u *emailUsecase) Delete(userEmail, messageID string) (bool, error) {
	return u.emailRepo.Delete(userEmail, messageID)
}

func (u *emailUsecase) DeleteAll(userEmail string) (int64, error) {
	return u.emailRepo.DeleteAll(userEmail)
}

func (u *emailUsecase) LastSync(userEmail string) (*time.Time, error) {
	return u.cursorRepo.Get(userEmail)
}
