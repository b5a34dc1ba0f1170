package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emaildomain "jobsense-backend/internal/email/domain"
)

type fakeEmailRepo struct {
	upserted  [][]*emaildomain.Email
	upsertErr error
}

func (f *fakeEmailRepo) ListByUser(userEmail string) ([]*emaildomain.Email, error) { return nil, nil }
func (f *fakeEmailRepo) ListByCategory(userEmail, category string) ([]*emaildomain.Email, error) {
	return nil, nil
}
func (f *fakeEmailRepo) UpsertBatch(userEmail string, rows []*emaildomain.Email) ([]*emaildomain.Email, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upserted = append(f.upserted, rows)
	return rows, nil
}
func (f *fakeEmailRepo) MarkRead(userEmail, messageID string) (*emaildomain.Email, error) {
	return nil, nil
}
func (f *fakeEmailRepo) Delete(userEmail, messageID string) (bool, error) { return false, nil }
func (f *fakeEmailRepo) DeleteAll(userEmail string) (int64, error)        { return 0, nil }

type fakeCursorRepo struct {
	cursor *time.Time
	setErr error
	sets   int
}

func (f *fakeCursorRepo) Get(userEmail string) (*time.Time, error) { return f.cursor, nil }
func (f *fakeCursorRepo) Set(userEmail string, t time.Time) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.cursor = &t
	return nil
}

type fakeSessions struct {
	session      *emaildomain.MailboxSession
	sessionErr   error
	tokenUpdates int
	lastSyncs    int
}

func (f *fakeSessions) Session(userEmail string) (*emaildomain.MailboxSession, error) {
	return f.session, f.sessionErr
}
func (f *fakeSessions) UpdateTokens(userEmail, accessToken, refreshToken string, expiry time.Time) error {
	f.tokenUpdates++
	return nil
}
func (f *fakeSessions) TouchLastSync(userEmail string, t time.Time) error {
	f.lastSyncs++
	return nil
}

type fakeGateway struct {
	emails []emaildomain.IncomingEmail
	err    error
}

func (f *fakeGateway) FetchRecent(ctx context.Context, session *emaildomain.MailboxSession, limit int, onTokenRefresh emaildomain.TokenUpdateFunc) ([]emaildomain.IncomingEmail, error) {
	return f.emails, f.err
}

func connectedSession() *emaildomain.MailboxSession {
	return &emaildomain.MailboxSession{Email: "user@example.com", Connected: true, AccessToken: "tok"}
}

func TestSyncInboxPersistsAndAdvancesCursor(t *testing.T) {
	repo := &fakeEmailRepo{}
	cursor := &fakeCursorRepo{}
	sessions := &fakeSessions{session: connectedSession()}
	gateway := &fakeGateway{emails: []emaildomain.IncomingEmail{
		{MessageID: "1", Subject: "Interview", ProviderDate: "Mon, 02 Mar 2026 10:30:00 +0000"},
		{MessageID: "2", Subject: "Rejection"},
	}}

	uc := NewEmailUsecase(repo, cursor, sessions, gateway, NewClassifier(nil), 20)

	result, err := uc.SyncInbox(context.Background(), "user@example.com")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count)
	require.NotNil(t, result.SyncedAt)
	assert.Equal(t, 1, cursor.sets)
	assert.Equal(t, 1, sessions.lastSyncs)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, "1", repo.upserted[0][0].MessageID)
}

func TestSyncInboxEmptyBatchKeepsCursor(t *testing.T) {
	repo := &fakeEmailRepo{}
	cursor := &fakeCursorRepo{}
	sessions := &fakeSessions{session: connectedSession()}
	gateway := &fakeGateway{emails: nil}

	uc := NewEmailUsecase(repo, cursor, sessions, gateway, NewClassifier(nil), 20)

	result, err := uc.SyncInbox(context.Background(), "user@example.com")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Count)
	assert.Nil(t, result.SyncedAt)
	assert.Equal(t, 0, cursor.sets, "empty batch must not advance the cursor")
	assert.Empty(t, repo.upserted)
}

func TestSyncInboxStoreFailureKeepsCursor(t *testing.T) {
	repo := &fakeEmailRepo{upsertErr: errors.New("db down")}
	cursor := &fakeCursorRepo{}
	sessions := &fakeSessions{session: connectedSession()}
	gateway := &fakeGateway{emails: []emaildomain.IncomingEmail{{MessageID: "1"}}}

	uc := NewEmailUsecase(repo, cursor, sessions, gateway, NewClassifier(nil), 20)

	_, err := uc.SyncInbox(context.Background(), "user@example.com")
	require.Error(t, err)
	assert.Equal(t, 0, cursor.sets, "failed persist must not advance the cursor")
}

func TestSyncInboxGatewayErrorPropagates(t *testing.T) {
	sessions := &fakeSessions{session: &emaildomain.MailboxSession{}}
	gateway := &fakeGateway{err: emaildomain.ErrNotConnected}

	uc := NewEmailUsecase(&fakeEmailRepo{}, &fakeCursorRepo{}, sessions, gateway, NewClassifier(nil), 20)

	_, err := uc.SyncInbox(context.Background(), "user@example.com")
	assert.ErrorIs(t, err, emaildomain.ErrNotConnected)
}

func TestBuildRowsDedupesLastWins(t *testing.T) {
	now := time.Now()

	rows := buildRows([]emaildomain.IncomingEmail{
		{MessageID: "1", Subject: "first"},
		{MessageID: "2", Subject: "keep"},
		{MessageID: "1", Subject: "second"},
		{MessageID: "", Subject: "dropped"},
	}, now)

	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].MessageID)
	assert.Equal(t, "second", rows[0].Subject, "last occurrence of a duplicate id wins")
	assert.Equal(t, "2", rows[1].MessageID)
}

func TestParseProviderDate(t *testing.T) {
	fallback := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc1123z", "Mon, 02 Mar 2026 10:30:00 +0700", time.Date(2026, 3, 2, 10, 30, 0, 0, time.FixedZone("", 7*3600))},
		{"rfc2822 single digit day", "Mon, 2 Mar 2026 10:30:00 +0000", time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)},
		{"rfc3339", "2026-03-02T10:30:00Z", time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)},
		{"date only", "2026-03-02", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"epoch millis", "1740998400000", time.UnixMilli(1740998400000)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseProviderDate(tc.input, fallback)
			assert.True(t, tc.want.Equal(got), "got %v, want %v", got, tc.want)
		})
	}

	t.Run("empty falls back", func(t *testing.T) {
		assert.Equal(t, fallback, parseProviderDate("", fallback))
	})
	t.Run("garbage falls back", func(t *testing.T) {
		assert.Equal(t, fallback, parseProviderDate("10:30 AM", fallback))
	})
}

func TestSaveEmailNormalizesClassification(t *testing.T) {
	repo := &fakeEmailRepo{}
	uc := NewEmailUsecase(repo, &fakeCursorRepo{}, &fakeSessions{}, &fakeGateway{}, NewClassifier(nil), 20)

	saved, err := uc.SaveEmail("user@example.com", emaildomain.IncomingEmail{
		MessageID: "1",
		Category:  "JOB_OFFER",
		Priority:  "whatever",
	})
	require.NoError(t, err)
	assert.Equal(t, emaildomain.CategoryJobOffer, saved.Category)
	assert.Equal(t, emaildomain.PriorityMedium, saved.Priority)
}

func TestSaveEmailRequiresMessageID(t *testing.T) {
	uc := NewEmailUsecase(&fakeEmailRepo{}, &fakeCursorRepo{}, &fakeSessions{}, &fakeGateway{}, NewClassifier(nil), 20)

	_, err := uc.SaveEmail("user@example.com", emaildomain.IncomingEmail{})
	assert.Error(t, err)
}
