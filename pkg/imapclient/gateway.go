package imapclient

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"

	emaildomain "jobsense-backend/internal/email/domain"
)

// Gateway fetches inbox messages from a generic IMAP server. Credentials come
// from server configuration, not the per-user session, so this variant suits
// single-mailbox deployments.
type Gateway struct {
	server   string
	username string
	password string
}

func NewGateway(server, username, password string) *Gateway {
	return &Gateway{
		server:   server,
		username: username,
		password: password,
	}
}

// FetchRecent connects, logs in and fetches the newest messages from INBOX.
// A fresh connection per call keeps the gateway stateless.
func (g *Gateway) FetchRecent(ctx context.Context, session *emaildomain.MailboxSession, limit int, onTokenRefresh emaildomain.TokenUpdateFunc) ([]emaildomain.IncomingEmail, error) {
	if g.server == "" || g.username == "" {
		return nil, emaildomain.ErrNotConnected
	}
	if limit <= 0 {
		limit = 20
	}

	c, err := client.DialTLS(g.server, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to IMAP server: %v", err)
	}
	defer c.Logout()

	if err := c.Login(g.username, g.password); err != nil {
		return nil, fmt.Errorf("IMAP login failed: %v", err)
	}

	mbox, err := c.Select("INBOX", true)
	if err != nil {
		return nil, fmt.Errorf("unable to select INBOX: %v", err)
	}
	if mbox.Messages == 0 {
		return []emaildomain.IncomingEmail{}, nil
	}

	from := uint32(1)
	if mbox.Messages > uint32(limit) {
		from = mbox.Messages - uint32(limit) + 1
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddRange(from, mbox.Messages)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	messages := make(chan *imap.Message, limit)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqSet, items, messages)
	}()

	var emails []emaildomain.IncomingEmail
	for msg := range messages {
		email, err := convertMessage(msg, section)
		if err != nil {
			log.Printf("[WARN] Failed to parse IMAP message: %v", err)
			continue
		}
		emails = append(emails, email)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("unable to fetch messages: %v", err)
	}

	// Newest first, matching the Gmail listing order.
	for i, j := 0, len(emails)-1; i < j; i, j = i+1, j-1 {
		emails[i], emails[j] = emails[j], emails[i]
	}
	return emails, nil
}

func convertMessage(msg *imap.Message, section *imap.BodySectionName) (emaildomain.IncomingEmail, error) {
	env := msg.Envelope
	if env == nil {
		return emaildomain.IncomingEmail{}, fmt.Errorf("message %d has no envelope", msg.SeqNum)
	}

	email := emaildomain.IncomingEmail{
		MessageID: strings.Trim(env.MessageId, "<>"),
		Subject:   env.Subject,
	}
	if email.MessageID == "" {
		email.MessageID = fmt.Sprintf("imap-%d-%d", msg.Uid, msg.SeqNum)
	}
	if len(env.From) > 0 {
		email.Sender = env.From[0].Address()
	}
	if !env.Date.IsZero() {
		email.ProviderDate = env.Date.Format(time.RFC1123Z)
	}

	body := msg.GetBody(section)
	if body == nil {
		return email, nil
	}

	mr, err := mail.CreateReader(body)
	if err != nil {
		return email, nil
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := header.ContentType()
		if contentType != "text/plain" {
			continue
		}
		data, err := io.ReadAll(part.Body)
		if err == nil {
			email.Body = string(data)
			break
		}
	}
	return email, nil
}
