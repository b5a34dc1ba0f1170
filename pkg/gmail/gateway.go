package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	emaildomain "jobsense-backend/internal/email/domain"
)

// Gateway fetches inbox messages through the Gmail API using per-call
// session credentials.
type Gateway struct {
	clientID     string
	clientSecret string
}

func NewGateway(clientID, clientSecret string) *Gateway {
	return &Gateway{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// notifyTokenSource wraps an oauth2 token source so transparent refreshes can
// be persisted by the caller.
type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback emaildomain.TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t.AccessToken, t.RefreshToken, t.Expiry); err != nil {
			log.Printf("[WARN] Failed to persist refreshed token: %v", err)
		}
	}
	return t, nil
}

func (g *Gateway) service(ctx context.Context, session *emaildomain.MailboxSession, onTokenRefresh emaildomain.TokenUpdateFunc) (*gmail.Service, error) {
	token := &oauth2.Token{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    "Bearer",
	}
	if session.Expiry != nil {
		token.Expiry = *session.Expiry
	}

	config := &oauth2.Config{
		ClientID:     g.clientID,
		ClientSecret: g.clientSecret,
		Endpoint:     google.Endpoint,
	}

	wrapped := &notifyTokenSource{
		src:      config.TokenSource(ctx, token),
		current:  token,
		callback: onTokenRefresh,
	}

	client := oauth2.NewClient(ctx, wrapped)
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}
	return srv, nil
}

// FetchRecent lists the newest inbox messages and hydrates them in parallel.
// Order of the returned slice matches the provider's listing order.
func (g *Gateway) FetchRecent(ctx context.Context, session *emaildomain.MailboxSession, limit int, onTokenRefresh emaildomain.TokenUpdateFunc) ([]emaildomain.IncomingEmail, error) {
	if session == nil || !session.Connected || session.AccessToken == "" {
		return nil, emaildomain.ErrNotConnected
	}
	if session.Expired(time.Now()) {
		return nil, emaildomain.ErrSessionExpired
	}

	srv, err := g.service(ctx, session, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	user := "me"
	if limit <= 0 {
		limit = 20
	}

	listResp, err := srv.Users.Messages.List(user).
		LabelIds("INBOX").
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list messages: %v", err)
	}

	if len(listResp.Messages) == 0 {
		return []emaildomain.IncomingEmail{}, nil
	}

	// Fetch full messages in parallel, keeping listing order via the index.
	type fetchResult struct {
		index int
		email emaildomain.IncomingEmail
		err   error
	}

	results := make(chan fetchResult, len(listResp.Messages))
	semaphore := make(chan struct{}, 10)

	for i, msg := range listResp.Messages {
		go func(index int, msgID string) {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fullMsg, err := srv.Users.Messages.Get(user, msgID).Format("full").Context(ctx).Do()
			if err != nil {
				results <- fetchResult{index: index, err: err}
				return
			}
			results <- fetchResult{index: index, email: convertMessage(fullMsg)}
		}(i, msg.Id)
	}

	ordered := make([]*emaildomain.IncomingEmail, len(listResp.Messages))
	for range listResp.Messages {
		result := <-results
		if result.err != nil {
			log.Printf("[WARN] Failed to fetch message: %v", result.err)
			continue
		}
		email := result.email
		ordered[result.index] = &email
	}

	emails := make([]emaildomain.IncomingEmail, 0, len(ordered))
	for _, e := range ordered {
		if e != nil {
			emails = append(emails, *e)
		}
	}
	return emails, nil
}

func convertMessage(msg *gmail.Message) emaildomain.IncomingEmail {
	date := getHeader(msg.Payload.Headers, "Date")
	if date == "" && msg.InternalDate > 0 {
		date = fmt.Sprintf("%d", msg.InternalDate)
	}

	body := msg.Snippet
	if extracted := getPlainBody(msg.Payload); extracted != "" {
		body = extracted
	}

	return emaildomain.IncomingEmail{
		MessageID:    msg.Id,
		Sender:       getHeader(msg.Payload.Headers, "From"),
		Subject:      getHeader(msg.Payload.Headers, "Subject"),
		Body:         body,
		ProviderDate: date,
	}
}

func getHeader(headers []*gmail.MessagePartHeader, name string) string {
	for _, header := range headers {
		if header.Name == name {
			return header.Value
		}
	}
	return ""
}

func getPlainBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	if payload.Body != nil && payload.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(payload.Body.Data)
		if err == nil {
			text := string(data)
			if payload.MimeType == "text/html" {
				text = stripHTML(text)
			}
			return text
		}
	}

	var htmlBody string
	var plainBody string

	var findBody func(parts []*gmail.MessagePart)
	findBody = func(parts []*gmail.MessagePart) {
		for _, part := range parts {
			if part.Body != nil && part.Body.Data != "" {
				data, err := base64.URLEncoding.DecodeString(part.Body.Data)
				if err == nil {
					switch part.MimeType {
					case "text/plain":
						if plainBody == "" {
							plainBody = string(data)
						}
					case "text/html":
						if htmlBody == "" {
							htmlBody = string(data)
						}
					}
				}
			}
			if len(part.Parts) > 0 {
				findBody(part.Parts)
			}
		}
	}
	findBody(payload.Parts)

	if plainBody != "" {
		return plainBody
	}
	if htmlBody != "" {
		return stripHTML(htmlBody)
	}
	return ""
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&quot;", "\"")
	return strings.Join(strings.Fields(s), " ")
}
