package sampleinbox

import (
	"context"
	"time"

	emaildomain "jobsense-backend/internal/email/domain"
)

// Gateway serves a fixed set of sample messages so the full sync pipeline can
// run without provider credentials. The session is ignored.
type Gateway struct {
	now func() time.Time
}

func NewGateway() *Gateway {
	return &Gateway{now: time.Now}
}

func (g *Gateway) FetchRecent(ctx context.Context, session *emaildomain.MailboxSession, limit int, onTokenRefresh emaildomain.TokenUpdateFunc) ([]emaildomain.IncomingEmail, error) {
	now := g.now()

	emails := []emaildomain.IncomingEmail{
		{
			MessageID:    "1",
			Sender:       "sarah.jenkins@techcorp.io",
			Subject:      "Interview Availability - Senior Frontend Engineer",
			Body:         "Hi there, We reviewed your application and were very impressed with your experience in React and TypeScript. We'd like to schedule a 30-minute technical screen next week. Please let us know your availability.",
			ProviderDate: now.Add(-2 * time.Hour).Format(time.RFC1123Z),
		},
		{
			MessageID:    "2",
			Sender:       "recruiting@startup.inc",
			Subject:      "Application Status: Full Stack Developer",
			Body:         "Thank you for applying to Startup Inc. Unfortunately, we have decided to move forward with other candidates who more closely match our current needs. We will keep your resume on file.",
			ProviderDate: now.AddDate(0, 0, -1).Format(time.RFC1123Z),
		},
		{
			MessageID:    "3",
			Sender:       "talent@bigdata.com",
			Subject:      "Job Offer: Data Visualization Specialist",
			Body:         "We are excited to offer you the position of Data Visualization Specialist! Attached is the offer letter. Please review and let us know if you have any questions.",
			ProviderDate: now.AddDate(0, 0, -2).Format(time.RFC1123Z),
		},
		{
			MessageID:    "4",
			Sender:       "newsletter@devweekly.com",
			Subject:      "Top 10 React Libraries in 2024",
			Body:         "Here are the trending libraries you need to know about...",
			ProviderDate: now.AddDate(0, 0, -3).Format(time.RFC1123Z),
		},
	}

	if limit > 0 && limit < len(emails) {
		emails = emails[:limit]
	}
	return emails, nil
}
