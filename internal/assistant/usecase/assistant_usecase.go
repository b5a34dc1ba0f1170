package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"

	usagedomain "jobsense-backend/internal/aiusage/domain"
	usageusecase "jobsense-backend/internal/aiusage/usecase"
	emaildomain "jobsense-backend/internal/email/domain"
	emailrepo "jobsense-backend/internal/email/repository"
	profiledomain "jobsense-backend/internal/profile/domain"
	profilerepo "jobsense-backend/internal/profile/repository"
	"jobsense-backend/pkg/gemini"
)

// Email draft kinds accepted by GenerateEmail.
const (
	EmailTypeCoverLetter = "cover_letter"
	EmailTypeColdEmail   = "cold_email"
)

// JobSearchResult carries the grounded search answer plus the cited sources.
type JobSearchResult struct {
	Text    string   `json:"text"`
	Sources []string `json:"sources,omitempty"`
}

// ReplyContext is the message a smart reply is drafted for.
type ReplyContext struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AutoReplyDraft is one generated reply from an auto-pilot run.
type AutoReplyDraft struct {
	MessageID string `json:"id"`
	Subject   string `json:"subject"`
	Reply     string `json:"reply"`
}

// AutoReplyResult reports an auto-pilot run over the high-priority backlog.
type AutoReplyResult struct {
	Drafts    []AutoReplyDraft `json:"drafts"`
	Attempted int              `json:"attempted"`
	Failed    int              `json:"failed"`
}

// Generator is the slice of the AI client the assistant depends on.
// Implement this interface to add new providers; *gemini.Client is the
// production implementation.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, gemini.Usage, error)
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, extra ...genai.Part) (string, gemini.Usage, error)
	GenerateGrounded(ctx context.Context, prompt string) (string, []string, gemini.Usage, error)
}

type AssistantUsecase interface {
	ParseResume(ctx context.Context, userEmail, base64Data, mimeType string) (*profiledomain.ExtractedProfile, error)
	AnalyzeEmails(ctx context.Context, userEmail string, msgs []emaildomain.IncomingEmail) ([]emaildomain.EmailAnalysis, error)
	SearchJobs(ctx context.Context, userEmail string, profile *profiledomain.Profile) (*JobSearchResult, error)
	GenerateEmail(ctx context.Context, userEmail string, profile *profiledomain.Profile, jobDescription, emailType string) (string, error)
	SmartReply(ctx context.Context, userEmail string, email ReplyContext, profile *profiledomain.Profile) (string, error)
	AutoReplyHighPriority(ctx context.Context, userEmail string) (*AutoReplyResult, error)
}

type assistantUsecase struct {
	ai           Generator
	profileRepo  profilerepo.ProfileRepository
	emailRepo    emailrepo.EmailRepository
	usageUsecase usageusecase.UsageUsecase
}

// NewAssistantUsecase wires the AI generator. The generator may be nil when no
// API key is configured; every call then fails with a clear error.
func NewAssistantUsecase(ai Generator, profileRepo profilerepo.ProfileRepository, emailRepo emailrepo.EmailRepository, usageUsecase usageusecase.UsageUsecase) AssistantUsecase {
	return &assistantUsecase{ai: ai, profileRepo: profileRepo, emailRepo: emailRepo, usageUsecase: usageUsecase}
}

var errNoClient = fmt.Errorf("GEMINI_API_KEY is not configured")

var resumeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":     {Type: genai.TypeString},
		"location": {Type: genai.TypeString},
		"aboutMe":  {Type: genai.TypeString},
		"skills":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"experience": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"role":        {Type: genai.TypeString},
					"company":     {Type: genai.TypeString},
					"duration":    {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
				},
			},
		},
		"education": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"degree": {Type: genai.TypeString},
					"school": {Type: genai.TypeString},
					"year":   {Type: genai.TypeString},
				},
			},
		},
	},
}

var emailAnalysisSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":              {Type: genai.TypeString},
			"category":        {Type: genai.TypeString},
			"priority":        {Type: genai.TypeString},
			"summary":         {Type: genai.TypeString},
			"suggestedAction": {Type: genai.TypeString},
		},
	},
}

func (u *assistantUsecase) ParseResume(ctx context.Context, userEmail, base64Data, mimeType string) (*profiledomain.ExtractedProfile, error) {
	if u.ai == nil {
		return nil, errNoClient
	}

	// Strip a data URL prefix if the client sent one.
	cleanData := base64Data
	if idx := strings.Index(cleanData, ","); idx >= 0 && strings.HasPrefix(cleanData, "data:") {
		cleanData = cleanData[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(cleanData)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 resume data: %w", err)
	}

	prompt := "Extract: name, location, aboutMe, skills (array), experience (array with role, company, duration, description), education (array with degree, school, year)"
	doc := genai.Blob{MIMEType: mimeType, Data: raw}

	text, usage, err := u.ai.GenerateJSON(ctx, prompt, resumeSchema, doc)
	u.usageUsecase.Record(userEmail, usagedomain.OperationResumeParse, usage, err)
	if err != nil {
		return nil, err
	}

	var extracted profiledomain.ExtractedProfile
	if err := json.Unmarshal([]byte(text), &extracted); err != nil {
		return nil, fmt.Errorf("decode extracted profile: %w", err)
	}
	return &extracted, nil
}

func (u *assistantUsecase) AnalyzeEmails(ctx context.Context, userEmail string, msgs []emaildomain.IncomingEmail) ([]emaildomain.EmailAnalysis, error) {
	if u.ai == nil {
		return nil, errNoClient
	}
	if len(msgs) == 0 {
		return nil, nil
	}

	type promptEmail struct {
		ID      string `json:"id"`
		Sender  string `json:"sender"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	batch := make([]promptEmail, 0, len(msgs))
	for _, m := range msgs {
		batch = append(batch, promptEmail{ID: m.MessageID, Sender: m.Sender, Subject: m.Subject, Body: m.Body})
	}
	encoded, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("encode email batch: %w", err)
	}

	prompt := fmt.Sprintf("Analyze these job-search related emails and categorize them. "+
		"Category must be one of: interview_request, job_offer, application_update, rejection, other. "+
		"Priority must be one of: high, medium, low.\n%s", encoded)

	text, usage, err := u.ai.GenerateJSON(ctx, prompt, emailAnalysisSchema)
	u.usageUsecase.Record(userEmail, usagedomain.OperationEmailAnalysis, usage, err)
	if err != nil {
		return nil, err
	}

	var analyses []emaildomain.EmailAnalysis
	if err := json.Unmarshal([]byte(text), &analyses); err != nil {
		return nil, fmt.Errorf("decode email analysis: %w", err)
	}
	return analyses, nil
}

func (u *assistantUsecase) SearchJobs(ctx context.Context, userEmail string, profile *profiledomain.Profile) (*JobSearchResult, error) {
	if u.ai == nil {
		return nil, errNoClient
	}

	profile, err := u.resolveProfile(userEmail, profile)
	if err != nil {
		return nil, err
	}

	var structuredContext strings.Builder
	fmt.Fprintf(&structuredContext, "Candidate Name: %s\n", orDefault(profile.Name, "N/A"))
	if len(profile.Skills) > 0 {
		fmt.Fprintf(&structuredContext, "Skills: %s\n", strings.Join(profile.Skills, ", "))
	}
	if len(profile.Experience) > 0 {
		structuredContext.WriteString("Recent Experience:\n")
		for i, exp := range profile.Experience {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&structuredContext, "- %s at %s (%s): %s\n", exp.Role, exp.Company, exp.Duration, exp.Description)
		}
	}

	prompt := fmt.Sprintf("Find 5-8 job listings for:\n%s\n%s\nLocation: %s",
		profile.AboutMe, structuredContext.String(), orDefault(profile.Location, "Remote"))

	text, sources, usage, err := u.ai.GenerateGrounded(ctx, prompt)
	u.usageUsecase.Record(userEmail, usagedomain.OperationJobSearch, usage, err)
	if err != nil {
		return nil, err
	}
	if text == "" {
		text = "No results found."
	}
	return &JobSearchResult{Text: text, Sources: sources}, nil
}

func (u *assistantUsecase) GenerateEmail(ctx context.Context, userEmail string, profile *profiledomain.Profile, jobDescription, emailType string) (string, error) {
	if u.ai == nil {
		return "", errNoClient
	}
	if emailType != EmailTypeCoverLetter && emailType != EmailTypeColdEmail {
		return "", fmt.Errorf("unsupported email type %q", emailType)
	}

	profile, err := u.resolveProfile(userEmail, profile)
	if err != nil {
		return "", err
	}

	typeLabel := "Cover Letter"
	if emailType == EmailTypeColdEmail {
		typeLabel = "Cold Email"
	}

	var profileContext strings.Builder
	fmt.Fprintf(&profileContext, "Name: %s\nSummary: %s\n", orDefault(profile.Name, "Candidate"), profile.AboutMe)
	if len(profile.Skills) > 0 {
		fmt.Fprintf(&profileContext, "Skills: %s\n", strings.Join(profile.Skills, ", "))
	}
	if len(profile.Experience) > 0 {
		recent := profile.Experience[0]
		fmt.Fprintf(&profileContext, "Current Role: %s at %s\n", recent.Role, recent.Company)
	}

	prompt := fmt.Sprintf("Write a %s for:\n%s\n\nMy Profile:\n%s", typeLabel, jobDescription, profileContext.String())

	text, usage, err := u.ai.GenerateText(ctx, prompt)
	u.usageUsecase.Record(userEmail, usagedomain.OperationEmailGeneration, usage, err)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "Could not generate email.", nil
	}
	return text, nil
}

func (u *assistantUsecase) SmartReply(ctx context.Context, userEmail string, email ReplyContext, profile *profiledomain.Profile) (string, error) {
	if u.ai == nil {
		return "", errNoClient
	}

	profile, err := u.resolveProfile(userEmail, profile)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf("Write a reply to:\nFrom: %s\nSubject: %s\n%s\n\nMy name: %s",
		email.Sender, email.Subject, email.Body, orDefault(profile.Name, "Candidate"))

	text, usage, err := u.ai.GenerateText(ctx, prompt)
	u.usageUsecase.Record(userEmail, usagedomain.OperationSmartReply, usage, err)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "Draft could not be generated.", nil
	}
	return text, nil
}

// AutoReplyHighPriority drafts a reply for every unread high-priority email.
// The backlog is a snapshot: each draft attempt succeeds or fails on its own,
// failures are logged and counted, never retried. Successfully drafted
// messages are marked read so a re-run skips them.
func (u *assistantUsecase) AutoReplyHighPriority(ctx context.Context, userEmail string) (*AutoReplyResult, error) {
	if u.ai == nil {
		return nil, errNoClient
	}

	emails, err := u.emailRepo.ListByUser(userEmail)
	if err != nil {
		return nil, err
	}

	var backlog []*emaildomain.Email
	for _, e := range emails {
		if e.Priority == emaildomain.PriorityHigh && !e.IsRead {
			backlog = append(backlog, e)
		}
	}

	// Drafting works without a stored profile, the reply is just unsigned.
	profile, err := u.profileRepo.GetByUserEmail(userEmail)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &profiledomain.Profile{}
	}

	result := &AutoReplyResult{Drafts: []AutoReplyDraft{}, Attempted: len(backlog)}
	for _, e := range backlog {
		reply, err := u.SmartReply(ctx, userEmail, ReplyContext{Sender: e.Sender, Subject: e.Subject, Body: e.Body}, profile)
		if err != nil {
			log.Printf("[WARN] Auto-reply failed for %s: %v", e.MessageID, err)
			result.Failed++
			continue
		}
		if _, err := u.emailRepo.MarkRead(userEmail, e.MessageID); err != nil {
			log.Printf("[WARN] Failed to mark %s read after auto-reply: %v", e.MessageID, err)
		}
		result.Drafts = append(result.Drafts, AutoReplyDraft{MessageID: e.MessageID, Subject: e.Subject, Reply: reply})
	}
	return result, nil
}

// resolveProfile falls back to the stored profile when the request did not
// carry one.
func (u *assistantUsecase) resolveProfile(userEmail string, profile *profiledomain.Profile) (*profiledomain.Profile, error) {
	if profile != nil {
		return profile, nil
	}
	stored, err := u.profileRepo.GetByUserEmail(userEmail)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("no profile available for %s", userEmail)
	}
	return stored, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
