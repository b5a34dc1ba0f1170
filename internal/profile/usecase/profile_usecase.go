package usecase

import (
	"context"
	"fmt"

	profiledomain "jobsense-backend/internal/profile/domain"
	"jobsense-backend/internal/profile/repository"
)

// ResumeParser extracts structured profile fields from an uploaded resume
// document. Implemented by the assistant usecase.
type ResumeParser interface {
	ParseResume(ctx context.Context, userEmail, base64Data, mimeType string) (*profiledomain.ExtractedProfile, error)
}

type ProfileUsecase interface {
	Get(userEmail string) (*profiledomain.Profile, error)
	// Save is the explicit-edit path: the submitted profile replaces the
	// stored one in full.
	Save(userEmail string, profile *profiledomain.Profile) (*profiledomain.Profile, error)
	Delete(userEmail string) (bool, error)
	// UploadResume parses the document, merges the extracted fields into
	// the stored profile and persists the result.
	UploadResume(ctx context.Context, userEmail string, attachment profiledomain.ResumeAttachment) (*profiledomain.Profile, error)
}

type profileUsecase struct {
	profileRepo repository.ProfileRepository
	parser      ResumeParser
}

// NewProfileUsecase creates a new instance of profileUsecase
func NewProfileUsecase(profileRepo repository.ProfileRepository, parser ResumeParser) ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		parser:      parser,
	}
}

func (u *profileUsecase) Get(userEmail string) (*profiledomain.Profile, error) {
	return u.profileRepo.GetByUserEmail(userEmail)
}

func (u *profileUsecase) Save(userEmail string, profile *profiledomain.Profile) (*profiledomain.Profile, error) {
	return u.profileRepo.Upsert(userEmail, profile)
}

func (u *profileUsecase) Delete(userEmail string) (bool, error) {
	return u.profileRepo.Delete(userEmail)
}

func (u *profileUsecase) UploadResume(ctx context.Context, userEmail string, attachment profiledomain.ResumeAttachment) (*profiledomain.Profile, error) {
	if u.parser == nil {
		return nil, fmt.Errorf("resume parsing is not configured")
	}
	if attachment.Data == "" || attachment.MimeType == "" {
		return nil, fmt.Errorf("missing resume data or mime type")
	}

	extracted, err := u.parser.ParseResume(ctx, userEmail, attachment.Data, attachment.MimeType)
	if err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}

	existing, err := u.profileRepo.GetByUserEmail(userEmail)
	if err != nil {
		return nil, err
	}

	// A re-upload deliberately overrides previously parsed scalars.
	merged := MergeExtracted(existing, extracted, attachment, true)
	return u.profileRepo.Upsert(userEmail, merged)
}
