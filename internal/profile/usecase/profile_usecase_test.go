package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profiledomain "jobsense-backend/internal/profile/domain"
)

type fakeProfileRepo struct {
	stored *profiledomain.Profile
}

func (f *fakeProfileRepo) GetByUserEmail(userEmail string) (*profiledomain.Profile, error) {
	return f.stored, nil
}
func (f *fakeProfileRepo) Upsert(userEmail string, profile *profiledomain.Profile) (*profiledomain.Profile, error) {
	f.stored = profile
	return profile, nil
}
func (f *fakeProfileRepo) Delete(userEmail string) (bool, error) {
	found := f.stored != nil
	f.stored = nil
	return found, nil
}

type fakeParser struct {
	extracted *profiledomain.ExtractedProfile
	err       error
}

func (f *fakeParser) ParseResume(ctx context.Context, userEmail, base64Data, mimeType string) (*profiledomain.ExtractedProfile, error) {
	return f.extracted, f.err
}

func TestUploadResumeMergesIntoStoredProfile(t *testing.T) {
	repo := &fakeProfileRepo{stored: &profiledomain.Profile{Name: "Jane", Phone: "+49 111"}}
	parser := &fakeParser{extracted: &profiledomain.ExtractedProfile{
		Name:   "Jane Doe",
		Skills: []string{"Go"},
	}}
	uc := NewProfileUsecase(repo, parser)

	got, err := uc.UploadResume(context.Background(), "user@example.com", profiledomain.ResumeAttachment{
		Data: "QUJD", MimeType: "application/pdf", Filename: "cv.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", got.Name, "re-upload overrides parsed scalars")
	assert.Equal(t, "+49 111", got.Phone, "untouched contact fields survive")
	assert.Equal(t, profiledomain.StringList{"Go"}, got.Skills)
	assert.Equal(t, "cv.pdf", got.ResumeName)
	assert.Same(t, got, repo.stored, "merged profile is persisted")
}

func TestUploadResumeParserFailureSurfaces(t *testing.T) {
	repo := &fakeProfileRepo{stored: &profiledomain.Profile{Name: "Jane"}}
	uc := NewProfileUsecase(repo, &fakeParser{err: errors.New("model unavailable")})

	_, err := uc.UploadResume(context.Background(), "user@example.com", profiledomain.ResumeAttachment{
		Data: "QUJD", MimeType: "application/pdf",
	})
	require.Error(t, err)
	assert.Equal(t, "Jane", repo.stored.Name, "failed parse leaves the profile untouched")
}

func TestUploadResumeValidatesAttachment(t *testing.T) {
	uc := NewProfileUsecase(&fakeProfileRepo{}, &fakeParser{})

	_, err := uc.UploadResume(context.Background(), "user@example.com", profiledomain.ResumeAttachment{})
	assert.Error(t, err)
}

func TestUploadResumeWithoutParser(t *testing.T) {
	uc := NewProfileUsecase(&fakeProfileRepo{}, nil)

	_, err := uc.UploadResume(context.Background(), "user@example.com", profiledomain.ResumeAttachment{
		Data: "QUJD", MimeType: "application/pdf",
	})
	assert.Error(t, err)
}

func TestSaveReplacesProfile(t *testing.T) {
	repo := &fakeProfileRepo{stored: &profiledomain.Profile{Name: "Old", AboutMe: "old"}}
	uc := NewProfileUsecase(repo, nil)

	saved, err := uc.Save("user@example.com", &profiledomain.Profile{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", saved.Name)
	assert.Empty(t, saved.AboutMe, "explicit save replaces the profile in full")
}
