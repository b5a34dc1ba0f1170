package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profiledomain "jobsense-backend/internal/profile/domain"
)

func TestMergeExtractedEmptyExtractionKeepsProfile(t *testing.T) {
	existing := &profiledomain.Profile{
		Name:     "Jane",
		Location: "Berlin",
		Skills:   profiledomain.StringList{"Go", "SQL"},
	}
	attachment := profiledomain.ResumeAttachment{Data: "QUJD", MimeType: "application/pdf", Filename: "cv.pdf"}

	merged := MergeExtracted(existing, &profiledomain.ExtractedProfile{}, attachment, true)

	assert.Equal(t, "Jane", merged.Name)
	assert.Equal(t, "Berlin", merged.Location)
	assert.Equal(t, profiledomain.StringList{"Go", "SQL"}, merged.Skills)

	// The attachment is recorded even when nothing was extracted.
	assert.Equal(t, "QUJD", merged.ResumeData)
	assert.Equal(t, "application/pdf", merged.ResumeMimeType)
	assert.Equal(t, "cv.pdf", merged.ResumeName)
}

func TestMergeExtractedOverrideReplacesScalars(t *testing.T) {
	existing := &profiledomain.Profile{Name: "Old Name", AboutMe: "old summary"}
	extracted := &profiledomain.ExtractedProfile{Name: "New Name", AboutMe: "new summary"}

	merged := MergeExtracted(existing, extracted, profiledomain.ResumeAttachment{}, true)

	assert.Equal(t, "New Name", merged.Name)
	assert.Equal(t, "new summary", merged.AboutMe)
}

func TestMergeExtractedNoOverrideKeepsNonEmptyScalars(t *testing.T) {
	existing := &profiledomain.Profile{Name: "Kept"}
	extracted := &profiledomain.ExtractedProfile{Name: "Discarded", Location: "Lisbon"}

	merged := MergeExtracted(existing, extracted, profiledomain.ResumeAttachment{}, false)

	assert.Equal(t, "Kept", merged.Name)
	assert.Equal(t, "Lisbon", merged.Location, "empty fields are still filled in")
}

func TestMergeExtractedListsReplaceWholesale(t *testing.T) {
	existing := &profiledomain.Profile{
		Skills: profiledomain.StringList{"Go"},
		Experience: profiledomain.ExperienceList{
			{Role: "Old Role", Company: "Old Co"},
		},
	}
	extracted := &profiledomain.ExtractedProfile{
		Skills: []string{"Python", "Go", "Python", ""},
		Experience: []profiledomain.ExperienceItem{
			{Role: "New Role", Company: "New Co", Duration: "2024-2026"},
		},
	}

	merged := MergeExtracted(existing, extracted, profiledomain.ResumeAttachment{}, true)

	assert.Equal(t, profiledomain.StringList{"Python", "Go"}, merged.Skills, "skills deduped, first occurrence wins")
	require.Len(t, merged.Experience, 1)
	assert.Equal(t, "New Role", merged.Experience[0].Role)
}

func TestMergeExtractedNilInputs(t *testing.T) {
	merged := MergeExtracted(nil, nil, profiledomain.ResumeAttachment{Filename: "cv.pdf"}, true)

	require.NotNil(t, merged)
	assert.Empty(t, merged.Name)
	assert.Equal(t, "cv.pdf", merged.ResumeName)
}
