package usecase

import profiledomain "jobsense-backend/internal/profile/domain"

// MergeExtracted folds AI-extracted resume fields into an existing profile
// without clobbering hand-entered data.
//
// Scalars are taken from the extraction only when non-empty and either the
// existing field is empty or override is set (a resume re-upload always
// overrides). Non-empty extracted lists replace the stored list wholesale;
// empty ones leave it alone. The triggering upload's attachment fields are
// always written, so an empty extraction still records the new resume file.
func MergeExtracted(existing *profiledomain.Profile, extracted *profiledomain.ExtractedProfile, attachment profiledomain.ResumeAttachment, override bool) *profiledomain.Profile {
	merged := profiledomain.Profile{}
	if existing != nil {
		merged = *existing
	}

	if extracted != nil {
		merged.Name = mergeScalar(merged.Name, extracted.Name, override)
		merged.Location = mergeScalar(merged.Location, extracted.Location, override)
		merged.AboutMe = mergeScalar(merged.AboutMe, extracted.AboutMe, override)

		if len(extracted.Skills) > 0 {
			merged.Skills = dedupeSkills(extracted.Skills)
		}
		if len(extracted.Experience) > 0 {
			merged.Experience = profiledomain.ExperienceList(extracted.Experience)
		}
		if len(extracted.Education) > 0 {
			merged.Education = profiledomain.EducationList(extracted.Education)
		}
	}

	merged.ResumeData = attachment.Data
	merged.ResumeMimeType = attachment.MimeType
	merged.ResumeName = attachment.Filename

	return &merged
}

func mergeScalar(existing, extracted string, override bool) string {
	if extracted == "" {
		return existing
	}
	if existing == "" || override {
		return extracted
	}
	return existing
}

// dedupeSkills keeps first-occurrence order; skills have set semantics.
func dedupeSkills(skills []string) profiledomain.StringList {
	seen := make(map[string]struct{}, len(skills))
	out := make(profiledomain.StringList, 0, len(skills))
	for _, s := range skills {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
