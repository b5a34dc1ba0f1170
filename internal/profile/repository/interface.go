package repository

import profiledomain "jobsense-backend/internal/profile/domain"

// ProfileRepository persists one profile per user email. GetByUserEmail
// returns (nil, nil) when the profile is absent.
type ProfileRepository interface {
	GetByUserEmail(userEmail string) (*profiledomain.Profile, error)
	Upsert(userEmail string, profile *profiledomain.Profile) (*profiledomain.Profile, error)
	Delete(userEmail string) (bool, error)
}
