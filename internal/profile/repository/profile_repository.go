package repository

import (
	"errors"
	"time"

	profiledomain "jobsense-backend/internal/profile/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of profileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

func (r *profileRepository) GetByUserEmail(userEmail string) (*profiledomain.Profile, error) {
	var profile profiledomain.Profile
	err := r.db.Where("user_email = ?", userEmail).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert replaces all profile fields for the user, creating the row on first
// save. Field-level merge policy is the caller's concern.
func (r *profileRepository) Upsert(userEmail string, profile *profiledomain.Profile) (*profiledomain.Profile, error) {
	now := time.Now()

	var existing profiledomain.Profile
	err := r.db.Where("user_email = ?", userEmail).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec := *profile
		rec.ID = uuid.New().String()
		rec.UserEmail = userEmail
		rec.CreatedAt = now
		rec.UpdatedAt = now
		if err := r.db.Create(&rec).Error; err != nil {
			return nil, err
		}
		return &rec, nil
	}
	if err != nil {
		return nil, err
	}

	rec := *profile
	rec.ID = existing.ID
	rec.UserEmail = userEmail
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = now
	if err := r.db.Save(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *profileRepository) Delete(userEmail string) (bool, error) {
	result := r.db.Where("user_email = ?", userEmail).Delete(&profiledomain.Profile{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
