package repository

import (
	"errors"
	"time"

	authdomain "jobsense-backend/internal/auth/domain"

	"gorm.io/gorm"
)

// syncCursorRepository stores the cursor on the user row
// (users.last_email_sync), one timestamp per user.
type syncCursorRepository struct {
	db *gorm.DB
}

// NewSyncCursorRepository creates a new instance of syncCursorRepository
func NewSyncCursorRepository(db *gorm.DB) SyncCursorRepository {
	return &syncCursorRepository{
		db: db,
	}
}

func (r *syncCursorRepository) Get(userEmail string) (*time.Time, error) {
	var user authdomain.User
	err := r.db.Where("email = ?", userEmail).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user.LastEmailSync, nil
}

func (r *syncCursorRepository) Set(userEmail string, t time.Time) error {
	return r.db.Model(&authdomain.User{}).
		Where("email = ?", userEmail).
		Updates(map[string]interface{}{"last_email_sync": t, "updated_at": time.Now()}).Error
}
