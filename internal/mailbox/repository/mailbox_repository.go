package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobsense-backend/internal/mailbox/domain"
)

type mailboxRepository struct {
	db *gorm.DB
}

func NewMailboxRepository(db *gorm.DB) MailboxRepository {
	return &mailboxRepository{db: db}
}

func (r *mailboxRepository) GetByUserEmail(userEmail string) (*domain.MailboxSettings, error) {
	var settings domain.MailboxSettings
	err := r.db.Where("user_email = ?", userEmail).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *mailboxRepository) Upsert(settings *domain.MailboxSettings) error {
	existing, err := r.GetByUserEmail(settings.UserEmail)
	if err != nil {
		return err
	}

	now := time.Now()
	settings.UpdatedAt = now

	if existing == nil {
		settings.ID = uuid.New().String()
		settings.CreatedAt = now
		return r.db.Create(settings).Error
	}

	settings.ID = existing.ID
	settings.CreatedAt = existing.CreatedAt
	return r.db.Save(settings).Error
}

func (r *mailboxRepository) Disconnect(userEmail string) error {
	return r.db.Model(&domain.MailboxSettings{}).
		Where("user_email = ?", userEmail).
		Updates(map[string]interface{}{
			"is_connected":      false,
			"connected_address": "",
			"access_token":      "",
			"refresh_token":     "",
			"token_expiry":      nil,
			"updated_at":        time.Now(),
		}).Error
}

func (r *mailboxRepository) UpdateTokens(userEmail, accessToken, refreshToken string, expiry time.Time) error {
	updates := map[string]interface{}{
		"access_token": accessToken,
		"token_expiry": expiry,
		"updated_at":   time.Now(),
	}
	if refreshToken != "" {
		updates["refresh_token"] = refreshToken
	}
	return r.db.Model(&domain.MailboxSettings{}).
		Where("user_email = ?", userEmail).
		Updates(updates).Error
}

func (r *mailboxRepository) UpdateLastSync(userEmail string, t time.Time) error {
	return r.db.Model(&domain.MailboxSettings{}).
		Where("user_email = ?", userEmail).
		Updates(map[string]interface{}{
			"last_provider_sync": t,
			"updated_at":         time.Now(),
		}).Error
}
