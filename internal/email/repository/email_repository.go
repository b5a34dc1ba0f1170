package repository

import (
	"errors"
	"time"

	emaildomain "jobsense-backend/internal/email/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// emailRepository implements EmailRepository interface
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new instance of emailRepository
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{
		db: db,
	}
}

func (r *emailRepository) ListByUser(userEmail string) ([]*emaildomain.Email, error) {
	var emails []*emaildomain.Email
	err := r.db.Where("user_email = ?", userEmail).Order("date DESC").Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *emailRepository) ListByCategory(userEmail, category string) ([]*emaildomain.Email, error) {
	var emails []*emaildomain.Email
	err := r.db.Where("user_email = ? AND category = ?", userEmail, category).Order("date DESC").Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

// UpsertBatch wraps the whole batch in one transaction so a failure on any
// row rolls back every row (the sync cursor is only advanced by the caller
// after this returns successfully).
func (r *emailRepository) UpsertBatch(userEmail string, rows []*emaildomain.Email) ([]*emaildomain.Email, error) {
	saved := make([]*emaildomain.Email, 0, len(rows))

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			now := time.Now()

			var existing emaildomain.Email
			err := tx.Where("user_email = ? AND message_id = ?", userEmail, row.MessageID).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				rec := emaildomain.NewEmailRow(userEmail, row, now)
				rec.ID = uuid.New().String()
				if err := tx.Create(rec).Error; err != nil {
					return err
				}
				saved = append(saved, rec)
				continue
			}
			if err != nil {
				return err
			}

			emaildomain.MergeEmailRow(&existing, row, now)
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			rec := existing
			saved = append(saved, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (r *emailRepository) MarkRead(userEmail, messageID string) (*emaildomain.Email, error) {
	var email emaildomain.Email
	err := r.db.Where("user_email = ? AND message_id = ?", userEmail, messageID).First(&email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	email.IsRead = true
	email.UpdatedAt = time.Now()
	if err := r.db.Save(&email).Error; err != nil {
		return nil, err
	}
	return &email, nil
}

func (r *emailRepository) Delete(userEmail, messageID string) (bool, error) {
	result := r.db.Where("user_email = ? AND message_id = ?", userEmail, messageID).Delete(&emaildomain.Email{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *emailRepository) DeleteAll(userEmail string) (int64, error) {
	result := r.db.Where("user_email = ?", userEmail).Delete(&emaildomain.Email{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
