package repository

import (
	"time"

	"gorm.io/gorm"

	"jobsense-backend/internal/aiusage/domain"
)

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

func (r *usageRepository) Append(record *domain.AIUsageRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	return r.db.Create(record).Error
}

func (r *usageRepository) Stats(userEmail string, since time.Time) (*domain.UsageStats, error) {
	stats := &domain.UsageStats{
		OperationsByType: []domain.OperationStats{},
		RecentUsage:      []*domain.AIUsageRecord{},
	}

	scoped := r.db.Model(&domain.AIUsageRecord{}).
		Where("user_email = ? AND created_at >= ?", userEmail, since)

	var totals struct {
		Count        int64
		TotalTokens  int64
		InputTokens  int64
		OutputTokens int64
	}
	err := scoped.Select("COUNT(*) as count, COALESCE(SUM(total_tokens), 0) as total_tokens, COALESCE(SUM(input_tokens), 0) as input_tokens, COALESCE(SUM(output_tokens), 0) as output_tokens").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	stats.TotalOperations = totals.Count
	stats.TotalTokens = totals.TotalTokens
	stats.TotalInputTokens = totals.InputTokens
	stats.TotalOutputTokens = totals.OutputTokens

	err = r.db.Model(&domain.AIUsageRecord{}).
		Where("user_email = ? AND created_at >= ?", userEmail, since).
		Select("operation_type, COUNT(*) as count, COALESCE(SUM(total_tokens), 0) as total_tokens").
		Group("operation_type").
		Order("operation_type").
		Scan(&stats.OperationsByType).Error
	if err != nil {
		return nil, err
	}

	err = r.db.
		Where("user_email = ? AND created_at >= ?", userEmail, since).
		Order("created_at DESC").
		Limit(10).
		Find(&stats.RecentUsage).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *usageRepository) PruneOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&domain.AIUsageRecord{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
