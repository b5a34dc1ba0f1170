package repository

import (
	"time"

	"jobsense-backend/internal/aiusage/domain"
)

type UsageRepository interface {
	Append(record *domain.AIUsageRecord) error
	Stats(userEmail string, since time.Time) (*domain.UsageStats, error)
	PruneOlderThan(cutoff time.Time) (int64, error)
}
