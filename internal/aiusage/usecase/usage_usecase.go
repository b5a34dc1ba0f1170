package usecase

import (
	"log"
	"time"

	"github.com/google/uuid"

	"jobsense-backend/internal/aiusage/domain"
	"jobsense-backend/internal/aiusage/repository"
	"jobsense-backend/pkg/gemini"
)

type UsageUsecase interface {
	// Record appends one ledger row. It never fails the caller: a write
	// error is logged and swallowed so an AI request is not broken by
	// its own accounting.
	Record(userEmail, operationType string, usage gemini.Usage, callErr error)
	Stats(userEmail string, days int) (*domain.UsageStats, error)
	StartRetentionSweep(retentionDays int)
}

type usageUsecase struct {
	usageRepo repository.UsageRepository
}

func NewUsageUsecase(usageRepo repository.UsageRepository) UsageUsecase {
	return &usageUsecase{usageRepo: usageRepo}
}

func (u *usageUsecase) Record(userEmail, operationType string, usage gemini.Usage, callErr error) {
	record := &domain.AIUsageRecord{
		ID:            uuid.New().String(),
		UserEmail:     userEmail,
		OperationType: operationType,
		InputTokens:   usage.InputTokens,
		OutputTokens:  usage.OutputTokens,
		TotalTokens:   usage.TotalTokens,
		ModelUsed:     usage.Model,
		Success:       callErr == nil,
		CreatedAt:     time.Now(),
	}
	if callErr != nil {
		record.ErrorMessage = callErr.Error()
	}

	if err := u.usageRepo.Append(record); err != nil {
		log.Printf("[WARN] Failed to record AI usage for %s (%s): %v", userEmail, operationType, err)
	}
}

func (u *usageUsecase) Stats(userEmail string, days int) (*domain.UsageStats, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	return u.usageRepo.Stats(userEmail, since)
}

// StartRetentionSweep prunes ledger rows older than the retention window
// once a day.
func (u *usageUsecase) StartRetentionSweep(retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			cutoff := time.Now().AddDate(0, 0, -retentionDays)
			pruned, err := u.usageRepo.PruneOlderThan(cutoff)
			if err != nil {
				log.Printf("[ERROR] AI usage retention sweep failed: %v", err)
				continue
			}
			if pruned > 0 {
				log.Printf("Pruned %d AI usage records older than %d days", pruned, retentionDays)
			}
		}
	}()
}
