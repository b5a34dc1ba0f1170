package domain

import "time"

// AI operation types recorded in the ledger.
const (
	OperationResumeParse     = "resume_parse"
	OperationJobSearch       = "job_search"
	OperationEmailGeneration = "email_generation"
	OperationEmailAnalysis   = "email_analysis"
	OperationSmartReply      = "smart_reply"
)

// AIUsageRecord is one append-only row per AI invocation. Rows are never
// updated; the only mutation is the age-based retention sweep.
type AIUsageRecord struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserEmail     string    `json:"user_email" gorm:"index;not null"`
	OperationType string    `json:"operation_type" gorm:"index;not null"`
	InputTokens   int       `json:"input_tokens"`
	OutputTokens  int       `json:"output_tokens"`
	TotalTokens   int       `json:"total_tokens"`
	ModelUsed     string    `json:"model_used"`
	Success       bool      `json:"success"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

// OperationStats aggregates usage for one operation type.
type OperationStats struct {
	OperationType string `json:"operation_type"`
	Count         int64  `json:"count"`
	TotalTokens   int64  `json:"total_tokens"`
}

// UsageStats is the per-user aggregation over a trailing window.
type UsageStats struct {
	TotalOperations   int64            `json:"total_operations"`
	TotalTokens       int64            `json:"total_tokens"`
	TotalInputTokens  int64            `json:"total_input_tokens"`
	TotalOutputTokens int64            `json:"total_output_tokens"`
	OperationsByType  []OperationStats `json:"operations_by_type"`
	RecentUsage       []*AIUsageRecord `json:"recent_usage"`
}
