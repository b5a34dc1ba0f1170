package dto

import (
	emaildomain "jobsense-backend/internal/email/domain"
	"time"
)

type EmailsResponse struct {
	Emails []*emaildomain.Email `json:"emails"`
	Total  int                  `json:"total"`
}

type SaveEmailRequest struct {
	Email emaildomain.IncomingEmail `json:"email" binding:"required"`
}

type LastSyncResponse struct {
	LastSync *time.Time `json:"last_sync"`
}

type DeleteResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count,omitempty"`
}
