package dto

import (
	profiledomain "jobsense-backend/internal/profile/domain"

	"jobsense-backend/internal/assistant/usecase"
)

// Profile is optional on every request; when omitted the stored profile of
// the authenticated user is used.

type SearchJobsRequest struct {
	Profile *profiledomain.Profile `json:"profile"`
}

type GenerateEmailRequest struct {
	Profile        *profiledomain.Profile `json:"profile"`
	JobDescription string                 `json:"job_description" binding:"required"`
	Type           string                 `json:"type" binding:"required"`
}

type SmartReplyRequest struct {
	Profile *profiledomain.Profile `json:"profile"`
	Email   usecase.ReplyContext   `json:"email" binding:"required"`
}

type TextResponse struct {
	Text string `json:"text"`
}
