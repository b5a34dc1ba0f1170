package dto

import profiledomain "jobsense-backend/internal/profile/domain"

type SaveProfileRequest struct {
	Profile *profiledomain.Profile `json:"profile" binding:"required"`
}

type UploadResumeRequest struct {
	Base64Data string `json:"base64_data" binding:"required"`
	MimeType   string `json:"mime_type" binding:"required"`
	Filename   string `json:"filename"`
}
