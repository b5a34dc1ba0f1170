package delivery

import (
	"net/http"

	profiledomain "jobsense-backend/internal/profile/domain"
	profiledto "jobsense-backend/internal/profile/dto"
	"jobsense-backend/internal/profile/usecase"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	profile, err := h.profileUsecase.Get(userEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile", "details": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Save(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	var req profiledto.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.profileUsecase.Save(userEmail, req.Profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	found, err := h.profileUsecase.Delete(userEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete profile", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "profile deleted"})
}

// UploadResume parses the uploaded resume with the AI provider and merges
// the extracted fields into the stored profile.
func (h *ProfileHandler) UploadResume(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	var req profiledto.UploadResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileUsecase.UploadResume(c.Request.Context(), userEmail, profiledomain.ResumeAttachment{
		Data:     req.Base64Data,
		MimeType: req.MimeType,
		Filename: req.Filename,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse resume", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}
