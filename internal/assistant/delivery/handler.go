package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobsense-backend/internal/assistant/dto"
	"jobsense-backend/internal/assistant/usecase"
)

type AssistantHandler struct {
	assistantUsecase usecase.AssistantUsecase
}

func NewAssistantHandler(assistantUsecase usecase.AssistantUsecase) *AssistantHandler {
	return &AssistantHandler{assistantUsecase: assistantUsecase}
}

// SearchJobs handles POST /api/ai/search-jobs
func (h *AssistantHandler) SearchJobs(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	var req dto.SearchJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.assistantUsecase.SearchJobs(c.Request.Context(), userEmail, req.Profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search jobs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GenerateEmail handles POST /api/ai/generate-email
func (h *AssistantHandler) GenerateEmail(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	var req dto.GenerateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing job description or email type"})
		return
	}

	text, err := h.assistantUsecase.GenerateEmail(c.Request.Context(), userEmail, req.Profile, req.JobDescription, req.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate email", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.TextResponse{Text: text})
}

// AutoReply handles POST /api/ai/auto-reply
func (h *AssistantHandler) AutoReply(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	result, err := h.assistantUsecase.AutoReplyHighPriority(c.Request.Context(), userEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run auto-reply", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SmartReply handles POST /api/ai/smart-reply
func (h *AssistantHandler) SmartReply(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	var req dto.SmartReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email data"})
		return
	}

	text, err := h.assistantUsecase.SmartReply(c.Request.Context(), userEmail, req.Email, req.Profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate smart reply", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.TextResponse{Text: text})
}
