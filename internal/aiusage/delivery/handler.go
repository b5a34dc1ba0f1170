package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobsense-backend/internal/aiusage/usecase"
)

type UsageHandler struct {
	usageUsecase usecase.UsageUsecase
}

func NewUsageHandler(usageUsecase usecase.UsageUsecase) *UsageHandler {
	return &UsageHandler{usageUsecase: usageUsecase}
}

// Stats handles GET /api/usage?days=N
func (h *UsageHandler) Stats(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = parsed
	}

	stats, err := h.usageUsecase.Stats(userEmail, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load usage stats", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
