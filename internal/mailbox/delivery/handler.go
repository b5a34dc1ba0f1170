package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobsense-backend/internal/mailbox/dto"
	"jobsense-backend/internal/mailbox/usecase"
)

type MailboxHandler struct {
	mailboxUsecase usecase.MailboxUsecase
}

func NewMailboxHandler(mailboxUsecase usecase.MailboxUsecase) *MailboxHandler {
	return &MailboxHandler{mailboxUsecase: mailboxUsecase}
}

// Get handles GET /api/mailbox/settings
func (h *MailboxHandler) Get(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	settings, err := h.mailboxUsecase.Get(userEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load mailbox settings", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Connect handles POST /api/mailbox/connect
func (h *MailboxHandler) Connect(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	var req dto.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code is required"})
		return
	}

	settings, err := h.mailboxUsecase.Connect(c.Request.Context(), userEmail, req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to connect mailbox", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Disconnect handles POST /api/mailbox/disconnect
func (h *MailboxHandler) Disconnect(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	if err := h.mailboxUsecase.Disconnect(userEmail); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disconnect mailbox", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.DisconnectResponse{Success: true})
}
