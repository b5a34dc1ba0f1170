package delivery

import (
	"errors"
	"net/http"

	emaildomain "jobsense-backend/internal/email/domain"
	emaildto "jobsense-backend/internal/email/dto"
	"jobsense-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
	}
}

func (h *EmailHandler) List(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	emails, err := h.emailUsecase.ListEmails(userEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get emails", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.EmailsResponse{Emails: emails, Total: len(emails)})
}

func (h *EmailHandler) ListByCategory(c *gin.Context) {
	userEmail := c.GetString("userEmail")
	category := c.Param("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing category parameter"})
		return
	}

	emails, err := h.emailUsecase.ListByCategory(userEmail, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get emails by category", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.EmailsResponse{Emails: emails, Total: len(emails)})
}

// Sync fetches recent mailbox messages, classifies them and reconciles the
// result into the store.
func (h *EmailHandler) Sync(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	result, err := h.emailUsecase.SyncInbox(c.Request.Context(), userEmail)
	if err != nil {
		if errors.Is(err, emaildomain.ErrNotConnected) || errors.Is(err, emaildomain.ErrSessionExpired) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync emails", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) Save(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	var req emaildto.SaveEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email.MessageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing email id"})
		return
	}

	saved, err := h.emailUsecase.SaveEmail(userEmail, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save email", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (h *EmailHandler) MarkRead(c *gin.Context) {
	userEmail := c.GetString("userEmail")
	messageID := c.Param("id")

	email, err := h.emailUsecase.MarkRead(userEmail, messageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark email as read", "details": err.Error()})
		return
	}
	if email == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "email not found"})
		return
	}

	c.JSON(http.StatusOK, email)
}

func (h *EmailHandler) Delete(c *gin.Context) {
	userEmail := c.GetString("userEmail")
	messageID := c.Param("id")

	found, err := h.emailUsecase.Delete(userEmail, messageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete email", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "email not found"})
		return
	}

	c.JSON(http.StatusOK, emaildto.DeleteResponse{Success: true, Count: 1})
}

func (h *EmailHandler) DeleteAll(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	count, err := h.emailUsecase.DeleteAll(userEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete emails", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.DeleteResponse{Success: true, Count: count})
}

func (h *EmailHandler) LastSync(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	lastSync, err := h.emailUsecase.LastSync(userEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get last sync", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.LastSyncResponse{LastSync: lastSync})
}
