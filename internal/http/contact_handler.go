package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend/internal/service"
)

// ContactHandler atiende el formulario público de contacto.
type ContactHandler struct {
	logger     *zap.Logger
	contactSvc *service.ContactService
}

func NewContactHandler(logger *zap.Logger, contactSvc *service.ContactService) *ContactHandler {
	return &ContactHandler{
		logger:     logger,
		contactSvc: contactSvc,
	}
}

// Submit maneja POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid contact request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	_, err := h.contactSvc.Submit(c.Request.Context(), service.ContactInput{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		ClientKey: c.ClientIP(),
	})
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": vErr.Error()})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Too many requests"})
		default:
			h.logger.Error("contact submit failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Form submitted and email sent"})
}
