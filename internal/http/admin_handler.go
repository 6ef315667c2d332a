package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend/internal/service"
)

// AdminHandler mantiene dependencias para los endpoints de administración.
type AdminHandler struct {
	logger   *zap.Logger
	adminSvc *service.AdminService
}

func NewAdminHandler(logger *zap.Logger, adminSvc *service.AdminService) *AdminHandler {
	return &AdminHandler{
		logger:   logger,
		adminSvc: adminSvc,
	}
}

// Login maneja POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
		return
	}

	token, err := h.adminSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsRequired):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		default:
			h.logger.Error("admin login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, token)
}

// ListSubmissions maneja GET /api/submissions. Requiere AdminAuthMiddleware.
func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	submissions, err := h.adminSvc.ListSubmissions(c.Request.Context())
	if err != nil {
		h.logger.Error("list submissions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch submissions"})
		return
	}
	claims, _ := GetAuthClaims(c)
	h.logger.Info("submissions listed",
		zap.String("sub", claims.Subject),
		zap.Int("count", len(submissions)),
	)
	c.JSON(http.StatusOK, submissions)
}
