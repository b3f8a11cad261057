package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers auth routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, jwtSecret string) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/request-otp", h.RequestOTP)
		authGroup.POST("/verify-otp", h.VerifyOTP)
		authGroup.GET("/me", RequireAuth(jwtSecret), h.Me)
	}
}

type requestOTPPayload struct {
	Phone string `json:"phone" binding:"required"`
	Role  Role   `json:"role"`
}

func (h *Handler) RequestOTP(c *gin.Context) {
	var payload requestOTPPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
		return
	}
	_, err := h.service.RequestOTP(c.Request.Context(), payload.Phone, payload.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPhone):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrRoleNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.logger.Error("request otp failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue otp"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "otp sent"})
}

type verifyOTPPayload struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
	Role  Role   `json:"role"`
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var payload verifyOTPPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone and code are required"})
		return
	}
	token, user, err := h.service.VerifyOTP(c.Request.Context(), payload.Phone, payload.Code, payload.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrOTPExpired), errors.Is(err, ErrOTPMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		case errors.Is(err, ErrRoleNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.logger.Error("verify otp failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handler) Me(c *gin.Context) {
	ident, ok := IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	user, err := h.service.GetUser(c.Request.Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("load user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	c.JSON(http.StatusOK, user)
}
