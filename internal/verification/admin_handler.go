package verification

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/auth"
	"gharmitra/platform-backend/pkg/pagination"
)

// AdminHandler serves the admin review queue
type AdminHandler struct {
	service *AdminService
	logger  *zap.Logger
}

func NewAdminHandler(service *AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{service: service, logger: logger}
}

// RegisterRoutes registers admin verification routes
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	v := rg.Group("/verifications")
	{
		v.GET("", h.List)
		v.POST("/:requestId/approve", h.Approve)
		v.POST("/:requestId/reject", h.Reject)
	}
}

func (h *AdminHandler) List(c *gin.Context) {
	filter := QueueFilter{
		Status: RequestStatus(c.Query("status")),
		Page:   pagination.Parse(c.Query("page"), c.Query("limit")),
	}

	rows, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("list verifications failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list verification requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": rows,
		"total":    total,
		"page":     filter.Page.Number,
		"limit":    filter.Page.Limit,
	})
}

type decisionPayload struct {
	ReviewNotes string `json:"review_notes"`
}

type decisionFunc func(ctx context.Context, reviewerID, requestID uuid.UUID, notes string) (*VerificationRequest, error)

func (h *AdminHandler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve)
}

func (h *AdminHandler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject)
}

func (h *AdminHandler) decide(c *gin.Context, apply decisionFunc) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var payload decisionPayload
	// Notes are optional; an empty body is fine.
	_ = c.ShouldBindJSON(&payload)

	req, err := apply(c.Request.Context(), ident.UserID, requestID, payload.ReviewNotes)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAlreadyDecided), errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("verification decision failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decision failed"})
		}
		return
	}

	c.JSON(http.StatusOK, req)
}
