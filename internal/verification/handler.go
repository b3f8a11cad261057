package verification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/auth"
	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/pkg/geo"
)

// Handler serves the owner-facing verification workflow
type Handler struct {
	service *OwnerService
	logger  *zap.Logger
}

func NewHandler(service *OwnerService, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers owner verification routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	v := rg.Group("/verification")
	{
		v.POST("/initiate", h.Initiate)
		v.POST("/payment/complete", h.CompletePayment)
		v.POST("/capture-location", h.CaptureLocation)
		v.GET("/status/:propertyId", h.Status)
	}
}

type initiatePayload struct {
	PropertyID string `json:"property_id" binding:"required"`
}

func (h *Handler) Initiate(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var payload initiatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_id is required"})
		return
	}
	propertyID, err := uuid.Parse(payload.PropertyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property_id"})
		return
	}

	req, err := h.service.Initiate(c.Request.Context(), ident.UserID, propertyID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

type completePaymentPayload struct {
	RequestID string `json:"request_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
}

func (h *Handler) CompletePayment(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var payload completePaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request_id and payment_id are required"})
		return
	}
	requestID, err := uuid.Parse(payload.RequestID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request_id"})
		return
	}

	req, err := h.service.CompletePayment(c.Request.Context(), ident.UserID, requestID, payload.PaymentID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

type captureLocationPayload struct {
	RequestID string  `json:"request_id" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

func (h *Handler) CaptureLocation(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var payload captureLocationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request_id is required"})
		return
	}
	requestID, err := uuid.Parse(payload.RequestID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request_id"})
		return
	}

	req, err := h.service.CaptureLocation(c.Request.Context(), ident.UserID, requestID,
		payload.Latitude, payload.Longitude, payload.Address)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *Handler) Status(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	req, err := h.service.LatestForProperty(c.Request.Context(), ident.UserID, propertyID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRequestNotFound), errors.Is(err, properties.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrActiveRequestExists), errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, geo.ErrOutOfRange), errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("verification request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification request failed"})
	}
}
