package contacts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/auth"
	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/pkg/pagination"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterSeekerRoutes registers the seeker contact surface
func (h *Handler) RegisterSeekerRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties/:id/contact", h.Contact)
}

// RegisterOwnerRoutes registers the owner lead surface
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties/:id/leads", h.ListLeads)
	rg.PUT("/leads/:id", h.UpdateLead)
}

type contactPayload struct {
	Message string `json:"message"`
}

func (h *Handler) Contact(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	var payload contactPayload
	_ = c.ShouldBindJSON(&payload)

	lead, err := h.service.Contact(c.Request.Context(), ident.UserID, propertyID, payload.Message)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		case errors.Is(err, ErrOwnContact):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("contact failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record interest"})
		}
		return
	}

	c.JSON(http.StatusCreated, lead)
}

func (h *Handler) ListLeads(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	page := pagination.Parse(c.Query("page"), c.Query("limit"))
	leads, err := h.service.ListForProperty(c.Request.Context(), ident.UserID, propertyID, page)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your property"})
		default:
			h.logger.Error("list leads failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list leads"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

type updateLeadPayload struct {
	Status LeadStatus `json:"status" binding:"required"`
}

func (h *Handler) UpdateLead(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead id"})
		return
	}

	var payload updateLeadPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	lead, err := h.service.UpdateStatus(c.Request.Context(), ident.UserID, leadID, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrLeadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your lead"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, lead)
}
