package wishlists

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

// RegisterRoutes registers wishlist routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	wl := rg.Group("/wishlist")
	{
		wl.GET("", h.List)
		wl.POST("/:propertyId", h.Add)
		wl.DELETE("/:propertyId", h.Remove)
	}
}

func (h *Handler) Add(c *gin.Context) {
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

	if err := h.service.Add(c.Request.Context(), ident.UserID, propertyID); err != nil {
		if errors.Is(err, properties.ErrPropertyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		h.logger.Error("wishlist add failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func (h *Handler) Remove(c *gin.Context) {
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

	if err := h.service.Remove(c.Request.Context(), ident.UserID, propertyID); err != nil {
		if errors.Is(err, ErrNotInWishlist) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("wishlist remove failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (h *Handler) List(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	page := pagination.Parse(c.Query("page"), c.Query("limit"))
	items, err := h.service.List(c.Request.Context(), ident.UserID, page)
	if err != nil {
		h.logger.Error("wishlist list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
