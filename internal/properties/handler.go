package properties

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/auth"
	"gharmitra/platform-backend/pkg/pagination"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublicRoutes registers the unauthenticated listing surface
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties", h.List)
	rg.GET("/properties/:id", h.Get)
}

// RegisterOwnerRoutes registers the owner dashboard surface
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties", h.Create)
	rg.GET("/properties", h.ListMine)
	rg.PUT("/properties/:id", h.Update)
	rg.DELETE("/properties/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	filter := Filter{
		City:         c.Query("city"),
		PropertyType: c.Query("property_type"),
		ListingType:  ListingType(c.Query("listing_type")),
		VerifiedOnly: c.Query("verified") == "true",
		Page:         pagination.Parse(c.Query("page"), c.Query("limit")),
	}
	if v := c.Query("min_price"); v != "" {
		filter.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.Query("max_price"); v != "" {
		filter.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("list properties failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": list,
		"total":      total,
		"page":       filter.Page.Number,
		"limit":      filter.Page.Limit,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	property, images, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		h.logger.Error("get property failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property, "images": images})
}

func (h *Handler) Create(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	property, err := h.service.Create(c.Request.Context(), ident.UserID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, property)
}

func (h *Handler) ListMine(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	page := pagination.Parse(c.Query("page"), c.Query("limit"))
	list, err := h.service.ListByOwner(c.Request.Context(), ident.UserID, page)
	if err != nil {
		h.logger.Error("list owner properties failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": list})
}

func (h *Handler) Update(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	property, err := h.service.Update(c.Request.Context(), id, ident.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your property"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *Handler) Delete(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, ident.UserID); err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your property"})
		default:
			h.logger.Error("delete property failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete property"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
