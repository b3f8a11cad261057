package agreements

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/auth"
	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/pkg/pagination"
)

// Handler serves the owner agreement endpoints
type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers owner agreement routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/agreements")
	{
		a.POST("", h.Create)
		a.GET("", h.List)
		a.GET("/:agreementId", h.Get)
		a.GET("/:agreementId/pdf", h.DownloadPDF)
	}
}

func (h *Handler) Create(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req CreateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agreement, err := h.service.Create(c.Request.Context(), ident.UserID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, agreement)
}

func (h *Handler) List(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	page := pagination.Parse(c.Query("page"), c.Query("limit"))
	list, err := h.service.ListByOwner(c.Request.Context(), ident.UserID, page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agreements": list, "page": page.Number, "limit": page.Limit})
}

func (h *Handler) Get(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("agreementId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agreement id"})
		return
	}

	agreement, err := h.service.Get(c.Request.Context(), ident.UserID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreement)
}

func (h *Handler) DownloadPDF(c *gin.Context) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("agreementId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agreement id"})
		return
	}

	pdfBytes, err := h.service.RenderPDF(c.Request.Context(), ident.UserID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("rent-agreement-%s.pdf", id.String()[:8])
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAgreementNotFound), errors.Is(err, properties.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("agreement request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "agreement request failed"})
	}
}
