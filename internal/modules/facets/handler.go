package facets

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shinydollop/core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/models", h.Models)
	rg.GET("/models/:slug", h.Model)
	rg.GET("/categories", h.Categories)
	rg.GET("/tags", h.Tags)
}

// Models handles GET /api/models
func (h *Handler) Models(c *gin.Context) {
	response.OK(c, gin.H{"models": h.service.Models(c.Request.Context())})
}

// Model handles GET /api/models/:slug
func (h *Handler) Model(c *gin.Context) {
	model, err := h.service.Model(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrModelNotFound) {
			response.NotFound(c, "model not found")
			return
		}
		response.InternalError(c, "failed to fetch model")
		return
	}
	response.OK(c, model)
}

// Categories handles GET /api/categories
func (h *Handler) Categories(c *gin.Context) {
	response.OK(c, gin.H{"categories": h.service.Categories(c.Request.Context())})
}

// Tags handles GET /api/tags
func (h *Handler) Tags(c *gin.Context) {
	response.OK(c, gin.H{"tags": h.service.Tags(c.Request.Context())})
}
