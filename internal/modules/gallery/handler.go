package gallery

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shinydollop/core/internal/modules/search"
	"github.com/shinydollop/core/internal/pkg/pagination"
	"github.com/shinydollop/core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/galleries", h.List)
	rg.GET("/galleries/trending", h.Trending)
	rg.GET("/galleries/:model/:slug", h.Get)
	rg.GET("/search", h.Search)
}

// List handles GET /api/galleries
func (h *Handler) List(c *gin.Context) {
	q := pagination.FromContext(c)
	response.OK(c, h.service.List(c.Request.Context(), q))
}

// Search handles GET /api/search
func (h *Handler) Search(c *gin.Context) {
	spec := search.SpecFromContext(c)
	response.OK(c, h.service.Search(c.Request.Context(), spec))
}

// Get handles GET /api/galleries/:model/:slug
func (h *Handler) Get(c *gin.Context) {
	slug := c.Param("model") + "/" + c.Param("slug")
	viewer := ViewerInfo{
		UserID:    c.Query("userId"),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	gallery, err := h.service.Get(c.Request.Context(), slug, viewer)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "gallery not found")
			return
		}
		response.InternalError(c, "failed to fetch gallery")
		return
	}
	response.OK(c, gallery)
}

// Trending handles GET /api/galleries/trending
func (h *Handler) Trending(c *gin.Context) {
	limit := defaultTrendingLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	response.OK(c, h.service.Trending(c.Request.Context(), limit))
}
