package syndication

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shinydollop/core/internal/config"
	"github.com/shinydollop/core/internal/modules/catalog"
)

// Handler serves the sitemap and RSS feed built from the catalog snapshot.
type Handler struct {
	store *catalog.Store
	site  config.SiteConfig
	now   func() time.Time
}

func NewHandler(store *catalog.Store, site config.SiteConfig) *Handler {
	return &Handler{store: store, site: site, now: time.Now}
}

// RegisterRoutes mounts the syndication endpoints at the site root, outside
// the /api prefix.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/sitemap.xml", h.Sitemap)
	r.GET("/sitemap-index.xml", h.SitemapIndex)
	r.GET("/rss.xml", h.Feed)
}
