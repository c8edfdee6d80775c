package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shinydollop/core/internal/middleware"
	"github.com/shinydollop/core/internal/modules/facets"
	"github.com/shinydollop/core/internal/modules/gallery"
	"github.com/shinydollop/core/internal/modules/search"
	"github.com/shinydollop/core/internal/modules/syndication"
	"github.com/shinydollop/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c, "method not allowed")
	})

	// Root-level syndication endpoints
	root := r.Group("")
	syndication.NewHandler(a.store, a.cfg.Site).RegisterRoutes(root)

	api := r.Group("/api")
	if a.rc != nil {
		api.Use(middleware.HTTPCache(a.rc.Raw(), middleware.HTTPCacheOptions{
			TTL:       15 * time.Second,
			Disable:   a.cfg.IsDev(),
			SkipPaths: []string{"/api/health", "/api/clean_cache"},
		}))
	}

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api.POST("/clean_cache", func(c *gin.Context) {
		a.store.Invalidate()
		var deleted int64
		if a.rc != nil {
			var err error
			deleted, err = middleware.PurgeHTTPCache(c.Request.Context(), a.rc.Raw())
			if err != nil {
				response.InternalError(c, "failed to purge response cache")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": deleted})
	})

	engine := search.NewEngine(a.stats)
	gallerySvc := gallery.NewService(a.store, engine, a.stats, a.db, a.logger)
	gallery.NewHandler(gallerySvc).RegisterRoutes(api)
	facets.NewHandler(facets.NewService(a.store, a.stats)).RegisterRoutes(api)
}
