package gallery

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shinydollop/core/internal/models"
	"github.com/shinydollop/core/internal/modules/analytics"
	"github.com/shinydollop/core/internal/modules/catalog"
	"github.com/shinydollop/core/internal/modules/search"
	"github.com/shinydollop/core/internal/pkg/pagination"
)

// ErrNotFound is returned when no gallery matches the requested slug.
var ErrNotFound = errors.New("gallery not found")

const defaultTrendingLimit = 10

// Service exposes gallery listing, lookup, trending and search on top of
// the catalog store. The database handle is optional; when present, views
// are recorded on each detail lookup.
type Service struct {
	store  *catalog.Store
	engine *search.Engine
	stats  analytics.Provider
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(store *catalog.Store, engine *search.Engine, stats analytics.Provider, db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		engine: engine,
		stats:  stats,
		db:     db,
		logger: logger,
	}
}

// List returns a page of galleries, newest first.
func (s *Service) List(ctx context.Context, q pagination.Query) *ListResponse {
	snap := s.store.Snapshot(ctx)
	page := pagination.Paginate(snap.Posts, q)
	return s.listResponse(page)
}

// Search runs the full filter pipeline and paginates the result.
func (s *Service) Search(ctx context.Context, spec search.Spec) *ListResponse {
	snap := s.store.Snapshot(ctx)
	matched := s.engine.Search(snap.Posts, spec)
	page := pagination.Paginate(matched, spec.Pagination)
	return s.listResponse(page)
}

// Get looks up a single gallery by its model/name slug. A successful lookup
// records a view asynchronously when a database is configured.
func (s *Service) Get(ctx context.Context, slug string, viewer ViewerInfo) (*Gallery, error) {
	snap := s.store.Snapshot(ctx)
	post, ok := snap.Get(slug)
	if !ok {
		return nil, ErrNotFound
	}
	if s.db != nil {
		go s.recordView(slug, viewer)
	}
	g := fromPost(post, s.stats.Stats(slug))
	return &g, nil
}

// Trending returns the top galleries ranked by views, then rating, then
// recency.
func (s *Service) Trending(ctx context.Context, limit int) *TrendingResponse {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}
	snap := s.store.Snapshot(ctx)
	posts := make([]catalog.GalleryPost, len(snap.Posts))
	copy(posts, snap.Posts)
	sort.SliceStable(posts, func(i, j int) bool {
		si, sj := s.stats.Stats(posts[i].Slug), s.stats.Stats(posts[j].Slug)
		if si.Views != sj.Views {
			return si.Views > sj.Views
		}
		if si.Rating != sj.Rating {
			return si.Rating > sj.Rating
		}
		return posts[i].Date.After(posts[j].Date)
	})
	if len(posts) > limit {
		posts = posts[:limit]
	}
	out := make([]Gallery, 0, len(posts))
	for _, p := range posts {
		out = append(out, fromPost(p, s.stats.Stats(p.Slug)))
	}
	return &TrendingResponse{Galleries: out}
}

// ViewerInfo carries the request metadata stored with a recorded view.
type ViewerInfo struct {
	UserID    string
	IPAddress string
	UserAgent string
}

func (s *Service) recordView(slug string, viewer ViewerInfo) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	view := models.ViewModel{
		GalleryID: slug,
		IPAddress: viewer.IPAddress,
		UserAgent: viewer.UserAgent,
	}
	if viewer.UserID != "" {
		view.UserID = &viewer.UserID
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&view).Error; err != nil {
			return err
		}
		return tx.Model(&models.GalleryModel{}).
			Where("slug = ?", slug).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	})
	if err != nil {
		s.logger.Warn("failed to record gallery view", zap.String("slug", slug), zap.Error(err))
	}
}

func (s *Service) listResponse(page pagination.Result[catalog.GalleryPost]) *ListResponse {
	galleries := make([]Gallery, 0, len(page.Items))
	for _, p := range page.Items {
		galleries = append(galleries, fromPost(p, s.stats.Stats(p.Slug)))
	}
	return &ListResponse{
		Galleries:  galleries,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}
