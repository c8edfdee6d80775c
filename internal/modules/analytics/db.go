package analytics

import (
	"context"
	"sync"

	"github.com/shinydollop/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DB aggregates stats from the galleries table. The map is rebuilt wholesale
// on Refresh, typically hooked to catalog snapshot reloads, so lookups never
// touch the database on the request path.
type DB struct {
	db     *gorm.DB
	logger *zap.Logger

	mu    sync.RWMutex
	stats map[string]Stats
}

// NewDB creates a database-backed provider. Call Refresh before first use.
func NewDB(db *gorm.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{db: db, logger: logger, stats: map[string]Stats{}}
}

// Refresh recomputes the per-slug aggregates. On error the previous map is
// kept so readers keep serving the last known numbers.
func (p *DB) Refresh(ctx context.Context) error {
	var rows []models.GalleryModel
	if err := p.db.WithContext(ctx).
		Select("slug", "view_count", "average_rating", "rating_count").
		Find(&rows).Error; err != nil {
		p.logger.Warn("analytics refresh failed, keeping previous aggregates", zap.Error(err))
		return err
	}

	next := make(map[string]Stats, len(rows))
	for _, row := range rows {
		next[row.Slug] = Stats{
			Views:   row.ViewCount,
			Ratings: row.RatingCount,
			Rating:  row.AverageRating,
		}
	}

	p.mu.Lock()
	p.stats = next
	p.mu.Unlock()
	return nil
}

func (p *DB) Stats(slug string) Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats[slug]
}
