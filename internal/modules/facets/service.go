package facets

import (
	"context"
	"errors"
	"sort"

	"github.com/shinydollop/core/internal/modules/analytics"
	"github.com/shinydollop/core/internal/modules/catalog"
)

// ErrModelNotFound is returned when no model matches the requested slug.
var ErrModelNotFound = errors.New("model not found")

// Service exposes the derived facet listings: the model roster and the
// distinct category and tag vocabularies.
type Service struct {
	store *catalog.Store
	stats analytics.Provider
}

func NewService(store *catalog.Store, stats analytics.Provider) *Service {
	return &Service{store: store, stats: stats}
}

// Models returns the roster sorted by gallery count, with per-model view
// totals filled in from the analytics provider.
func (s *Service) Models(ctx context.Context) []catalog.Model {
	snap := s.store.Snapshot(ctx)
	out := make([]catalog.Model, len(snap.Models))
	copy(out, snap.Models)
	for i := range out {
		out[i].TotalLikes = s.totalViews(snap, out[i].Name)
	}
	return out
}

// Model returns a single roster entry by slug.
func (s *Service) Model(ctx context.Context, slug string) (*catalog.Model, error) {
	snap := s.store.Snapshot(ctx)
	m, ok := snap.ModelBySlug(slug)
	if !ok {
		return nil, ErrModelNotFound
	}
	m.TotalLikes = s.totalViews(snap, m.Name)
	return &m, nil
}

// Categories returns the distinct category names, sorted.
func (s *Service) Categories(ctx context.Context) []string {
	return sortedCopy(s.store.Snapshot(ctx).Categories)
}

// Tags returns the distinct tag names, sorted.
func (s *Service) Tags(ctx context.Context) []string {
	return sortedCopy(s.store.Snapshot(ctx).Tags)
}

func (s *Service) totalViews(snap *catalog.Snapshot, model string) int {
	total := 0
	for _, p := range snap.PostsByModel(model) {
		total += s.stats.Stats(p.Slug).Views
	}
	return total
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
