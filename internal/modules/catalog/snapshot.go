package catalog

import (
	"fmt"
	"sort"
	"time"
)

// Snapshot is an immutable point-in-time view of the whole catalog: the
// normalized posts plus the aggregates derived from them. A snapshot is only
// ever replaced by reference, never mutated, so concurrent readers see either
// the old or the new one.
type Snapshot struct {
	Posts      []GalleryPost
	Models     []Model
	Categories []string
	Tags       []string
	LoadedAt   time.Time

	bySlug      map[string]int
	modelBySlug map[string]int
}

// NewSnapshot builds a snapshot over already-normalized posts (expected
// newest-first) and derives the model roster, category set and tag set.
func NewSnapshot(posts []GalleryPost, loadedAt time.Time) *Snapshot {
	s := &Snapshot{
		Posts:       posts,
		LoadedAt:    loadedAt,
		bySlug:      make(map[string]int, len(posts)),
		modelBySlug: map[string]int{},
	}

	type modelAgg struct {
		name     string
		avatar   string
		count    int
		earliest time.Time
	}
	modelOrder := []string{}
	modelAggs := map[string]*modelAgg{}
	seenCategory := map[string]bool{}
	seenTag := map[string]bool{}

	for i, p := range posts {
		if _, dup := s.bySlug[p.Slug]; !dup {
			s.bySlug[p.Slug] = i
		}

		if p.Model != "" {
			agg, ok := modelAggs[p.Model]
			if !ok {
				agg = &modelAgg{name: p.Model, avatar: p.Cover, earliest: p.Date}
				modelAggs[p.Model] = agg
				modelOrder = append(modelOrder, p.Model)
			}
			agg.count++
			if p.Date.Before(agg.earliest) {
				agg.earliest = p.Date
			}
			if agg.avatar == "" {
				agg.avatar = p.Cover
			}
		}

		if p.Category != "" && !seenCategory[p.Category] {
			seenCategory[p.Category] = true
			s.Categories = append(s.Categories, p.Category)
		}
		for _, t := range p.Tags {
			if t != "" && !seenTag[t] {
				seenTag[t] = true
				s.Tags = append(s.Tags, t)
			}
		}
	}

	for _, name := range modelOrder {
		agg := modelAggs[name]
		s.Models = append(s.Models, Model{
			Name:         agg.name,
			Slug:         Slugify(agg.name),
			Avatar:       agg.avatar,
			Bio:          fmt.Sprintf("Model with %d galleries", agg.count),
			GalleryCount: agg.count,
			JoinDate:     agg.earliest.Format("2006-01-02"),
		})
	}
	sort.SliceStable(s.Models, func(i, j int) bool {
		return s.Models[i].GalleryCount > s.Models[j].GalleryCount
	})
	for i, m := range s.Models {
		s.modelBySlug[m.Slug] = i
	}

	return s
}

// Get returns the post with the given slug.
func (s *Snapshot) Get(slug string) (GalleryPost, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return GalleryPost{}, false
	}
	return s.Posts[i], true
}

// ModelBySlug returns the roster entry with the given slug.
func (s *Snapshot) ModelBySlug(slug string) (Model, bool) {
	i, ok := s.modelBySlug[slug]
	if !ok {
		return Model{}, false
	}
	return s.Models[i], true
}

// PostsByModel returns the posts whose model field matches the given value,
// keeping snapshot order.
func (s *Snapshot) PostsByModel(model string) []GalleryPost {
	var out []GalleryPost
	for _, p := range s.Posts {
		if p.Model == model {
			out = append(out, p)
		}
	}
	return out
}
