// Package search implements the catalog filter pipeline: text relevance,
// facet filters, date-range filter and multi-key sort, in that order. Each
// stage narrows or reorders the previous stage's output and is skipped when
// its spec field is absent.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/shinydollop/core/internal/modules/analytics"
	"github.com/shinydollop/core/internal/modules/catalog"
)

// Term weights of the additive relevance model.
const (
	scoreTitle       = 3
	scoreDescription = 2
	scoreTag         = 2
	scoreModel       = 2
	scoreCategory    = 1
)

// Engine evaluates FilterSpecs against catalog snapshots. It never mutates
// its input and is safe for concurrent use.
type Engine struct {
	stats analytics.Provider
	now   func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithNow overrides the wall clock used for date-range cutoffs, for tests.
func WithNow(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func NewEngine(stats analytics.Provider, opts ...EngineOption) *Engine {
	if stats == nil {
		stats = analytics.NewStatic(nil)
	}
	e := &Engine{stats: stats, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Search applies the filter pipeline and returns the ordered, unpaginated
// result. Identical arguments always yield identical output.
func (e *Engine) Search(posts []catalog.GalleryPost, spec Spec) []catalog.GalleryPost {
	result := make([]catalog.GalleryPost, len(posts))
	copy(result, posts)

	if query := strings.TrimSpace(spec.Query); query != "" {
		result = e.rank(result, query)
	}
	if len(spec.Models) > 0 {
		result = filter(result, func(p catalog.GalleryPost) bool {
			return matchesAnyModel(p.Model, spec.Models)
		})
	}
	if len(spec.Categories) > 0 {
		result = filter(result, func(p catalog.GalleryPost) bool {
			return containsString(spec.Categories, p.Category)
		})
	}
	if len(spec.Tags) > 0 {
		result = filter(result, func(p catalog.GalleryPost) bool {
			return intersects(p.Tags, spec.Tags)
		})
	}
	if spec.DateRange != "" && spec.DateRange != DateRangeAll {
		cutoff := e.cutoff(spec.DateRange)
		result = filter(result, func(p catalog.GalleryPost) bool {
			return !p.Date.Before(cutoff)
		})
	}

	e.sortPosts(result, spec.SortBy, spec.SortOrder)
	return result
}

// rank replaces the working set with the relevance-ranked subset of records
// scoring above zero, ordered by descending score (stable).
func (e *Engine) rank(posts []catalog.GalleryPost, query string) []catalog.GalleryPost {
	terms := strings.Fields(strings.ToLower(query))

	type scored struct {
		post  catalog.GalleryPost
		score int
	}
	matched := make([]scored, 0, len(posts))
	for _, p := range posts {
		if s := scorePost(p, terms); s > 0 {
			matched = append(matched, scored{post: p, score: s})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	out := make([]catalog.GalleryPost, len(matched))
	for i, m := range matched {
		out[i] = m.post
	}
	return out
}

// scorePost computes the additive relevance score of a post for the given
// lowercased query terms.
func scorePost(p catalog.GalleryPost, terms []string) int {
	title := strings.ToLower(p.Title)
	description := strings.ToLower(p.Description)
	model := strings.ToLower(p.Model)
	category := strings.ToLower(p.Category)

	score := 0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += scoreTitle
		}
		if strings.Contains(description, term) {
			score += scoreDescription
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				score += scoreTag
				break
			}
		}
		if strings.Contains(model, term) {
			score += scoreModel
		}
		if strings.Contains(category, term) {
			score += scoreCategory
		}
	}
	return score
}

func (e *Engine) cutoff(r DateRange) time.Time {
	now := e.now()
	switch r {
	case DateRangeWeek:
		return now.AddDate(0, 0, -7)
	case DateRangeMonth:
		return now.AddDate(0, -1, 0)
	case DateRangeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

func (e *Engine) sortPosts(posts []catalog.GalleryPost, field SortField, order SortOrder) {
	if field == "" {
		field = SortByDate
	}
	if order == "" {
		order = SortDesc
	}

	var less func(a, b catalog.GalleryPost) bool
	switch field {
	case SortByTitle:
		less = func(a, b catalog.GalleryPost) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortByRating:
		less = func(a, b catalog.GalleryPost) bool {
			return e.stats.Stats(a.Slug).Rating < e.stats.Stats(b.Slug).Rating
		}
	case SortByViews:
		less = func(a, b catalog.GalleryPost) bool {
			return e.stats.Stats(a.Slug).Views < e.stats.Stats(b.Slug).Views
		}
	case SortByLikes:
		less = func(a, b catalog.GalleryPost) bool {
			return e.stats.Stats(a.Slug).Likes < e.stats.Stats(b.Slug).Likes
		}
	default:
		less = func(a, b catalog.GalleryPost) bool {
			return a.Date.Before(b.Date)
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if order == SortAsc {
			return less(posts[i], posts[j])
		}
		return less(posts[j], posts[i])
	})
}

func filter(posts []catalog.GalleryPost, keep func(catalog.GalleryPost) bool) []catalog.GalleryPost {
	out := posts[:0:0]
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// matchesAnyModel reports whether the post's model field case-insensitively
// contains (or equals) any of the wanted values.
func matchesAnyModel(model string, wanted []string) bool {
	m := strings.ToLower(model)
	for _, w := range wanted {
		if strings.Contains(m, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		if containsString(b, x) {
			return true
		}
	}
	return false
}
