// Package analytics supplies view/like/rating aggregates for gallery posts.
// The catalog itself never stores these numbers; they come from a Provider so
// file-backed deployments stay deterministic and tests can pin exact values.
package analytics

// Stats holds the aggregate counters for one gallery post.
type Stats struct {
	Views   int
	Likes   int
	Ratings int
	Rating  float64
}

// Provider resolves stats by gallery slug. Unknown slugs yield zero stats.
type Provider interface {
	Stats(slug string) Stats
}

// Static serves fixed stats from a map. It backs file-based catalog sources
// and doubles as the test fixture provider.
type Static struct {
	stats map[string]Stats
}

// NewStatic creates a provider over the given slug → stats map (nil is fine).
func NewStatic(stats map[string]Stats) *Static {
	return &Static{stats: stats}
}

func (s *Static) Stats(slug string) Stats {
	if s.stats == nil {
		return Stats{}
	}
	return s.stats[slug]
}
