package catalog

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shinydollop/core/internal/models"
	"go.uber.org/zap"
)

// defaultTimeOfDay is appended to date-only frontmatter values so every record
// compares safely as a full timestamp.
const defaultTimeOfDay = "T10:00:00"

var errEmptySourceRecord = errors.New("source record has no variant set")

// Normalizer converts heterogeneous source records into canonical GalleryPosts.
type Normalizer struct {
	logger *zap.Logger
	now    func() time.Time
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithNormalizerClock overrides the wall clock, for tests.
func WithNormalizerClock(now func() time.Time) NormalizerOption {
	return func(n *Normalizer) { n.now = now }
}

func NewNormalizer(logger *zap.Logger, opts ...NormalizerOption) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &Normalizer{logger: logger, now: time.Now}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Normalize canonicalizes a batch. A record that fails to parse is logged and
// skipped, never aborting the batch. Duplicate slugs resolve first-wins, and
// the result is sorted newest-first (stable, so ties keep encounter order).
func (n *Normalizer) Normalize(records []SourceRecord) []GalleryPost {
	posts := make([]GalleryPost, 0, len(records))
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		post, err := n.Canonicalize(rec)
		if err != nil {
			n.logger.Warn("skipping unparseable record", zap.Error(err))
			continue
		}
		if seen[post.Slug] {
			n.logger.Warn("duplicate slug, keeping first occurrence", zap.String("slug", post.Slug))
			continue
		}
		seen[post.Slug] = true
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts
}

// Canonicalize converts a single source record into the canonical shape.
func (n *Normalizer) Canonicalize(rec SourceRecord) (GalleryPost, error) {
	switch {
	case rec.Static != nil:
		return n.canonStatic(rec.Static)
	case rec.Markdown != nil:
		return n.canonMarkdown(rec.Markdown)
	case rec.Row != nil:
		return n.canonRow(rec.Row)
	default:
		return GalleryPost{}, errEmptySourceRecord
	}
}

func (n *Normalizer) canonStatic(rec *StaticRecord) (GalleryPost, error) {
	if strings.TrimSpace(rec.Slug) == "" {
		return GalleryPost{}, errors.New("static record without slug")
	}
	return GalleryPost{
		Slug:        rec.Slug,
		Title:       rec.Title,
		Description: rec.Description,
		Date:        n.parseDate(rec.Date),
		Model:       rec.Model,
		Category:    rec.Category,
		Cover:       rec.Cover,
		Images:      rec.Images,
		Tags:        rec.Tags,
	}, nil
}

func (n *Normalizer) canonRow(row *models.GalleryModel) (GalleryPost, error) {
	if strings.TrimSpace(row.Slug) == "" {
		return GalleryPost{}, errors.New("gallery row without slug")
	}
	images := make([]GalleryImage, len(row.Images))
	for i, img := range row.Images {
		images[i] = GalleryImage{Src: img.Src, Alt: img.Alt, Caption: img.Caption}
	}
	date := row.PublishedAt
	if date.IsZero() {
		date = n.now()
	}
	return GalleryPost{
		Slug:        row.Slug,
		Title:       row.Title,
		Description: row.Description,
		Date:        date,
		Model:       row.Model,
		Category:    row.Category,
		Cover:       row.Cover,
		Images:      images,
		Tags:        row.Tags,
	}, nil
}

// parseDate resolves a source date string, appending the default time-of-day
// to date-only values. Empty or unparseable dates fall back to the current
// time rather than failing the record.
func (n *Normalizer) parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return n.now()
	}
	if !strings.ContainsAny(raw, "T ") {
		raw += defaultTimeOfDay
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}

	n.logger.Warn("unparseable date, using current time", zap.String("date", raw))
	return n.now()
}

// Slugify lowercases a name and replaces whitespace runs with hyphens.
func Slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "-")
}
