package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = func() time.Time {
	return time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)
}

func testNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	return NewNormalizer(nil, WithNormalizerClock(testClock))
}

const sampleMarkdown = `---
title: Golden Hour
description: Sunset session at the beach
date: "2025-08-05"
tags:
  - Beach
  - Sunset
category: Outdoor
---

![First light](https://cdn.example.com/1.jpg)

Some prose between images.

![Last light](https://cdn.example.com/2.jpg)
`

func TestCanonMarkdown(t *testing.T) {
	n := testNormalizer(t)

	post, err := n.Canonicalize(SourceRecord{Markdown: &MarkdownRecord{
		ModelDir: "Mila Woods",
		Name:     "Golden Hour",
		Content:  []byte(sampleMarkdown),
	}})
	require.NoError(t, err)

	assert.Equal(t, "mila-woods/golden-hour", post.Slug)
	assert.Equal(t, "Golden Hour", post.Title)
	assert.Equal(t, "Sunset session at the beach", post.Description)
	assert.Equal(t, "Outdoor", post.Category)
	assert.Equal(t, []string{"Beach", "Sunset"}, post.Tags)

	// model defaults to the directory slug when frontmatter omits it
	assert.Equal(t, "mila-woods", post.Model)

	// date-only values resolve at the default time of day
	assert.Equal(t, time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC), post.Date)

	require.Len(t, post.Images, 2)
	assert.Equal(t, "https://cdn.example.com/1.jpg", post.Images[0].Src)
	assert.Equal(t, "First light", post.Images[0].Alt)
	assert.Equal(t, "First light", post.Images[0].Caption)

	// cover falls back to the first scanned image
	assert.Equal(t, "https://cdn.example.com/1.jpg", post.Cover)
}

func TestCanonMarkdownExplicitCoverAndModel(t *testing.T) {
	n := testNormalizer(t)

	post, err := n.Canonicalize(SourceRecord{Markdown: &MarkdownRecord{
		ModelDir: "lena",
		Name:     "Studio Lines",
		Content: []byte(`---
title: Studio Lines
model: Lena Hart
cover: https://cdn.example.com/cover.jpg
published: "2025-07-30"
---

![Shot](https://cdn.example.com/a.jpg)
`),
	}})
	require.NoError(t, err)

	assert.Equal(t, "lena/studio-lines", post.Slug)
	assert.Equal(t, "Lena Hart", post.Model)
	assert.Equal(t, "https://cdn.example.com/cover.jpg", post.Cover)
	assert.Equal(t, time.Date(2025, 7, 30, 10, 0, 0, 0, time.UTC), post.Date)
}

func TestCanonMarkdownWithoutFrontmatter(t *testing.T) {
	n := testNormalizer(t)

	post, err := n.Canonicalize(SourceRecord{Markdown: &MarkdownRecord{
		ModelDir: "sofia",
		Name:     "untitled",
		Content:  []byte("![x](https://cdn.example.com/x.jpg)\n"),
	}})
	require.NoError(t, err)

	assert.Equal(t, "sofia/untitled", post.Slug)
	assert.Equal(t, testClock(), post.Date)
	assert.Equal(t, []string{}, post.Tags)
	require.Len(t, post.Images, 1)
}

func TestCanonMarkdownStripsByteOrderMark(t *testing.T) {
	n := testNormalizer(t)

	post, err := n.Canonicalize(SourceRecord{Markdown: &MarkdownRecord{
		ModelDir: "mila",
		Name:     "bom",
		Content:  []byte("\xef\xbb\xbf---\ntitle: With BOM\n---\n"),
	}})
	require.NoError(t, err)
	assert.Equal(t, "With BOM", post.Title)
}

func TestCanonMarkdownUnterminatedFrontmatter(t *testing.T) {
	n := testNormalizer(t)

	_, err := n.Canonicalize(SourceRecord{Markdown: &MarkdownRecord{
		ModelDir: "sofia",
		Name:     "broken",
		Content:  []byte("---\ntitle: Broken\n"),
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated frontmatter")
}

func TestCanonStaticRequiresSlug(t *testing.T) {
	n := testNormalizer(t)

	_, err := n.Canonicalize(SourceRecord{Static: &StaticRecord{Title: "No Slug"}})
	require.Error(t, err)
}

func TestParseDateFallbacks(t *testing.T) {
	n := testNormalizer(t)

	assert.Equal(t, testClock(), n.parseDate(""))
	assert.Equal(t, testClock(), n.parseDate("not a date"))
	assert.Equal(t,
		time.Date(2025, 8, 5, 18, 30, 0, 0, time.UTC),
		n.parseDate("2025-08-05T18:30:00"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "mila-woods", Slugify("Mila Woods"))
	assert.Equal(t, "golden-hour", Slugify("  Golden   Hour  "))
	assert.Equal(t, "lena", Slugify("lena"))
	assert.Equal(t, "", Slugify("   "))
}

func TestNormalizeSkipsBadRecordsAndDedupesSlugs(t *testing.T) {
	n := testNormalizer(t)

	posts := n.Normalize([]SourceRecord{
		{Static: &StaticRecord{Slug: "mila/a", Title: "First", Date: "2025-08-01"}},
		{},
		{Static: &StaticRecord{Slug: "mila/a", Title: "Duplicate", Date: "2025-08-09"}},
		{Static: &StaticRecord{Slug: "mila/b", Title: "Second", Date: "2025-08-03"}},
	})

	require.Len(t, posts, 2)
	// newest first
	assert.Equal(t, "mila/b", posts[0].Slug)
	// first occurrence of a duplicate slug wins
	assert.Equal(t, "First", posts[1].Title)
}

func TestNormalizeSortsNewestFirstStable(t *testing.T) {
	n := testNormalizer(t)

	posts := n.Normalize([]SourceRecord{
		{Static: &StaticRecord{Slug: "a", Title: "A", Date: "2025-08-01"}},
		{Static: &StaticRecord{Slug: "b", Title: "B", Date: "2025-08-05"}},
		{Static: &StaticRecord{Slug: "c", Title: "C", Date: "2025-08-05"}},
	})

	require.Len(t, posts, 3)
	assert.Equal(t, "b", posts[0].Slug)
	assert.Equal(t, "c", posts[1].Slug)
	assert.Equal(t, "a", posts[2].Slug)
}

func TestNewSnapshotDerivesRosterAndFacets(t *testing.T) {
	n := testNormalizer(t)

	posts := n.Normalize([]SourceRecord{
		{Static: &StaticRecord{Slug: "mila/a", Model: "mila", Category: "Outdoor", Cover: "c1.jpg", Date: "2025-08-05", Tags: []string{"Beach"}}},
		{Static: &StaticRecord{Slug: "mila/b", Model: "mila", Category: "Studio", Date: "2025-08-01", Tags: []string{"Beach", "Golden"}}},
		{Static: &StaticRecord{Slug: "lena/a", Model: "lena", Category: "Outdoor", Date: "2025-08-03"}},
	})
	snap := NewSnapshot(posts, testClock())

	require.Len(t, snap.Models, 2)
	assert.Equal(t, "mila", snap.Models[0].Name)
	assert.Equal(t, 2, snap.Models[0].GalleryCount)
	assert.Equal(t, "c1.jpg", snap.Models[0].Avatar)
	assert.Equal(t, "2025-08-01", snap.Models[0].JoinDate)

	assert.Equal(t, []string{"Outdoor", "Studio"}, snap.Categories)
	assert.Equal(t, []string{"Beach", "Golden"}, snap.Tags)

	got, ok := snap.Get("lena/a")
	require.True(t, ok)
	assert.Equal(t, "lena", got.Model)

	m, ok := snap.ModelBySlug("lena")
	require.True(t, ok)
	assert.Equal(t, 1, m.GalleryCount)

	assert.Len(t, snap.PostsByModel("mila"), 2)
}
