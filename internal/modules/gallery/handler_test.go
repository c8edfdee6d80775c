package gallery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinydollop/core/internal/modules/analytics"
	"github.com/shinydollop/core/internal/modules/catalog"
	"github.com/shinydollop/core/internal/modules/search"
)

type sliceLoader struct {
	records []catalog.SourceRecord
}

func (l *sliceLoader) Load(ctx context.Context) ([]catalog.SourceRecord, error) {
	return l.records, nil
}

func fixtureRecords() []catalog.SourceRecord {
	posts := []catalog.StaticRecord{
		{Slug: "mila/golden-hour", Title: "Golden Hour", Model: "mila", Category: "Outdoor", Date: "2025-08-05"},
		{Slug: "mila/summer-bliss", Title: "Summer Bliss", Model: "mila", Category: "Outdoor", Date: "2025-08-04"},
		{Slug: "lena/studio-lines", Title: "Studio Lines", Model: "lena", Category: "Studio", Date: "2025-07-30"},
		{Slug: "lena/city-walk", Title: "City Walk", Model: "lena", Category: "Street", Date: "2025-07-29"},
		{Slug: "sofia/morning-light", Title: "Morning Light", Model: "sofia", Category: "Interior", Date: "2025-07-27"},
		{Slug: "sofia/rainy-day", Title: "Rainy Day", Model: "sofia", Category: "Interior", Date: "2025-07-26"},
	}
	records := make([]catalog.SourceRecord, len(posts))
	for i := range posts {
		records[i] = catalog.SourceRecord{Static: &posts[i]}
	}
	return records
}

func testStats() analytics.Provider {
	return analytics.NewStatic(map[string]analytics.Stats{
		"lena/city-walk":      {Views: 900, Rating: 4.5, Ratings: 12},
		"mila/golden-hour":    {Views: 500, Rating: 4.8, Ratings: 20},
		"sofia/morning-light": {Views: 500, Rating: 4.2, Ratings: 7},
	})
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stats := testStats()
	store := catalog.NewStore(&sliceLoader{records: fixtureRecords()},
		catalog.WithClock(func() time.Time {
			return time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)
		}),
	)
	engine := search.NewEngine(stats)
	svc := NewService(store, engine, stats, nil, nil)

	r := gin.New()
	api := r.Group("/api")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	body := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestListGalleries(t *testing.T) {
	r := testRouter(t)

	w, _ := doRequest(t, r, "/api/galleries")
	require.Equal(t, http.StatusOK, w.Code)

	var res ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 6, res.Total)
	assert.Equal(t, 1, res.TotalPages)
	require.Len(t, res.Galleries, 6)
	// newest first
	assert.Equal(t, "mila/golden-hour", res.Galleries[0].Slug)
	assert.Equal(t, 500, res.Galleries[0].ViewCount)
	assert.Equal(t, "4.80", res.Galleries[0].AverageRating)
}

func TestListGalleriesPagination(t *testing.T) {
	r := testRouter(t)

	w, _ := doRequest(t, r, "/api/galleries?page=2&limit=4")
	require.Equal(t, http.StatusOK, w.Code)

	var res ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 6, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Len(t, res.Galleries, 2)
}

func TestSearchByModelPaginated(t *testing.T) {
	r := testRouter(t)

	w, _ := doRequest(t, r, "/api/search?models=mila&limit=2")
	require.Equal(t, http.StatusOK, w.Code)

	var res ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.TotalPages)
	require.Len(t, res.Galleries, 2)
	assert.Equal(t, "mila/golden-hour", res.Galleries[0].Slug)
	assert.Equal(t, "mila/summer-bliss", res.Galleries[1].Slug)
}

func TestSearchSortByTitle(t *testing.T) {
	r := testRouter(t)

	w, _ := doRequest(t, r, "/api/search?sortBy=title&sortOrder=asc&limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var res ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Galleries, 1)
	assert.Equal(t, "City Walk", res.Galleries[0].Title)
}

func TestGetGallery(t *testing.T) {
	r := testRouter(t)

	w, _ := doRequest(t, r, "/api/galleries/mila/golden-hour")
	require.Equal(t, http.StatusOK, w.Code)

	var g Gallery
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	assert.Equal(t, "mila/golden-hour", g.ID)
	assert.Equal(t, "Golden Hour", g.Title)
	assert.Equal(t, 20, g.RatingCount)
}

func TestGetGalleryNotFound(t *testing.T) {
	r := testRouter(t)

	w, body := doRequest(t, r, "/api/galleries/mila/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, string(body["error"]), "gallery not found")
}

func TestTrendingOrder(t *testing.T) {
	r := testRouter(t)

	w, _ := doRequest(t, r, "/api/galleries/trending?limit=3")
	require.Equal(t, http.StatusOK, w.Code)

	var res TrendingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Galleries, 3)
	// views desc, then rating desc on the 500-view tie
	assert.Equal(t, "lena/city-walk", res.Galleries[0].Slug)
	assert.Equal(t, "mila/golden-hour", res.Galleries[1].Slug)
	assert.Equal(t, "sofia/morning-light", res.Galleries[2].Slug)
}
