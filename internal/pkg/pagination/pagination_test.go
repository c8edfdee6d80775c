package pagination

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func queryFor(t *testing.T, rawQuery string) Query {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return FromContext(c)
}

func TestFromContextCoercesAndClamps(t *testing.T) {
	assert.Equal(t, Query{Page: 3, Limit: 10}, queryFor(t, "page=3&limit=10"))

	// non-numeric values coerce to defaults
	assert.Equal(t, Query{Page: DefaultPage, Limit: DefaultLimit}, queryFor(t, "page=abc&limit=xyz"))
	assert.Equal(t, Query{Page: DefaultPage, Limit: DefaultLimit}, queryFor(t, ""))

	// out-of-range values clamp
	assert.Equal(t, Query{Page: DefaultPage, Limit: DefaultLimit}, queryFor(t, "page=-2&limit=0"))
	assert.Equal(t, Query{Page: 1, Limit: MaxLimit}, queryFor(t, "page=1&limit=500"))
}

func TestPaginateClampsZeroQuery(t *testing.T) {
	res := Paginate(sequence(45), Query{})
	assert.Equal(t, DefaultPage, res.Page)
	assert.Equal(t, DefaultLimit, res.Limit)
	assert.Len(t, res.Items, DefaultLimit)
	assert.Equal(t, 3, res.TotalPages)

	res = Paginate(sequence(45), Query{Page: 1, Limit: 1000})
	assert.Equal(t, MaxLimit, res.Limit)
	assert.Equal(t, 1, res.TotalPages)
}

func TestPaginateCoversSequenceExactlyOnce(t *testing.T) {
	items := sequence(45)
	q := Query{Page: 1, Limit: 20}

	var seen []int
	for page := 1; ; page++ {
		q.Page = page
		res := Paginate(items, q)
		if len(res.Items) == 0 {
			break
		}
		seen = append(seen, res.Items...)
	}

	require.Equal(t, items, seen)
}

func TestPaginateMetadata(t *testing.T) {
	items := sequence(45)

	res := Paginate(items, Query{Page: 3, Limit: 20})
	assert.Equal(t, 45, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Len(t, res.Items, 5)
	assert.Equal(t, 41, res.Items[0])
}

func TestPaginatePastEnd(t *testing.T) {
	res := Paginate(sequence(10), Query{Page: 7, Limit: 20})
	assert.Empty(t, res.Items)
	assert.Equal(t, 10, res.Total)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 7, res.Page)
}

func TestPaginateEmptyInput(t *testing.T) {
	res := Paginate([]int{}, Query{Page: 1, Limit: 20})
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.TotalPages)
}

func TestWindowGrowsByPageUntilExhausted(t *testing.T) {
	w := NewWindow(12, 30)

	assert.Equal(t, 12, w.Displayed())
	assert.True(t, w.HasNextPage())

	require.True(t, w.LoadMore())
	assert.True(t, w.Loading())
	// concurrent trigger during an in-flight load is ignored
	assert.False(t, w.LoadMore())

	w.Finish()
	assert.Equal(t, 24, w.Displayed())
	assert.False(t, w.Loading())

	require.True(t, w.LoadMore())
	w.Finish()
	assert.Equal(t, 30, w.Displayed())
	assert.False(t, w.HasNextPage())
	assert.False(t, w.LoadMore())
}

func TestWindowSmallerThanOnePage(t *testing.T) {
	w := NewWindow(12, 5)
	assert.Equal(t, 5, w.Displayed())
	assert.False(t, w.HasNextPage())
	assert.False(t, w.LoadMore())
}

func TestWindowDisplayedNeverExceedsTotal(t *testing.T) {
	for _, total := range []int{0, 1, 11, 12, 13, 24, 100} {
		t.Run(fmt.Sprintf("total_%d", total), func(t *testing.T) {
			w := NewWindow(12, total)
			for w.LoadMore() {
				w.Finish()
			}
			assert.LessOrEqual(t, w.Displayed(), total)
			assert.Equal(t, total, w.Displayed())
		})
	}
}
