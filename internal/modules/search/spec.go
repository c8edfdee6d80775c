package search

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shinydollop/core/internal/pkg/pagination"
)

// DateRange restricts results to a trailing window.
type DateRange string

const (
	DateRangeAll   DateRange = "all"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
	DateRangeYear  DateRange = "year"
)

// SortField selects the sort key.
type SortField string

const (
	SortByDate   SortField = "date"
	SortByTitle  SortField = "title"
	SortByRating SortField = "rating"
	SortByViews  SortField = "views"
	SortByLikes  SortField = "likes"
)

// SortOrder selects the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Spec is the structured query driving one search/filter interaction. It is
// built fresh per request and never persisted.
type Spec struct {
	Query      string
	Models     []string
	Categories []string
	Tags       []string
	DateRange  DateRange
	SortBy     SortField
	SortOrder  SortOrder
	Pagination pagination.Query
}

// SpecFromContext parses the query string into a Spec. Unknown enum values
// coerce to the defaults rather than erroring.
func SpecFromContext(c *gin.Context) Spec {
	spec := Spec{
		Query:      c.Query("q"),
		Models:     splitList(c.Query("models")),
		Categories: splitList(c.Query("categories")),
		Tags:       splitList(c.Query("tags")),
		DateRange:  DateRangeAll,
		SortBy:     SortByDate,
		SortOrder:  SortDesc,
		Pagination: pagination.FromContext(c),
	}

	switch DateRange(c.Query("dateRange")) {
	case DateRangeWeek:
		spec.DateRange = DateRangeWeek
	case DateRangeMonth:
		spec.DateRange = DateRangeMonth
	case DateRangeYear:
		spec.DateRange = DateRangeYear
	}

	switch SortField(c.Query("sortBy")) {
	case SortByTitle:
		spec.SortBy = SortByTitle
	case SortByRating:
		spec.SortBy = SortByRating
	case SortByViews:
		spec.SortBy = SortByViews
	case SortByLikes:
		spec.SortBy = SortByLikes
	}

	if SortOrder(c.Query("sortOrder")) == SortAsc {
		spec.SortOrder = SortAsc
	}

	return spec
}

// splitList parses a comma-separated multi-value parameter.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
