package pagination

// Window tracks the monotonically growing "displayed count" of an incremental
// (infinite-scroll) listing. The visible set is always the first Displayed()
// elements of the filtered sequence.
type Window struct {
	pageSize  int
	total     int
	displayed int
	loading   bool
}

// NewWindow creates a window over total items, initialized to one page.
func NewWindow(pageSize, total int) *Window {
	if pageSize < 1 {
		pageSize = DefaultLimit
	}
	if total < 0 {
		total = 0
	}
	w := &Window{pageSize: pageSize, total: total}
	w.displayed = min(pageSize, total)
	return w
}

// Displayed returns the current visible count.
func (w *Window) Displayed() int { return w.displayed }

// HasNextPage reports whether more items remain beyond the visible set.
func (w *Window) HasNextPage() bool { return w.displayed < w.total }

// Loading reports whether a load-more request is in flight.
func (w *Window) Loading() bool { return w.loading }

// LoadMore starts loading the next page. It is a no-op (returns false) while
// a load is already in flight or when everything is displayed.
func (w *Window) LoadMore() bool {
	if w.loading || !w.HasNextPage() {
		return false
	}
	w.loading = true
	return true
}

// Finish completes an in-flight load, growing the visible set by one page,
// bounded at the total.
func (w *Window) Finish() {
	if !w.loading {
		return
	}
	w.loading = false
	w.displayed = min(w.displayed+w.pageSize, w.total)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
