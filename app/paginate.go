package app

import "github.com/quillhub/quillhub-be/model"

// Boundary policy: page numbers are 1-based, and out-of-range numbers
// (below 1 or past the last page) are clamped to the nearest valid page, so
// every request yields the content of some real page. An empty collection
// has exactly one (empty) page.

// ClampPage returns the valid 1-based page number nearest to page for the
// given total item count.
func ClampPage(total, pageSize, page int) int {
	if page < 1 {
		return 1
	}
	last := (total + pageSize - 1) / pageSize
	if last < 1 {
		last = 1
	}
	if page > last {
		return last
	}
	return page
}

// Paginate slices items down to the requested page. The remainder page is
// exact: 13 items at size 10 gives page 2 exactly 3 items.
func Paginate(items []*model.Post, pageSize, page int) (pageItems []*model.Post, hasNext, hasPrev bool) {
	page = ClampPage(len(items), pageSize, page)
	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], end < len(items), start > 0
}
