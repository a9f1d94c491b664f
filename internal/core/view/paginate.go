// Package view holds the presentation rules shared by the console screens.
package view

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page describes one page of a backend list. Pages are 0-based.
type Page struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalCount int  `json:"totalCount"`
	TotalPages int  `json:"totalPages"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
}

// NormalizePage clamps the requested page and page size to usable values.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	switch {
	case pageSize <= 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Paginate computes the navigation state for page of a list holding total
// items. A page past the end is clamped to the last page.
func Paginate(total, page, pageSize int) Page {
	page, pageSize = NormalizePage(page, pageSize)
	if total < 0 {
		total = 0
	}
	pages := (total + pageSize - 1) / pageSize
	if pages > 0 && page >= pages {
		page = pages - 1
	}
	if pages == 0 {
		page = 0
	}
	return Page{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: pages,
		HasPrev:    page > 0,
		HasNext:    page+1 < pages,
	}
}
