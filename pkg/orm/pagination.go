package orm

import "gorm.io/gorm"

// Pagination is the page window of a list query.
type Pagination struct {
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	Total    int64 `json:"count"`
	LastPage int   `json:"num_pages"`
}

// NewPagination clamps page into [1, last page]. An out-of-range page
// shows the last page, and an empty result still has one page.
func NewPagination(page, perPage int, total int64) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, LastPage: last}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Scope limits a query to the rows of p's page.
func (p Pagination) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}
