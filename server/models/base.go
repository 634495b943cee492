package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	MAX_PAGE_SIZE     = 100
	DEFAULT_PAGE_SIZE = 20
)

type BaseModel struct {
	ID        uint      `json:"id,omitempty" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type Paging struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Pages int64 `json:"pages"`
}

// ---------------------------------------------------------------------------------//
// Scopes
// --------------------------------------------------------------------------------//

func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (normalizePage(page) - 1) * normalizePageSize(pageSize)
		return db.Offset(offset).Limit(normalizePageSize(pageSize))
	}
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func normalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func normalizePageSize(pageSize int) int {
	switch {
	case pageSize > MAX_PAGE_SIZE:
		return MAX_PAGE_SIZE
	case pageSize <= 0:
		return DEFAULT_PAGE_SIZE
	}
	return pageSize
}

func newPaging(page, pageSize int, total int64) *Paging {
	paging := &Paging{Page: int64(normalizePage(page)), Total: total}

	paging.Pages = int64(math.Ceil(float64(paging.Total) / float64(normalizePageSize(pageSize))))
	if paging.Pages == 0 {
		paging.Pages = 1
	}

	return paging
}
