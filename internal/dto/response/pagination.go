package response

import "clubops/pkg/utils"

// PaginationMeta mirrors the page/limit query the list was made with.
type PaginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	if page < 1 {
		page = 1
	}
	return PaginationMeta{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: utils.TotalPages(total, limit),
	}
}
