package request

import "clubops/pkg/utils"

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// PaginatedRequest is read from ?page=&limit=; out-of-range values are
// clamped rather than rejected.
type PaginatedRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"limit"`
}

func (p PaginatedRequest) Window() utils.Window {
	return utils.PageWindow(p.Page, p.PerPage, DefaultPageSize, MaxPageSize)
}

func (p PaginatedRequest) Limit() int {
	return p.Window().Limit
}
