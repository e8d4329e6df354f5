package utils

// Window is a resolved page request: the page actually served, how many
// rows it holds and how many rows precede it.
type Window struct {
	Page   int
	Limit  int
	Offset int
}

// PageWindow clamps page to 1.. and limit to 1..maxLimit, substituting
// defLimit when limit is unset.
func PageWindow(page, limit, defLimit, maxLimit int) Window {
	if page < 1 {
		page = 1
	}
	switch {
	case limit < 1:
		limit = defLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	return Window{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// TotalPages is the number of limit-sized pages needed for total rows.
func TotalPages(total int64, limit int) int {
	if limit < 1 || total < 1 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
