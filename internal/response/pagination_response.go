package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination derives the page window from the query and the result set.
// count is the number of items actually on this page.
func NewPagination(page, pageSize, count int, total int64) *Pagination {
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	from, to := (page-1)*pageSize+1, (page-1)*pageSize+count
	if count == 0 {
		from, to = 0, 0
	}
	return &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
		From:       from,
		To:         to,
	}
}
