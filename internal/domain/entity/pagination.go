package entity

// Pagination is the optional paging block of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TotalPages returns ceil(Total / Limit), or 0 when Limit is not positive.
func (p Pagination) TotalPages() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// LogPage is one page of the cycle log history.
type LogPage struct {
	Logs       []CycleLog  `json:"logs"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
