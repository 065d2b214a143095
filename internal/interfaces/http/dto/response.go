package dto

// Pagination is the page block of list responses
type Pagination struct {
	CurrentPage int   `json:"current_page" example:"1"`
	PerPage     int   `json:"per_page" example:"10"`
	Total       int64 `json:"total" example:"42"`
	TotalPages  int   `json:"total_pages" example:"5"`
}

// NewPagination computes total_pages from the total row count
func NewPagination(page, perPage int, total int64) Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
	}
}

// ListResponse is a page of items
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// MessageResponse carries a confirmation message only
type MessageResponse struct {
	Message string `json:"message" example:"Logged out"`
}

// HealthResponse is the liveness probe body
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}
