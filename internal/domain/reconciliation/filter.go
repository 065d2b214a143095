package reconciliation

import (
	"strings"

	"github.com/iletigo/mutabakat/internal/domain/shared"
)

// FilterAll is the wildcard value accepted for status and priority
const FilterAll = "all"

// ListFilter selects reconciliations for listing and export
type ListFilter struct {
	Page      shared.Page
	Status    Status
	Priority  Priority
	Search    string
	SortBy    string
	SortOrder string
}

// NewListFilter normalizes raw query values. "all" and empty mean no
// filter; unknown status or priority values are validation errors.
func NewListFilter(page, limit int, status, priority, search, sortBy, sortOrder string) (ListFilter, error) {
	f := ListFilter{
		Page:      shared.NewPage(page, limit),
		Search:    strings.TrimSpace(search),
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}
	if status != "" && status != FilterAll {
		st, err := ParseStatus(status)
		if err != nil {
			return ListFilter{}, err
		}
		f.Status = st
	}
	if priority != "" && priority != FilterAll {
		p, err := ParsePriority(priority)
		if err != nil {
			return ListFilter{}, err
		}
		f.Priority = p
	}
	return f, nil
}
