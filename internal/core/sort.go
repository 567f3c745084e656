package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/modalstack/internal/model"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByCreated SortField = "created"
	SortByContent SortField = "content"
	SortBySize    SortField = "size"
	SortByColor   SortField = "color"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// DefaultSortOptions returns stack order, oldest first.
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByCreated,
		Order: SortAsc,
	}
}

// Sort sorts dialogs in place based on the provided options. Ties keep
// their stack order.
func Sort(dialogs []model.Summary, opts SortOptions) {
	if len(dialogs) == 0 {
		return
	}

	sort.SliceStable(dialogs, func(i, j int) bool {
		a, b := dialogs[i], dialogs[j]
		if opts.Order == SortDesc {
			a, b = b, a
		}

		switch opts.Field {
		case SortByContent:
			return strings.ToLower(a.Content) < strings.ToLower(b.Content)
		case SortBySize:
			return sizeRank(a.Size) < sizeRank(b.Size)
		case SortByColor:
			return a.Color < b.Color
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			// ULIDs order by creation time.
			return a.ID < b.ID
		}
	})
}

func sizeRank(s string) int {
	size, err := model.ParseSize(s)
	if err != nil {
		return -1
	}
	return int(size)
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "created", "time", "age", "":
		return SortByCreated, nil
	case "content", "c":
		return SortByContent, nil
	case "size", "s":
		return SortBySize, nil
	case "color", "colour":
		return SortByColor, nil
	default:
		return SortByCreated, fmt.Errorf("invalid sort field: %s (use created, content, size, or color)", s)
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "a", "":
		return SortAsc, nil
	case "desc", "descending", "d":
		return SortDesc, nil
	default:
		return SortAsc, fmt.Errorf("invalid sort order: %s (use asc or desc)", s)
	}
}
