// Package pagination implements the 1-based page math shared by every feed.
package pagination

import "errors"

// ErrPageOutOfRange is returned for page numbers with no corresponding items.
// Callers are expected to map it to a not-found response.
var ErrPageOutOfRange = errors.New("page out of range")

// Page describes one page of a larger result set.
type Page[T any] struct {
	Items   []T
	Number  int
	Size    int
	Total   int64
	HasNext bool
	HasPrev bool
}

// NextNumber returns the next page number. Only meaningful when HasNext is true.
func (p Page[T]) NextNumber() int { return p.Number + 1 }

// PrevNumber returns the previous page number. Only meaningful when HasPrev is true.
func (p Page[T]) PrevNumber() int { return p.Number - 1 }

// Offset converts a 1-based page number and page size into a row offset,
// validating the page against the total item count. Page 1 of an empty set is
// valid (an empty page); any other page pointing past the end is out of range.
func Offset(page, size int, total int64) (int, error) {
	if page < 1 || size < 1 {
		return 0, ErrPageOutOfRange
	}
	offset := (page - 1) * size
	if page > 1 && int64(offset) >= total {
		return 0, ErrPageOutOfRange
	}
	return offset, nil
}

// New assembles a Page from a fetched slice and the query totals.
func New[T any](items []T, page, size int, total int64) Page[T] {
	return Page[T]{
		Items:   items,
		Number:  page,
		Size:    size,
		Total:   total,
		HasNext: int64(page)*int64(size) < total,
		HasPrev: page > 1,
	}
}
