// Package paginator splits result lists into fixed-size pages.
package paginator

import (
	"fmt"
	"strings"
)

// Page is a window into the paginated slice. It shares the slice's backing
// array.
type Page[T any] struct {
	Items []T
}

func (p Page[T]) Len() int { return len(p.Items) }

// String prints the items back to back, each with its own %v form.
func (p Page[T]) String() string {
	var b strings.Builder
	for _, item := range p.Items {
		fmt.Fprint(&b, item)
	}
	return b.String()
}

// Paginate cuts items into pages of pageSize; the last page may be shorter.
// A pageSize below 1 puts everything on a single page. No items, no pages.
func Paginate[T any](items []T, pageSize int) []Page[T] {
	if len(items) == 0 {
		return nil
	}
	if pageSize < 1 {
		pageSize = len(items)
	}
	pages := make([]Page[T], 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := min(start+pageSize, len(items))
		pages = append(pages, Page[T]{Items: items[start:end:end]})
	}
	return pages
}
