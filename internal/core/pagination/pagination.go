// Package pagination slices ordered listings into fixed-size pages.
package pagination

import (
	"strconv"
	"strings"
)

// PageSize is the number of posts shown on every listing page.
const PageSize = 10

// Window describes which part of a listing a page covers.
// Number is always within [1, NumPages] and NumPages is never zero.
type Window struct {
	Number   int
	NumPages int
	Offset   int
	Limit    int
}

// NewWindow clamps the requested page number to the nearest valid page
// of total items split into pages of size items.
func NewWindow(total int64, number, size int) Window {
	if size <= 0 {
		size = PageSize
	}
	numPages := 1
	if total > 0 {
		numPages = int((total + int64(size) - 1) / int64(size))
	}
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}
	return Window{
		Number:   number,
		NumPages: numPages,
		Offset:   (number - 1) * size,
		Limit:    size,
	}
}

// ParseNumber reads a page query parameter. Anything that is not an
// integer selects the first page.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Total    int64
}

// NewPage wraps items already sliced according to w.
func NewPage[T any](items []T, total int64, w Window) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:    items,
		Number:   w.Number,
		NumPages: w.NumPages,
		Total:    total,
	}
}

func (p *Page[T]) HasNext() bool     { return p.Number < p.NumPages }
func (p *Page[T]) HasPrevious() bool { return p.Number > 1 }

// NextPageNumber returns 0 on the last page.
func (p *Page[T]) NextPageNumber() int {
	if !p.HasNext() {
		return 0
	}
	return p.Number + 1
}

// PreviousPageNumber returns 0 on the first page.
func (p *Page[T]) PreviousPageNumber() int {
	if !p.HasPrevious() {
		return 0
	}
	return p.Number - 1
}

// Map converts the items of a page, keeping its metadata.
func Map[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return &Page[U]{Items: out, Number: p.Number, NumPages: p.NumPages, Total: p.Total}
}
