package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"friendgraph/internal/relation"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a normalized (page number, page size) pair. Page numbers
// start at 1.
type PageRequest struct {
	Number int
	Size   int
}

func (p PageRequest) Offset() int {
	return (p.Number - 1) * p.Size
}

// Paginator turns raw query parameters into PageRequests.
type Paginator struct {
	DefaultSize int
	MaxSize     int
}

func NewPaginator(defaultSize, maxSize int) Paginator {
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if defaultSize <= 0 || defaultSize > maxSize {
		defaultSize = min(DefaultPageSize, maxSize)
	}
	return Paginator{DefaultSize: defaultSize, MaxSize: maxSize}
}

// Request validates number and size. A size of zero or less means the
// default; sizes above the maximum are clamped to it. The end of the
// requested window must fit in an int.
func (p Paginator) Request(number, size int) (PageRequest, error) {
	if number < 1 {
		return PageRequest{}, fmt.Errorf("%w: page must be 1 or greater", relation.ErrValidation)
	}
	if size <= 0 {
		size = p.DefaultSize
	}
	if size > p.MaxSize {
		size = p.MaxSize
	}
	if number > math.MaxInt/size {
		return PageRequest{}, fmt.Errorf("%w: page is out of range", relation.ErrValidation)
	}
	return PageRequest{Number: number, Size: size}, nil
}

// Parse reads the "page" and "page_size" query values; empty values fall back
// to page 1 and the default size.
func (p Paginator) Parse(page, pageSize string) (PageRequest, error) {
	number, err := parseOptionalInt("page", page, 1)
	if err != nil {
		return PageRequest{}, err
	}
	size, err := parseOptionalInt("page_size", pageSize, 0)
	if err != nil {
		return PageRequest{}, err
	}
	return p.Request(number, size)
}

func parseOptionalInt(name, raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", relation.ErrValidation, name)
	}
	return n, nil
}

// SlicePage cuts the requested window out of items and reports whether more
// items follow it.
func SlicePage[T any](items []T, req PageRequest) ([]T, bool) {
	start := req.Offset()
	if start < 0 || start >= len(items) {
		return []T{}, false
	}
	end := min(start+req.Size, len(items))
	return items[start:end], end < len(items)
}
