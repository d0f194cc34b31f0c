// Package utils provides small, generic helpers used across layers. They
// carry no domain logic.
package utils

import "strconv"

// AtoiDefault parses s as an int, returning def when s is empty or invalid.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Page is a bounded page request.
type Page struct {
	Number int
	Size   int
}

// Offset is the number of rows before the page.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// ParsePage reads raw page and size values. Missing or invalid values fall
// back to page 1 and defSize; the size is clamped to [1, maxSize].
func ParsePage(rawPage, rawSize string, defSize, maxSize int) Page {
	p := Page{Number: AtoiDefault(rawPage, 1), Size: AtoiDefault(rawSize, defSize)}
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = 1
	}
	if maxSize > 0 && p.Size > maxSize {
		p.Size = maxSize
	}
	return p
}

// TotalPages is ceil(total/size), 0 for an empty result.
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
