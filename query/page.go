package query

import (
	"slices"

	"github.com/oaiiae/contactbook/model"
)

// DefaultPageSize is the number of rows on a page unless another of PageSizes is picked.
const DefaultPageSize = 5

// PageSizes are the allowed page sizes.
var PageSizes = []int{5, 10} //nolint: gochecknoglobals

// ValidPageSize reports whether size is one of [PageSizes].
func ValidPageSize(size int) bool { return slices.Contains(PageSizes, size) }

// Pages returns the number of pages n contacts fill, at least one.
func Pages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return max(1, (n+size-1)/size)
}

// Page returns the zero-based page of contacts. Out of range pages are empty.
func Page(contacts []model.Contact, page, size int) []model.Contact {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		return nil
	}
	start := min(page*size, len(contacts))
	end := min(start+size, len(contacts))
	return contacts[start:end:end]
}
