package pagination

import (
	"encoding/json"
	"math"
	"strconv"
)

// DefaultMaxVisible is the number of page slots used when the caller passes none
const DefaultMaxVisible = 5

// PageItem is a page number in a pager, or Ellipsis for a collapsed run of pages
type PageItem int

// Ellipsis marks an omitted contiguous range of pages
const Ellipsis PageItem = -1

func (p PageItem) IsEllipsis() bool {
	return p == Ellipsis
}

func (p PageItem) String() string {
	if p.IsEllipsis() {
		return "ellipsis"
	}
	return strconv.Itoa(int(p))
}

// MarshalJSON renders page numbers as numbers and Ellipsis as the string "ellipsis"
func (p PageItem) MarshalJSON() ([]byte, error) {
	if p.IsEllipsis() {
		return []byte(`"ellipsis"`), nil
	}
	return json.Marshal(int(p))
}

func (p *PageItem) UnmarshalJSON(b []byte) error {
	if string(b) == `"ellipsis"` {
		*p = Ellipsis
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = PageItem(n)
	return nil
}

// GeneratePageNumbers builds the page sequence shown by a pager.
// The first and last page are always present; collapsed runs are marked with Ellipsis.
// If totalPages fits into maxVisible every page is listed, otherwise the window is
// anchored to the start, the end, or centered on current.
func GeneratePageNumbers(current, totalPages, maxVisible int) []PageItem {
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}

	if totalPages <= maxVisible {
		pages := make([]PageItem, 0, max(totalPages, 0))
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, PageItem(i))
		}
		return pages
	}

	halfVisible := int(math.Floor(float64(maxVisible-3) / 2))
	pages := []PageItem{1}

	switch {
	case current <= halfVisible+2:
		pages = appendRange(pages, 2, maxVisible-2)
		pages = append(pages, Ellipsis, PageItem(totalPages))
	case current >= totalPages-halfVisible-1:
		pages = append(pages, Ellipsis)
		pages = appendRange(pages, totalPages-maxVisible+3, totalPages-1)
		pages = append(pages, PageItem(totalPages))
	default:
		pages = append(pages, Ellipsis)
		pages = appendRange(pages, current-halfVisible, current+halfVisible)
		pages = append(pages, Ellipsis, PageItem(totalPages))
	}

	return pages
}

func appendRange(pages []PageItem, from, to int) []PageItem {
	for i := from; i <= to; i++ {
		pages = append(pages, PageItem(i))
	}
	return pages
}
