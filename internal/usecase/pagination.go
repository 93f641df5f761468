package usecase

import "github.com/naka-gawa/github-activity/internal/domain"

// TotalPages returns how many pages of domain.PageSize items count items fill.
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + domain.PageSize - 1) / domain.PageSize
}

// ClampPage keeps page within [1, total]. With no pages at all it returns 1.
func ClampPage(page, total int) int {
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// PageNumbers returns the page numbers to display for the current page: at
// most domain.MaxPageLinks of them, all within [1, total], with current kept
// centered when it is far enough from either end.
func PageNumbers(current, total int) []int {
	if total <= 0 {
		return []int{}
	}
	width := min(domain.MaxPageLinks, total)
	var first int
	switch {
	case total <= domain.MaxPageLinks, current <= 3:
		first = 1
	case current >= total-2:
		first = total - domain.MaxPageLinks + 1
	default:
		first = current - 2
	}

	pages := make([]int, width)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}

// NewPageWindow builds the pagination state for itemCount items with current
// clamped into range.
func NewPageWindow(current, itemCount int) domain.PageWindow {
	total := TotalPages(itemCount)
	current = ClampPage(current, total)
	return domain.PageWindow{
		Current: current,
		Total:   total,
		Pages:   PageNumbers(current, total),
		HasPrev: current > 1,
		HasNext: current < total,
	}
}

// Paginate returns the items shown on page. It returns an empty slice when
// page is out of range.
func Paginate(repos []domain.Repository, page int) []domain.Repository {
	start := (page - 1) * domain.PageSize
	if page < 1 || start >= len(repos) {
		return []domain.Repository{}
	}
	end := min(start+domain.PageSize, len(repos))
	return repos[start:end]
}
