package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naka-gawa/github-activity/internal/domain"
)

func TestTotalPages(t *testing.T) {
	for count, expected := range map[int]int{0: 0, 1: 1, 9: 1, 10: 1, 11: 2, 20: 2, 21: 3, 120: 12} {
		assert.Equal(t, expected, TotalPages(count), "count %d", count)
	}
}

func TestPageNumbers(t *testing.T) {
	testCases := []struct {
		current, total int
		expected       []int
	}{
		{current: 1, total: 0, expected: []int{}},
		{current: 1, total: 1, expected: []int{1}},
		{current: 3, total: 4, expected: []int{1, 2, 3, 4}},
		{current: 5, total: 5, expected: []int{1, 2, 3, 4, 5}},
		{current: 1, total: 12, expected: []int{1, 2, 3, 4, 5}},
		{current: 3, total: 12, expected: []int{1, 2, 3, 4, 5}},
		{current: 4, total: 12, expected: []int{2, 3, 4, 5, 6}},
		{current: 6, total: 12, expected: []int{4, 5, 6, 7, 8}},
		{current: 10, total: 12, expected: []int{8, 9, 10, 11, 12}},
		{current: 12, total: 12, expected: []int{8, 9, 10, 11, 12}},
		{current: 4, total: 6, expected: []int{2, 3, 4, 5, 6}},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("page %d of %d", tc.current, tc.total), func(t *testing.T) {
			assert.Equal(t, tc.expected, PageNumbers(tc.current, tc.total))
		})
	}
}

func TestPageNumbers_NeverOutOfRange(t *testing.T) {
	for count := 0; count <= 200; count++ {
		total := TotalPages(count)
		for current := 1; current <= max(total, 1); current++ {
			pages := PageNumbers(current, total)
			assert.LessOrEqual(t, len(pages), domain.MaxPageLinks)
			assert.Equal(t, min(domain.MaxPageLinks, total), len(pages))
			for _, p := range pages {
				assert.GreaterOrEqual(t, p, 1)
				assert.LessOrEqual(t, p, total)
			}
			if total > 0 {
				assert.Contains(t, pages, current)
			}
		}
	}
}

func TestNewPageWindow(t *testing.T) {
	testCases := []struct {
		name     string
		current  int
		repos    int
		expected domain.PageWindow
	}{
		{name: "no repositories", current: 1, repos: 0, expected: domain.PageWindow{Current: 1, Total: 0, Pages: []int{}}},
		{name: "first page disables prev", current: 1, repos: 25, expected: domain.PageWindow{Current: 1, Total: 3, Pages: []int{1, 2, 3}, HasNext: true}},
		{name: "last page disables next", current: 3, repos: 25, expected: domain.PageWindow{Current: 3, Total: 3, Pages: []int{1, 2, 3}, HasPrev: true}},
		{name: "current beyond total is clamped", current: 9, repos: 25, expected: domain.PageWindow{Current: 3, Total: 3, Pages: []int{1, 2, 3}, HasPrev: true}},
		{name: "current below one is clamped", current: -2, repos: 15, expected: domain.PageWindow{Current: 1, Total: 2, Pages: []int{1, 2}, HasNext: true}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NewPageWindow(tc.current, tc.repos))
		})
	}
}

func TestPaginate(t *testing.T) {
	repos := make([]domain.Repository, 23)
	for i := range repos {
		repos[i] = domain.Repository{ID: int64(i + 1)}
	}

	assert.Len(t, Paginate(repos, 1), 10)
	assert.Equal(t, int64(11), Paginate(repos, 2)[0].ID)
	last := Paginate(repos, 3)
	assert.Len(t, last, 3)
	assert.Equal(t, int64(23), last[2].ID)
	assert.Empty(t, Paginate(repos, 4))
	assert.Empty(t, Paginate(repos, 0))
	assert.Empty(t, Paginate(nil, 1))
}
