package presentation

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

func resolvedView() usecase.View {
	repos := []domain.Repository{
		{ID: 1, Name: "hello-world", Language: "Go", Stars: 3, Forks: 1},
		{ID: 2, Name: "dotfiles"},
	}
	days := []domain.DailyBucket{{Date: "2021-01-05", Count: 4}, {Date: "2021-01-06", Count: 2}}
	return usecase.View{
		Account:             "octocat",
		Profile:             domain.SuccessState(domain.Profile{Login: "octocat", Name: "The Octocat", Repos: 2}),
		Repositories:        domain.SuccessState(repos),
		Activity:            domain.OverallActivity{State: domain.SuccessState(days)},
		Summary:             usecase.SummarizeDaily(days),
		Page:                usecase.NewPageWindow(1, len(repos)),
		VisibleRepositories: repos,
	}
}

func TestNewViewDTO(t *testing.T) {
	dto := NewViewDTO(resolvedView())

	assert.Equal(t, "octocat", dto.Account)
	assert.Empty(t, dto.Error)
	if assert.NotNil(t, dto.Profile) {
		assert.Equal(t, "The Octocat", dto.Profile.Name)
	}
	assert.Equal(t, "success", dto.ProfileStatus)
	assert.Equal(t, 2, dto.RepositoryCount)
	assert.Equal(t, OverallKind, dto.Activity.Kind)
	assert.Len(t, dto.Activity.Daily, 2)
	assert.Nil(t, dto.Activity.Weekly)
	assert.Equal(t, 6, dto.Summary.Total)
}

func TestNewViewDTO_Failure(t *testing.T) {
	dto := NewViewDTO(usecase.View{
		Account:      "ghost",
		Profile:      domain.FailureState[domain.Profile](errors.New("github: not found")),
		Repositories: domain.LoadingState[[]domain.Repository](),
		Err:          errors.New("github: not found"),
		Loading:      true,
	})
	assert.Equal(t, "github: not found", dto.Error)
	assert.Nil(t, dto.Profile)
	assert.Equal(t, "failure", dto.ProfileStatus)
	assert.Equal(t, "loading", dto.RepositoriesStatus)
	assert.Equal(t, ActivityDTO{Kind: OverallKind, Status: "not_started"}, dto.Activity)
}

func TestNewActivityDTO_Repository(t *testing.T) {
	weeks := []domain.WeeklyBucket{{Week: "2021-W01", WeekStart: time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), Count: 2}}
	dto := NewActivityDTO(domain.RepositoryActivity{Name: "hello-world", State: domain.SuccessState(weeks)})
	assert.Equal(t, ActivityDTO{Kind: RepositoryKind, Repository: "hello-world", Status: "success", Weekly: weeks}, dto)
}

func TestPageBar(t *testing.T) {
	testCases := []struct {
		name     string
		page     domain.PageWindow
		expected string
	}{
		{name: "first page", page: usecase.NewPageWindow(1, 120), expected: "[1] 2 3 4 5 »"},
		{name: "middle page", page: usecase.NewPageWindow(6, 120), expected: "« 4 5 [6] 7 8 »"},
		{name: "last page", page: usecase.NewPageWindow(12, 120), expected: "« 8 9 10 11 [12]"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PageBar(tc.page))
		})
	}
}

func TestRenderText(t *testing.T) {
	t.Run("resolved overall view", func(t *testing.T) {
		var buf bytes.Buffer
		RenderText(&buf, resolvedView())
		out := buf.String()
		assert.Contains(t, out, "The Octocat (@octocat)")
		assert.Contains(t, out, "Repositories (2)")
		assert.Contains(t, out, "hello-world")
		assert.Contains(t, out, "Overall commit activity")
		assert.Contains(t, out, "2021-01-05")
		assert.Contains(t, out, "total 6")
	})

	t.Run("empty repository series", func(t *testing.T) {
		v := resolvedView()
		v.Activity = domain.RepositoryActivity{Name: "dotfiles", State: domain.SuccessState([]domain.WeeklyBucket{})}
		var buf bytes.Buffer
		RenderText(&buf, v)
		assert.Contains(t, buf.String(), "Commit activity: dotfiles (weekly)")
		assert.Contains(t, buf.String(), "No commit data available")
	})

	t.Run("loading repository series", func(t *testing.T) {
		v := resolvedView()
		v.Activity = domain.RepositoryActivity{Name: "dotfiles", State: domain.LoadingState[[]domain.WeeklyBucket]()}
		var buf bytes.Buffer
		RenderText(&buf, v)
		assert.Contains(t, buf.String(), "Loading commit data...")
	})

	t.Run("wide language names keep the star column aligned", func(t *testing.T) {
		v := resolvedView()
		v.VisibleRepositories = []domain.Repository{
			{ID: 1, Name: "hello-world", Language: "Go"},
			{ID: 2, Name: "kanji", Language: "日本語"},
			{ID: 3, Name: "long", Language: "ObjectiveC++ランゲージ"},
		}
		var buf bytes.Buffer
		RenderText(&buf, v)

		var offsets []int
		for _, line := range strings.Split(buf.String(), "\n") {
			if star := strings.Index(line, "★"); star >= 0 {
				offsets = append(offsets, runewidth.StringWidth(line[:star]))
			}
		}
		require.Len(t, offsets, 3)
		assert.Equal(t, offsets[0], offsets[1])
		assert.Equal(t, offsets[0], offsets[2])
	})

	t.Run("error replaces the view", func(t *testing.T) {
		var buf bytes.Buffer
		RenderText(&buf, usecase.View{Account: "ghost", Err: errors.New("not found")})
		assert.Equal(t, "Error: not found\n", buf.String())
	})
}
