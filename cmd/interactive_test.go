package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

type fakeFetcher struct{}

func (fakeFetcher) FetchProfile(_ context.Context, account string) (domain.Profile, error) {
	if account == "ghost" {
		return domain.Profile{}, errors.New("github: getting profile of ghost failed with status 404: Not Found")
	}
	return domain.Profile{Login: account, Name: strings.ToUpper(account)}, nil
}

func (fakeFetcher) FetchRepositories(_ context.Context, _ string) ([]domain.Repository, error) {
	repos := make([]domain.Repository, 23)
	for i := range repos {
		repos[i] = domain.Repository{ID: int64(i), Name: "project-" + string(rune('a'+i))}
	}
	return repos, nil
}

func (fakeFetcher) FetchAccountEvents(_ context.Context, _ string) ([]domain.RawEvent, error) {
	return []domain.RawEvent{{Type: "PushEvent", CreatedAt: time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC), CommitCount: 3}}, nil
}

func (fakeFetcher) FetchRepositoryCommits(_ context.Context, _, _ string) []domain.RawCommit {
	return []domain.RawCommit{}
}

func TestRunInteractive(t *testing.T) {
	input := strings.Join([]string{
		"repo too-early",
		"user octocat",
		"next",
		"page 3",
		"repo project-a",
		"clear",
		"user ghost",
		"bogus",
		"quit",
		"user never-reached",
	}, "\n")
	var out bytes.Buffer
	c := usecase.NewCoordinator(fakeFetcher{}, zerolog.Nop())

	err := runInteractive(context.Background(), strings.NewReader(input), &out, c, time.Second)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, `Cannot select "too-early": no account selected`)
	assert.Contains(t, text, "OCTOCAT (@octocat)")
	assert.Contains(t, text, "« 1 [2] 3 »")
	assert.Contains(t, text, "« 1 2 [3]")
	assert.Contains(t, text, "Commit activity: project-a (weekly)")
	assert.Contains(t, text, "No commit data available")
	assert.Contains(t, text, "Error: github: getting profile of ghost failed with status 404")
	assert.Contains(t, text, `Unknown command "bogus"`)
	assert.NotContains(t, text, "never-reached")
	assert.Equal(t, "ghost", c.Snapshot().Account)
}

func TestRunInteractive_EOF(t *testing.T) {
	var out bytes.Buffer
	c := usecase.NewCoordinator(fakeFetcher{}, zerolog.Nop())
	require.NoError(t, runInteractive(context.Background(), strings.NewReader("user octocat"), &out, c, time.Second))
	assert.Contains(t, out.String(), "Overall commit activity")
}
