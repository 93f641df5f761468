// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client and normalizing its records.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// commitsPerRepository is the number of most recent commits requested per repository.
const commitsPerRepository = 100

// Fetcher defines the behavior of a gateway for fetching account data from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, account string) (domain.Profile, error)
	FetchRepositories(ctx context.Context, account string) ([]domain.Repository, error)
	FetchAccountEvents(ctx context.Context, account string) ([]domain.RawEvent, error)
	// FetchRepositoryCommits never fails: an unreachable or empty repository
	// yields an empty list so it cannot block the rest of the view.
	FetchRepositoryCommits(ctx context.Context, account, repo string) []domain.RawCommit
}

// Options configures the HTTP client behind a GitHubGateway.
type Options struct {
	// Token is optional. Requests are anonymous when it is empty.
	Token string
	// BaseURL points the client at a GitHub Enterprise host or a test server.
	BaseURL string
	// RateLimitWait is the longest single sleep allowed when a secondary rate
	// limit is hit. Anything longer is surfaced to the caller as a failure.
	RateLimitWait time.Duration
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     zerolog.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger zerolog.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithLimitDetectedCallback(func(cc *github_ratelimit.CallbackContext) {
			event := logger.Warn()
			if cc.Request != nil {
				event = event.Str("url", cc.Request.URL.String())
			}
			event.Msg("Secondary rate limit detected")
		}),
		github_ratelimit.WithSingleSleepLimit(opts.RateLimitWait, nil),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if opts.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
		}
	}

	client := github.NewClient(&http.Client{Transport: transport})
	if opts.BaseURL != "" {
		client, err = client.WithEnterpriseURLs(opts.BaseURL, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base url %q: %w", opts.BaseURL, err)
		}
	}
	return &GitHubGateway{
		restClient: client,
		logger:     logger,
	}, nil
}

// FetchProfile fetches GET /users/{account}.
func (g *GitHubGateway) FetchProfile(ctx context.Context, account string) (domain.Profile, error) {
	g.logger.Debug().Str("account", account).Msg("Fetching profile")
	user, _, err := g.restClient.Users.Get(ctx, account)
	if err != nil {
		return domain.Profile{}, handleGithubError(fmt.Sprintf("getting profile of %s", account), err)
	}
	return domain.Profile{
		Login:     user.GetLogin(),
		Name:      user.GetName(),
		AvatarURL: user.GetAvatarURL(),
		Bio:       user.GetBio(),
		Repos:     user.GetPublicRepos(),
		Followers: user.GetFollowers(),
		Following: user.GetFollowing(),
	}, nil
}

// FetchRepositories fetches every page of GET /users/{account}/repos sorted by
// last update, most recent first. Order is preserved from the server.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, account string) ([]domain.Repository, error) {
	g.logger.Debug().Str("account", account).Msg("Fetching repositories")
	op := fmt.Sprintf("listing repositories of %s", account)
	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	repos := make([]domain.Repository, 0)
	seen := make(map[int64]struct{})
	for {
		page, resp, err := g.restClient.Repositories.ListByUser(ctx, account, opts)
		if err != nil {
			return nil, handleGithubError(op, err)
		}
		for _, r := range page {
			// Pages can shift while being read when a repository is pushed to.
			if _, dup := seen[r.GetID()]; dup {
				continue
			}
			seen[r.GetID()] = struct{}{}
			repos = append(repos, domain.Repository{
				ID:          r.GetID(),
				Name:        r.GetName(),
				URL:         r.GetHTMLURL(),
				Description: r.GetDescription(),
				Language:    r.GetLanguage(),
				Stars:       r.GetStargazersCount(),
				Forks:       r.GetForksCount(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug().Int("page", opts.Page).Msg("Fetching next page of repositories")
	}
	return repos, nil
}

// FetchAccountEvents fetches GET /users/{account}/events/public.
//
// The platform only serves a bounded, recent window of public events, so the
// result never covers an account's full history.
func (g *GitHubGateway) FetchAccountEvents(ctx context.Context, account string) ([]domain.RawEvent, error) {
	g.logger.Debug().Str("account", account).Msg("Fetching public events")
	op := fmt.Sprintf("listing public events of %s", account)
	opts := &github.ListOptions{PerPage: 100}
	events := make([]domain.RawEvent, 0)
	for {
		page, resp, err := g.restClient.Activity.ListEventsPerformedByUser(ctx, account, true, opts)
		if err != nil {
			return nil, handleGithubError(op, err)
		}
		for _, e := range page {
			event, err := normalizeEvent(e)
			if err != nil {
				return nil, fmt.Errorf("github: %s returned a malformed event: %w", op, err)
			}
			events = append(events, event)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug().Int("page", opts.Page).Msg("Fetching next page of events")
	}
	return events, nil
}

func normalizeEvent(e *github.Event) (domain.RawEvent, error) {
	event := domain.RawEvent{
		Type:      e.GetType(),
		CreatedAt: e.GetCreatedAt().Time,
	}
	if event.Type != domain.PushEventType {
		return event, nil
	}
	if event.CreatedAt.IsZero() {
		return domain.RawEvent{}, fmt.Errorf("event %s: missing created_at", e.GetID())
	}
	payload, err := e.ParsePayload()
	if err != nil {
		return domain.RawEvent{}, fmt.Errorf("event %s: %w", e.GetID(), err)
	}
	push, ok := payload.(*github.PushEvent)
	if !ok {
		return domain.RawEvent{}, fmt.Errorf("event %s: unexpected payload %T", e.GetID(), payload)
	}
	event.CommitCount = len(push.Commits)
	return event, nil
}

// FetchRepositoryCommits fetches the most recent commits of one repository.
// Failures are logged and degrade to an empty list, as does a commit without
// an author date.
func (g *GitHubGateway) FetchRepositoryCommits(ctx context.Context, account, repo string) []domain.RawCommit {
	g.logger.Debug().Str("account", account).Str("repo", repo).Msg("Fetching repository commits")
	op := fmt.Sprintf("listing commits of %s/%s", account, repo)
	page, _, err := g.restClient.Repositories.ListCommits(ctx, account, repo, &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: commitsPerRepository},
	})
	if err != nil {
		g.logger.Warn().Err(handleGithubError(op, err)).
			Str("account", account).
			Str("repo", repo).
			Msg("Falling back to empty commit list")
		return []domain.RawCommit{}
	}
	commits := make([]domain.RawCommit, 0, len(page))
	for _, c := range page {
		authoredAt := c.GetCommit().GetAuthor().GetDate().Time
		if authoredAt.IsZero() {
			g.logger.Warn().
				Str("account", account).
				Str("repo", repo).
				Str("sha", c.GetSHA()).
				Msg("Commit has no author date, falling back to empty commit list")
			return []domain.RawCommit{}
		}
		commits = append(commits, domain.RawCommit{
			SHA:        c.GetSHA(),
			AuthoredAt: authoredAt,
		})
	}
	return commits
}

// handleGithubError inspects an error from the go-github client and returns a more informative error.
func handleGithubError(op string, err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return fmt.Errorf("github: %s failed with status %d: %s", op, errResp.Response.StatusCode, errResp.Message)
	}
	return fmt.Errorf("github: %s failed: %w", op, err)
}
