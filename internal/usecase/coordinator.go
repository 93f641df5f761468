package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/gateway"
)

type queryKind int

const (
	profileQuery queryKind = iota
	repositoriesQuery
	overallActivityQuery
	repositoryActivityQuery
)

func (k queryKind) String() string {
	switch k {
	case profileQuery:
		return "profile"
	case repositoriesQuery:
		return "repositories"
	case overallActivityQuery:
		return "overall-activity"
	default:
		return "repository-activity"
	}
}

// queryKey addresses one query slot. repo is only set for repository activity.
type queryKey struct {
	kind    queryKind
	account string
	repo    string
}

type querySlot struct {
	status domain.FetchStatus
	value  any
	err    error
	done   chan struct{}
}

// View is a consistent snapshot of everything the coordinator knows about the
// current account and selection.
type View struct {
	Account             string
	Profile             domain.FetchState[domain.Profile]
	Repositories        domain.FetchState[[]domain.Repository]
	Activity            domain.ActivityView
	Summary             domain.SeriesSummary
	Page                domain.PageWindow
	VisibleRepositories []domain.Repository
	// Loading is true while the profile, repository list or overall activity
	// is loading. Repository activity never gates it.
	Loading bool
	// Err is the first failure among profile, repository list and overall
	// activity, in that order.
	Err error
}

// Coordinator fetches account data for a mutable account and repository
// selection. Resolved query results are cached by key and reused when the key
// comes back; a query whose key is superseded while in flight is dropped and
// its result discarded instead of applied.
type Coordinator struct {
	fetcher gateway.Fetcher
	logger  zerolog.Logger

	mu       sync.Mutex
	account  string
	selected string
	page     int
	slots    map[queryKey]*querySlot
}

// NewCoordinator creates a Coordinator with no account set.
func NewCoordinator(fetcher gateway.Fetcher, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		fetcher: fetcher,
		logger:  logger,
		page:    1,
		slots:   make(map[queryKey]*querySlot),
	}
}

// SetAccount switches to account. The repository selection is cleared, the
// page is reset to 1 and the profile, repository list and overall activity
// queries are started for the new account. An empty account disables fetching.
//
// Setting an account attaches to its queries still loading, reuses resolved
// ones and retries failed ones.
func (c *Coordinator) SetAccount(ctx context.Context, account string) {
	account = strings.TrimSpace(account)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = ""
	c.page = 1
	c.supersede(func(k queryKey) bool {
		return k.account != account || k.kind == repositoryActivityQuery
	})
	c.account = account
	if account == "" {
		return
	}
	for _, kind := range []queryKind{profileQuery, repositoriesQuery, overallActivityQuery} {
		c.ensure(ctx, queryKey{kind: kind, account: account})
	}
}

// SelectRepository switches the activity view to the weekly series of repo.
// An empty name clears the selection.
func (c *Coordinator) SelectRepository(ctx context.Context, repo string) error {
	repo = strings.TrimSpace(repo)
	if repo == "" {
		c.ClearSelection()
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.account == "" {
		return domain.ErrNoAccount
	}
	c.selected = repo
	c.supersede(func(k queryKey) bool {
		return k.kind == repositoryActivityQuery && k.repo != repo
	})
	c.ensure(ctx, queryKey{kind: repositoryActivityQuery, account: c.account, repo: repo})
	return nil
}

// ClearSelection reverts to the overall activity view. The overall series is
// not fetched again.
func (c *Coordinator) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = ""
	c.supersede(func(k queryKey) bool {
		return k.kind == repositoryActivityQuery
	})
}

// SetPage moves the repository list to page, clamped into range.
func (c *Coordinator) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = ClampPage(page, c.totalPages())
}

// NextPage advances one page. It is a no-op on the last page.
func (c *Coordinator) NextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page < c.totalPages() {
		c.page++
	}
}

// PrevPage goes back one page. It is a no-op on the first page.
func (c *Coordinator) PrevPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page > 1 {
		c.page--
	}
}

// Wait blocks until none of the current queries is loading or ctx is done.
func (c *Coordinator) Wait(ctx context.Context) error {
	c.mu.Lock()
	var pending []chan struct{}
	for _, key := range c.currentKeys() {
		if s, ok := c.slots[key]; ok && s.status == domain.Loading {
			pending = append(pending, s.done)
		}
	}
	c.mu.Unlock()

	eg, egCtx := errgroup.WithContext(ctx)
	for _, done := range pending {
		eg.Go(func() error {
			select {
			case <-done:
				return nil
			case <-egCtx.Done():
				return egCtx.Err()
			}
		})
	}
	return eg.Wait()
}

// Snapshot returns the current view.
func (c *Coordinator) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{
		Account:      c.account,
		Profile:      stateOf[domain.Profile](c.slots, queryKey{kind: profileQuery, account: c.account}),
		Repositories: stateOf[[]domain.Repository](c.slots, queryKey{kind: repositoriesQuery, account: c.account}),
	}
	overall := stateOf[[]domain.DailyBucket](c.slots, queryKey{kind: overallActivityQuery, account: c.account})

	if c.selected == "" {
		view.Activity = domain.OverallActivity{State: overall}
		if buckets, ok := overall.Data(); ok {
			view.Summary = SummarizeDaily(buckets)
		}
	} else {
		weekly := stateOf[[]domain.WeeklyBucket](c.slots, queryKey{kind: repositoryActivityQuery, account: c.account, repo: c.selected})
		view.Activity = domain.RepositoryActivity{Name: c.selected, State: weekly}
		if buckets, ok := weekly.Data(); ok {
			view.Summary = SummarizeWeekly(buckets)
		}
	}

	repos, _ := view.Repositories.Data()
	view.Page = NewPageWindow(c.page, len(repos))
	view.VisibleRepositories = Paginate(repos, view.Page.Current)

	view.Loading = view.Profile.IsLoading() || view.Repositories.IsLoading() || overall.IsLoading()
	for _, err := range []error{view.Profile.Err(), view.Repositories.Err(), overall.Err()} {
		if err != nil {
			view.Err = err
			break
		}
	}
	return view
}

// ensure starts the query for key unless a slot for it is already loading or
// resolved. Callers must hold c.mu.
func (c *Coordinator) ensure(ctx context.Context, key queryKey) {
	if s, ok := c.slots[key]; ok && s.status != domain.Failed {
		return
	}
	s := &querySlot{status: domain.Loading, done: make(chan struct{})}
	c.slots[key] = s
	// In-flight fetches are never aborted, only ignored once superseded.
	go c.run(context.WithoutCancel(ctx), key, s)
}

// supersede drops every loading slot matching stale. Resolved and failed slots
// stay cached. Callers must hold c.mu.
func (c *Coordinator) supersede(stale func(queryKey) bool) {
	for key, s := range c.slots {
		if s.status == domain.Loading && stale(key) {
			delete(c.slots, key)
		}
	}
}

func (c *Coordinator) run(ctx context.Context, key queryKey, s *querySlot) {
	value, err := c.execute(ctx, key)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer close(s.done)

	logger := c.logger.With().Stringer("query", key.kind).Str("account", key.account).Str("repo", key.repo).Logger()
	if c.slots[key] != s {
		logger.Debug().Msg("Discarding superseded result")
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("Query failed")
		s.status, s.err = domain.Failed, err
		return
	}
	logger.Debug().Msg("Query resolved")
	s.status, s.value = domain.Succeeded, value
	if repos, ok := value.([]domain.Repository); ok && key.account == c.account {
		c.page = ClampPage(c.page, TotalPages(len(repos)))
	}
}

func (c *Coordinator) execute(ctx context.Context, key queryKey) (any, error) {
	switch key.kind {
	case profileQuery:
		profile, err := c.fetcher.FetchProfile(ctx, key.account)
		if err != nil {
			return nil, err
		}
		return profile, nil
	case repositoriesQuery:
		repos, err := c.fetcher.FetchRepositories(ctx, key.account)
		if err != nil {
			return nil, err
		}
		return repos, nil
	case overallActivityQuery:
		events, err := c.fetcher.FetchAccountEvents(ctx, key.account)
		if err != nil {
			return nil, err
		}
		return AggregateOverall(events), nil
	default:
		return AggregateWeekly(c.fetcher.FetchRepositoryCommits(ctx, key.account, key.repo)), nil
	}
}

// currentKeys lists the slot keys the current view reads. Callers must hold c.mu.
func (c *Coordinator) currentKeys() []queryKey {
	if c.account == "" {
		return nil
	}
	keys := []queryKey{
		{kind: profileQuery, account: c.account},
		{kind: repositoriesQuery, account: c.account},
		{kind: overallActivityQuery, account: c.account},
	}
	if c.selected != "" {
		keys = append(keys, queryKey{kind: repositoryActivityQuery, account: c.account, repo: c.selected})
	}
	return keys
}

// totalPages is zero until the repository list has resolved. Callers must hold c.mu.
func (c *Coordinator) totalPages() int {
	s, ok := c.slots[queryKey{kind: repositoriesQuery, account: c.account}]
	if !ok || s.status != domain.Succeeded {
		return 0
	}
	return TotalPages(len(s.value.([]domain.Repository)))
}

func stateOf[T any](slots map[queryKey]*querySlot, key queryKey) domain.FetchState[T] {
	s, ok := slots[key]
	if !ok {
		return domain.FetchState[T]{}
	}
	switch s.status {
	case domain.Loading:
		return domain.LoadingState[T]()
	case domain.Failed:
		return domain.FailureState[T](s.err)
	case domain.Succeeded:
		return domain.SuccessState(s.value.(T))
	default:
		return domain.FetchState[T]{}
	}
}
