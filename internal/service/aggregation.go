package service

import (
	"context"
	"fmt"

	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	MsgNotConfigured = "GitHub integration is not configured. Please set up your GitHub token to display live data."
	MsgLoadFailed    = "Failed to load GitHub data. Please try again later."
)

// * GitHubFetcher is the set of independent data sources the panel is built from
type GitHubFetcher interface {
	ListRepositories(ctx context.Context) ([]models.RepositorySummary, error)
	RecentCommits(ctx context.Context) ([]models.CommitSummary, error)
	Contributions(ctx context.Context) (*models.ContributionSummary, error)
}

type OutcomeState int

const (
	StateUnconfigured OutcomeState = iota + 1
	StateFailed
	StateSucceeded
)

func (s OutcomeState) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateFailed:
		return "failed"
	case StateSucceeded:
		return "succeeded"
	}
	return "unknown"
}

// * Outcome is the result of one fetcher: unconfigured, failed with Err, or succeeded with Value
type Outcome[T any] struct {
	State OutcomeState
	Value T
	Err   error
}

// * OutcomeOf classifies a fetch result by error kind, never by message text
func OutcomeOf[T any](value T, err error) Outcome[T] {
	switch {
	case err == nil:
		return Outcome[T]{State: StateSucceeded, Value: value}
	case errors.IsKind(err, errors.KindConfig):
		return Outcome[T]{State: StateUnconfigured, Err: err}
	default:
		return Outcome[T]{State: StateFailed, Err: err}
	}
}

type Phase string

const (
	PhaseLoading      Phase = "loading"
	PhaseTokenMissing Phase = "token_missing"
	PhaseError        Phase = "error"
	PhaseLoaded       Phase = "loaded"
)

// * Overview is the merged, UI-facing state of the GitHub panel
type Overview struct {
	Phase         Phase                       `json:"phase"`
	TokenMissing  bool                        `json:"tokenMissing"`
	AnyDataLoaded bool                        `json:"anyDataLoaded"`
	Partial       bool                        `json:"partial"`
	Error         string                      `json:"error,omitempty"`
	Repos         []models.RepositorySummary  `json:"repos"`
	Commits       []models.CommitSummary      `json:"commits"`
	Contributions *models.ContributionSummary `json:"contributions"`
}

// * MergeOutcomes folds the three outcomes into one Overview.
// * An unconfigured source wins over everything else; otherwise any usable data
// * makes the panel loaded, and no data at all makes it an error.
func MergeOutcomes(
	repos Outcome[[]models.RepositorySummary],
	commits Outcome[[]models.CommitSummary],
	contributions Outcome[*models.ContributionSummary],
) Overview {
	overview := Overview{
		Repos:   []models.RepositorySummary{},
		Commits: []models.CommitSummary{},
	}

	hasRepos := repos.State == StateSucceeded && len(repos.Value) > 0
	hasCommits := commits.State == StateSucceeded && len(commits.Value) > 0
	hasContributions := contributions.State == StateSucceeded && contributions.Value != nil

	if hasRepos {
		overview.Repos = repos.Value
	}
	if hasCommits {
		overview.Commits = commits.Value
	}
	if hasContributions {
		overview.Contributions = contributions.Value
	}
	overview.AnyDataLoaded = hasRepos || hasCommits || hasContributions

	switch {
	case repos.State == StateUnconfigured ||
		commits.State == StateUnconfigured ||
		contributions.State == StateUnconfigured:
		overview.Phase = PhaseTokenMissing
		overview.TokenMissing = true
		overview.Error = MsgNotConfigured
	case !overview.AnyDataLoaded:
		overview.Phase = PhaseError
		overview.Error = MsgLoadFailed
	default:
		overview.Phase = PhaseLoaded
		overview.Partial = !(hasRepos && hasCommits && hasContributions)
	}

	return overview
}

type AggregationService struct {
	fetcher GitHubFetcher
}

func NewAggregationService(fetcher GitHubFetcher) *AggregationService {
	return &AggregationService{fetcher: fetcher}
}

// * Overview runs the three fetchers concurrently and waits for all of them.
// * A failing fetcher never cancels the others.
func (s *AggregationService) Overview(ctx context.Context) Overview {
	var (
		repos         Outcome[[]models.RepositorySummary]
		commits       Outcome[[]models.CommitSummary]
		contributions Outcome[*models.ContributionSummary]
		g             errgroup.Group
	)

	g.Go(func() error {
		repos = collect(ctx, "repos", s.fetcher.ListRepositories)
		return nil
	})
	g.Go(func() error {
		commits = collect(ctx, "commits", s.fetcher.RecentCommits)
		return nil
	})
	g.Go(func() error {
		contributions = collect(ctx, "contributions", s.fetcher.Contributions)
		return nil
	})
	_ = g.Wait()

	overview := MergeOutcomes(repos, commits, contributions)
	logger.Info("GitHub overview %s (repos=%s commits=%s contributions=%s)",
		overview.Phase, repos.State, commits.State, contributions.State)
	return overview
}

func collect[T any](ctx context.Context, source string, fetch func(context.Context) (T, error)) (outcome Outcome[T]) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("GitHub %s fetcher panicked: %v", source, p)
			outcome = Outcome[T]{State: StateFailed, Err: fmt.Errorf("%s fetcher panicked: %v", source, p)}
		}
	}()

	value, err := fetch(ctx)
	outcome = OutcomeOf(value, err)
	if outcome.State == StateFailed {
		logger.Warn("GitHub %s fetch failed: %v", source, err)
	}
	return outcome
}

// * Panel models the GitHub panel lifecycle: it starts Loading, settles in
// * TokenMissing, Error or Loaded, and Refresh sends it back through Loading.
type Panel struct {
	service  *AggregationService
	overview Overview
}

func NewPanel(service *AggregationService) *Panel {
	return &Panel{
		service:  service,
		overview: Overview{Phase: PhaseLoading},
	}
}

func (p *Panel) Phase() Phase {
	return p.overview.Phase
}

// * Load settles a panel that is still loading; a settled panel is returned as is
func (p *Panel) Load(ctx context.Context) Overview {
	if p.overview.Phase != PhaseLoading {
		return p.overview
	}
	p.overview = p.service.Overview(ctx)
	return p.overview
}

func (p *Panel) Refresh(ctx context.Context) Overview {
	logger.Debug("GitHub panel refresh from %s", p.overview.Phase)
	p.overview = Overview{Phase: PhaseLoading}
	return p.Load(ctx)
}
