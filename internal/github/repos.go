package github

import (
	"context"
	"fmt"
	"sort"

	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	gh "github.com/google/go-github/v75/github"
	"go.opentelemetry.io/otel/attribute"
)

const (
	repoFetchLimit   = 10
	repoDisplayLimit = 6
)

// * repoVariant is one way of asking GitHub for the user's repositories
type repoVariant struct {
	name string
	list func(ctx context.Context, username string) ([]*gh.Repository, error)
}

// * repoVariants are tried in order until one answers with a 2xx
func (c *Client) repoVariants() []repoVariant {
	return []repoVariant{
		{
			name: "users/{username}/repos",
			list: func(ctx context.Context, username string) ([]*gh.Repository, error) {
				repos, _, err := c.gh.Repositories.ListByUser(ctx, username, &gh.RepositoryListByUserOptions{
					Type:        "owner",
					Sort:        "updated",
					ListOptions: gh.ListOptions{PerPage: repoFetchLimit},
				})
				return repos, err
			},
		},
		{
			// * type is left out: GitHub rejects it next to affiliation
			name: "user/repos",
			list: func(ctx context.Context, _ string) ([]*gh.Repository, error) {
				repos, _, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, &gh.RepositoryListByAuthenticatedUserOptions{
					Affiliation: "owner",
					Sort:        "updated",
					ListOptions: gh.ListOptions{PerPage: repoFetchLimit},
				})
				return repos, err
			},
		},
	}
}

// * ListRepositories resolves the identity and returns the repositories shown on the panel
func (c *Client) ListRepositories(ctx context.Context) ([]models.RepositorySummary, error) {
	identity, err := c.ResolveIdentity(ctx)
	if err != nil {
		return nil, err
	}

	repos, err := c.FetchRepositories(ctx, identity.Username)
	if err != nil {
		return nil, err
	}

	if len(repos) > repoDisplayLimit {
		repos = repos[:repoDisplayLimit]
	}
	return repos, nil
}

// * FetchRepositories returns up to ten of username's repositories, most recently
// * updated first. Private repositories and forks are kept and flagged.
func (c *Client) FetchRepositories(ctx context.Context, username string) ([]models.RepositorySummary, error) {
	ctx, span := c.startSpan(ctx, "repos", attribute.String("github.user", username))

	var (
		raw     []*gh.Repository
		lastErr error
		found   bool
	)

	for _, variant := range c.repoVariants() {
		callCtx, cancel := c.callContext(ctx)
		repos, err := variant.list(callCtx, username)
		cancel()
		observe("repos", err)

		if err != nil {
			lastErr = err
			logger.Warn("Error from %s for %s: %v", variant.name, username, err)
			continue
		}

		logger.Debug("Found %d repos from %s", len(repos), variant.name)
		raw, found = repos, true
		break
	}

	if !found {
		status, message := upstreamStatus(lastErr)
		if status == 0 {
			status = transportStatus(lastErr)
		}
		appErr := errors.New(
			"GITHUB_REPOS_NOT_FOUND",
			"No repositories found",
			message,
			lastErr,
			errors.LevelError,
		).WithKind(errors.KindNotFound).WithStatus(status)
		endSpan(span, appErr)
		return nil, appErr
	}

	if len(raw) == 0 {
		appErr := errors.New(
			"GITHUB_REPOS_NOT_FOUND",
			"No repositories found",
			fmt.Sprintf("GitHub returned no repositories for '%s'", username),
			nil,
			errors.LevelInfo,
		).WithKind(errors.KindNotFound)
		endSpan(span, appErr)
		return nil, appErr
	}

	summaries := make([]models.RepositorySummary, 0, len(raw))
	for _, repo := range raw {
		summaries = append(summaries, toRepositorySummary(repo))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})

	if len(summaries) > repoFetchLimit {
		summaries = summaries[:repoFetchLimit]
	}

	span.SetAttributes(attribute.Int("github.repos", len(summaries)))
	endSpan(span, nil)
	return summaries, nil
}

func toRepositorySummary(repo *gh.Repository) models.RepositorySummary {
	return models.RepositorySummary{
		ID:          repo.GetID(),
		Name:        repo.GetName(),
		Description: repo.Description,
		Language:    repo.Language,
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		URL:         repo.GetHTMLURL(),
		UpdatedAt:   repo.GetUpdatedAt().Time,
		Private:     repo.GetPrivate(),
		Fork:        repo.GetFork(),
		Owner:       repo.GetOwner().GetLogin(),
	}
}
