package github

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	gh "github.com/google/go-github/v75/github"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	commitRepoLimit   = 5
	commitsPerRepo    = 3
	commitResultLimit = 10
	commitScanWorkers = 3
)

// * RecentCommits returns the latest commits the resolved user authored across their
// * most recently updated repositories.
func (c *Client) RecentCommits(ctx context.Context) ([]models.CommitSummary, error) {
	identity, err := c.ResolveIdentity(ctx)
	if err != nil {
		return nil, err
	}

	repos, err := c.FetchRepositories(ctx, identity.Username)
	if err != nil {
		return nil, err
	}

	return c.collectCommits(ctx, identity.Username, repos), nil
}

// * collectCommits scans the first repositories in parallel. A repository whose
// * variants all fail is logged and skipped.
func (c *Client) collectCommits(ctx context.Context, username string, repos []models.RepositorySummary) []models.CommitSummary {
	ctx, span := c.startSpan(ctx, "commits", attribute.String("github.user", username))
	defer span.End()

	if len(repos) > commitRepoLimit {
		repos = repos[:commitRepoLimit]
	}

	perRepo := make([][]models.CommitSummary, len(repos))

	var g errgroup.Group
	g.SetLimit(commitScanWorkers)

	for i, repo := range repos {
		g.Go(func() error {
			commits, err := c.repoCommits(ctx, username, repo)
			if err != nil {
				logger.Warn("Error fetching commits for repo %s: %v", repo.Name, err)
				span.AddEvent("repo_skipped", trace.WithAttributes(attribute.String("github.repo", repo.Name)))
				return nil
			}
			perRepo[i] = commits
			return nil
		})
	}
	_ = g.Wait()

	// * flattened in repository order so the stable sort keeps ties in input order
	all := make([]models.CommitSummary, 0)
	for _, commits := range perRepo {
		all = append(all, commits...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})

	if len(all) > commitResultLimit {
		all = all[:commitResultLimit]
	}

	span.SetAttributes(attribute.Int("github.commits", len(all)))
	logger.Debug("Total commits found: %d", len(all))
	return all
}

// * repoCommits tries the author-filtered listing first, then the plain one.
// * The first variant that answers wins, even when nothing in it matches.
func (c *Client) repoCommits(ctx context.Context, username string, repo models.RepositorySummary) ([]models.CommitSummary, error) {
	owner := repo.Owner
	if owner == "" {
		owner = username
	}

	variants := []gh.CommitsListOptions{
		{Author: username, ListOptions: gh.ListOptions{PerPage: commitsPerRepo}},
		{ListOptions: gh.ListOptions{PerPage: commitsPerRepo}},
	}

	var lastErr error
	for _, opts := range variants {
		callCtx, cancel := c.callContext(ctx)
		raw, _, err := c.gh.Repositories.ListCommits(callCtx, owner, repo.Name, &opts)
		cancel()
		observe("commits", err)

		if err != nil {
			lastErr = err
			logger.Debug("commit listing for %s/%s (author=%q) failed: %v", owner, repo.Name, opts.Author, err)
			continue
		}

		return summarizeCommits(raw, username, repo), nil
	}

	return nil, fmt.Errorf("all commit listings failed for %s/%s: %w", owner, repo.Name, lastErr)
}

// * summarizeCommits keeps only commits whose author login is username
func summarizeCommits(raw []*gh.RepositoryCommit, username string, repo models.RepositorySummary) []models.CommitSummary {
	commits := make([]models.CommitSummary, 0, len(raw))
	for _, commit := range raw {
		if commit.GetAuthor().GetLogin() != username {
			continue
		}

		sha := commit.GetSHA()
		if len(sha) > 7 {
			sha = sha[:7]
		}

		message, _, _ := strings.Cut(commit.GetCommit().GetMessage(), "\n")

		commits = append(commits, models.CommitSummary{
			SHA:       sha,
			Message:   message,
			Date:      commit.GetCommit().GetAuthor().GetDate().Time,
			Repo:      repo.Name,
			RepoURL:   repo.URL,
			CommitURL: commit.GetHTMLURL(),
		})
	}
	return commits
}
