package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const contributionsQuery = `
query($userName: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $userName) {
    contributionsCollection(from: $from, to: $to) {
      totalCommitContributions
      totalIssueContributions
      totalPullRequestContributions
      totalPullRequestReviewContributions
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            contributionCount
            date
          }
        }
      }
    }
  }
}`

// * Contributions summarizes the resolved user's activity for the current calendar year
func (c *Client) Contributions(ctx context.Context) (*models.ContributionSummary, error) {
	identity, err := c.ResolveIdentity(ctx)
	if err != nil {
		return nil, err
	}

	return c.fetchContributions(ctx, identity.Username, c.now().Year())
}

func (c *Client) fetchContributions(ctx context.Context, username string, year int) (*models.ContributionSummary, error) {
	ctx, span := c.startSpan(ctx, "contributions",
		attribute.String("github.user", username),
		attribute.Int("github.year", year),
	)

	body := graphQLRequest{
		Query: contributionsQuery,
		Variables: map[string]any{
			"userName": username,
			"from":     fmt.Sprintf("%d-01-01T00:00:00Z", year),
			"to":       fmt.Sprintf("%d-12-31T23:59:59Z", year),
		},
	}

	req, err := c.gh.NewRequest(http.MethodPost, "graphql", body)
	if err != nil {
		appErr := errors.New(
			"GITHUB_GRAPHQL_ERROR",
			"Failed to build GitHub GraphQL request",
			"Could not encode the contributions query",
			err,
			errors.LevelError,
		).WithKind(errors.KindInternal)
		endSpan(span, appErr)
		return nil, appErr
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	var envelope contributionsEnvelope
	_, err = c.gh.Do(callCtx, req, &envelope)
	observe("contributions", err)
	if err != nil {
		appErr := upstreamFailure("GITHUB_GRAPHQL_ERROR", "GitHub GraphQL API failed", err)
		endSpan(span, appErr)
		return nil, appErr
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		appErr := errors.New(
			"GITHUB_GRAPHQL_QUERY_ERROR",
			"GraphQL query failed",
			strings.Join(messages, ", "),
			nil,
			errors.LevelError,
		).WithKind(errors.KindUpstream).WithStatus(http.StatusBadRequest)
		endSpan(span, appErr)
		return nil, appErr
	}

	if envelope.Data == nil || envelope.Data.User == nil {
		appErr := errors.New(
			"GITHUB_USER_NOT_FOUND",
			"GitHub user not found",
			fmt.Sprintf("The contributions query returned no user '%s'", username),
			nil,
			errors.LevelInfo,
		).WithKind(errors.KindNotFound)
		endSpan(span, appErr)
		return nil, appErr
	}

	collection := envelope.Data.User.ContributionsCollection
	summary := &models.ContributionSummary{
		Year:               year,
		TotalContributions: collection.ContributionCalendar.TotalContributions,
		TotalCommits:       collection.TotalCommitContributions,
		TotalIssues:        collection.TotalIssueContributions,
		TotalPRs:           collection.TotalPullRequestContributions,
		TotalReviews:       collection.TotalPullRequestReviewContributions,
		Calendar:           make([]models.ContributionWeek, 0, len(collection.ContributionCalendar.Weeks)),
	}

	for _, week := range collection.ContributionCalendar.Weeks {
		days := make([]models.ContributionDay, 0, len(week.ContributionDays))
		for _, day := range week.ContributionDays {
			days = append(days, models.ContributionDay{ContributionCount: day.ContributionCount, Date: day.Date})
		}
		summary.Calendar = append(summary.Calendar, models.ContributionWeek{ContributionDays: days})
	}

	endSpan(span, nil)
	return summary, nil
}
