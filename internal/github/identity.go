package github

import (
	"context"
	"net/http"

	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	gh "github.com/google/go-github/v75/github"
)

// * TokenNotConfigured is the error every fetcher returns when no credential is set
func TokenNotConfigured() *errors.ApplicationError {
	return errors.New(
		"GITHUB_TOKEN_MISSING",
		"GitHub token not configured",
		"GITHUB_TOKEN environment variable is missing or empty",
		nil,
		errors.LevelError,
	).WithKind(errors.KindConfig).WithStatus(http.StatusInternalServerError)
}

// * ResolveIdentity looks up the account that owns the credential. Nothing is cached:
// * each caller resolves on its own.
func (c *Client) ResolveIdentity(ctx context.Context) (*Identity, error) {
	if !c.Configured() {
		return nil, TokenNotConfigured()
	}

	ctx, span := c.startSpan(ctx, "identity")
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	user, _, err := c.gh.Users.Get(callCtx, "")
	observe("identity", err)
	if err != nil {
		endSpan(span, err)
		return nil, identityFailure(err)
	}

	if user.GetLogin() == "" {
		appErr := errors.New(
			"GITHUB_AUTH_FAILED",
			"GitHub authentication failed",
			"GitHub did not return a login for the configured token",
			nil,
			errors.LevelError,
		).WithKind(errors.KindAuth)
		endSpan(span, appErr)
		return nil, appErr
	}

	endSpan(span, nil)
	return identityFromUser(user), nil
}

// * identityFailure reports an auth error only when GitHub rejected the credential.
// * Rate limits and other upstream statuses stay upstream errors.
func identityFailure(err error) *errors.ApplicationError {
	status, message := upstreamStatus(err)
	if !credentialRejected(err, status) {
		return upstreamFailure("GITHUB_API_ERROR", "Failed to reach GitHub", err)
	}

	return errors.New(
		"GITHUB_AUTH_FAILED",
		"GitHub authentication failed",
		message,
		err,
		errors.LevelError,
	).WithKind(errors.KindAuth).WithStatus(status)
}

func credentialRejected(err error, status int) bool {
	var (
		rateErr  *gh.RateLimitError
		abuseErr *gh.AbuseRateLimitError
	)
	if errors.Is(err, ErrRateLimited) || errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return false
	}
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func identityFromUser(user *gh.User) *Identity {
	return &Identity{
		Username:    user.GetLogin(),
		Name:        user.GetName(),
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
	}
}

// * Debug reports what the credential can see: the user, a small repository sample
// * and a masked summary of the token itself.
func (c *Client) Debug(ctx context.Context) (*DebugInfo, error) {
	identity, err := c.ResolveIdentity(ctx)
	if err != nil {
		return nil, err
	}

	info := &DebugInfo{
		Success: true,
		User:    *identity,
		TokenInfo: TokenInfo{
			TokenLength: len(c.token),
			TokenPrefix: maskToken(c.token),
			TokenValid:  true,
		},
		Repositories: DebugRepositories{Sample: []RepoSample{}},
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	repos, resp, err := c.gh.Repositories.ListByUser(callCtx, identity.Username, &gh.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: 5},
	})
	observe("debug_repos", err)
	if err != nil {
		status, message := upstreamStatus(err)
		logger.Warn("debug repository sample for %s failed: %s", identity.Username, message)
		info.Repositories.Status = status
		info.Repositories.Error = message
		return info, nil
	}

	if resp != nil {
		info.Repositories.Status = resp.StatusCode
	}
	info.Repositories.Count = len(repos)
	for i, repo := range repos {
		if i == 2 {
			break
		}
		info.Repositories.Sample = append(info.Repositories.Sample, RepoSample{
			Name:    repo.GetName(),
			Private: repo.GetPrivate(),
			Fork:    repo.GetFork(),
			Stars:   repo.GetStargazersCount(),
		})
	}

	return info, nil
}

// * maskToken keeps at most four leading characters of the credential
func maskToken(token string) string {
	if len(token) <= 8 {
		return "..."
	}
	return token[:4] + "..."
}
