package github

// * Identity is the account behind the configured credential
type Identity struct {
	Username    string `json:"login"`
	Name        string `json:"name"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

type DebugInfo struct {
	Success      bool              `json:"success"`
	User         Identity          `json:"user"`
	Repositories DebugRepositories `json:"repositories"`
	TokenInfo    TokenInfo         `json:"token_info"`
}

type DebugRepositories struct {
	Status int          `json:"status"`
	Count  int          `json:"count"`
	Sample []RepoSample `json:"sample"`
	Error  string       `json:"error,omitempty"`
}

type RepoSample struct {
	Name    string `json:"name"`
	Private bool   `json:"private"`
	Fork    bool   `json:"fork"`
	Stars   int    `json:"stars"`
}

type TokenInfo struct {
	TokenLength int    `json:"token_length"`
	TokenPrefix string `json:"token_prefix"`
	TokenValid  bool   `json:"token_valid"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type contributionsEnvelope struct {
	Data *struct {
		User *struct {
			ContributionsCollection struct {
				TotalCommitContributions            int `json:"totalCommitContributions"`
				TotalIssueContributions             int `json:"totalIssueContributions"`
				TotalPullRequestContributions       int `json:"totalPullRequestContributions"`
				TotalPullRequestReviewContributions int `json:"totalPullRequestReviewContributions"`
				ContributionCalendar                struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							ContributionCount int    `json:"contributionCount"`
							Date              string `json:"date"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}
