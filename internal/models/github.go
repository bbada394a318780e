package models

import "time"

// * Repository as shown on the activity panel
type RepositorySummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Language    *string   `json:"language"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	URL         string    `json:"url"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Private     bool      `json:"private"`
	Fork        bool      `json:"fork"`
	Owner       string    `json:"owner"`
}

type CommitSummary struct {
	SHA       string    `json:"sha"`
	Message   string    `json:"message"`
	Date      time.Time `json:"date"`
	Repo      string    `json:"repo"`
	RepoURL   string    `json:"repoUrl"`
	CommitURL string    `json:"commitUrl"`
}

type ContributionDay struct {
	ContributionCount int    `json:"contributionCount"`
	Date              string `json:"date"`
}

type ContributionWeek struct {
	ContributionDays []ContributionDay `json:"contributionDays"`
}

type ContributionSummary struct {
	Year               int                `json:"year"`
	TotalContributions int                `json:"totalContributions"`
	TotalCommits       int                `json:"totalCommits"`
	TotalIssues        int                `json:"totalIssues"`
	TotalPRs           int                `json:"totalPRs"`
	TotalReviews       int                `json:"totalReviews"`
	Calendar           []ContributionWeek `json:"calendar"`
}
