package handler

import (
	"context"
	"net/http"

	"github.com/KOFI-GYIMAH/portfolio/internal/github"
	"github.com/KOFI-GYIMAH/portfolio/internal/service"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/gorilla/mux"
)

// * GitHubAPI is what the GitHub routes need from the upstream client
type GitHubAPI interface {
	service.GitHubFetcher
	Debug(ctx context.Context) (*github.DebugInfo, error)
}

type GitHubHandler struct {
	client      GitHubAPI
	aggregation *service.AggregationService
}

func NewGitHubHandler(client GitHubAPI, aggregation *service.AggregationService) *GitHubHandler {
	return &GitHubHandler{
		client:      client,
		aggregation: aggregation,
	}
}

func (h *GitHubHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/github/debug", h.debug).Methods("GET")
	r.HandleFunc("/github/repos", h.getRepositories).Methods("GET")
	r.HandleFunc("/github/commits", h.getCommits).Methods("GET")
	r.HandleFunc("/github/contributions", h.getContributions).Methods("GET")
	r.HandleFunc("/github/overview", h.getOverview).Methods("GET")
	r.HandleFunc("/github/overview/refresh", h.refreshOverview).Methods("POST")
}

// debug godoc
// @Summary GitHub credential debug
// @Description Shows the authenticated user, a repository sample and masked token details
// @Tags GitHub
// @Produce json
// @Success 200 {object} github.DebugInfo
// @Failure 401 {object} errors.HTTPErrorResponse
// @Failure 500 {object} errors.HTTPErrorResponse "GitHub token not configured"
// @Router /github/debug [get]
func (h *GitHubHandler) debug(w http.ResponseWriter, r *http.Request) {
	info, err := h.client.Debug(r.Context())
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// getRepositories godoc
// @Summary Recent repositories
// @Description Up to six of the authenticated user's most recently updated repositories
// @Tags GitHub
// @Produce json
// @Success 200 {array} models.RepositorySummary
// @Failure 404 {object} errors.HTTPErrorResponse "No repositories found"
// @Failure 500 {object} errors.HTTPErrorResponse "GitHub token not configured"
// @Router /github/repos [get]
func (h *GitHubHandler) getRepositories(w http.ResponseWriter, r *http.Request) {
	repos, err := h.client.ListRepositories(r.Context())
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	logger.Info("Returning %d formatted repos", len(repos))
	writeJSON(w, http.StatusOK, repos)
}

// getCommits godoc
// @Summary Recent commits
// @Description Up to ten commits authored by the authenticated user, newest first
// @Tags GitHub
// @Produce json
// @Success 200 {array} models.CommitSummary
// @Failure 404 {object} errors.HTTPErrorResponse
// @Failure 500 {object} errors.HTTPErrorResponse "GitHub token not configured"
// @Router /github/commits [get]
func (h *GitHubHandler) getCommits(w http.ResponseWriter, r *http.Request) {
	commits, err := h.client.RecentCommits(r.Context())
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commits)
}

// getContributions godoc
// @Summary Contribution summary
// @Description Contribution totals and calendar for the current year
// @Tags GitHub
// @Produce json
// @Success 200 {object} models.ContributionSummary
// @Failure 400 {object} errors.HTTPErrorResponse "GraphQL query failed"
// @Failure 500 {object} errors.HTTPErrorResponse "GitHub token not configured"
// @Router /github/contributions [get]
func (h *GitHubHandler) getContributions(w http.ResponseWriter, r *http.Request) {
	summary, err := h.client.Contributions(r.Context())
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// getOverview godoc
// @Summary GitHub panel
// @Description Runs all fetchers concurrently and merges them into one panel state
// @Tags GitHub
// @Produce json
// @Success 200 {object} service.Overview
// @Router /github/overview [get]
func (h *GitHubHandler) getOverview(w http.ResponseWriter, r *http.Request) {
	panel := service.NewPanel(h.aggregation)
	writeJSON(w, http.StatusOK, panel.Load(r.Context()))
}

// refreshOverview godoc
// @Summary Refresh GitHub panel
// @Description Resets the panel to loading and fetches everything again
// @Tags GitHub
// @Produce json
// @Success 200 {object} service.Overview
// @Router /github/overview/refresh [post]
func (h *GitHubHandler) refreshOverview(w http.ResponseWriter, r *http.Request) {
	panel := service.NewPanel(h.aggregation)
	writeJSON(w, http.StatusOK, panel.Refresh(r.Context()))
}
