package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const healthTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db               Pinger
	githubConfigured bool
}

func NewHealthHandler(db Pinger, githubConfigured bool) *HealthHandler {
	return &HealthHandler{db: db, githubConfigured: githubConfigured}
}

func (h *HealthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.health).Methods("GET")
}

// health godoc
// @Summary Liveness
// @Description The process is up. Database reachability and GitHub configuration are reported, not required.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "up", GitHub: "configured"}

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		resp.Database = "down"
	}
	if !h.githubConfigured {
		resp.GitHub = "not_configured"
	}

	writeJSON(w, http.StatusOK, resp)
}
