package handlers

import (
	"context"
	"net/http"

	"github.com/turtacn/FreonTrack-Compliance/internal/application/dashboard"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
)

// DashboardService is the slice of the dashboard application service the
// HTTP layer uses.
type DashboardService interface {
	Overview(ctx context.Context) (*dashboard.Overview, error)
}

// DashboardHandler serves the aggregated compliance overview.
type DashboardHandler struct {
	service DashboardService
	logger  logging.Logger
}

func NewDashboardHandler(service DashboardService, log logging.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, logger: log}
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.logger.Error("Failed to build dashboard overview", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

//Personal.AI order the ending
