package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/FreonTrack-Compliance/internal/application/risk"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// RiskService is the slice of the risk application service the HTTP layer
// uses.
type RiskService interface {
	AssessEquipment(ctx context.Context, equipmentID common.ID) (*risk.Assessment, error)
	AssessFleet(ctx context.Context) ([]*risk.Assessment, error)
}

// RiskHandler serves the leak risk assessment endpoints.
type RiskHandler struct {
	service RiskService
	logger  logging.Logger
}

func NewRiskHandler(service RiskService, log logging.Logger) *RiskHandler {
	return &RiskHandler{service: service, logger: log}
}

// Fleet returns assessments for every active appliance, highest risk first.
func (h *RiskHandler) Fleet(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.service.AssessFleet(r.Context())
	if err != nil {
		h.logger.Error("Fleet risk assessment failed", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessments)
}

// Equipment returns the assessment for a single appliance.
func (h *RiskHandler) Equipment(w http.ResponseWriter, r *http.Request) {
	equipmentID := common.ID(chi.URLParam(r, "equipmentID"))
	assessment, err := h.service.AssessEquipment(r.Context(), equipmentID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

//Personal.AI order the ending
