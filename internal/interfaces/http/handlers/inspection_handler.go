package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/FreonTrack-Compliance/internal/application/compliance"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inspection"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// ComplianceService is the slice of the compliance application service the
// HTTP layer uses.
type ComplianceService interface {
	RecordInspection(ctx context.Context, req compliance.RecordInspectionRequest) (*inspection.LeakInspection, error)
	StatusFor(ctx context.Context, equipmentID common.ID) (*compliance.EquipmentStatus, error)
	History(ctx context.Context, equipmentID common.ID, limit int) ([]*inspection.LeakInspection, error)
}

// InspectionHandler serves leak inspection recording and compliance status.
type InspectionHandler struct {
	service ComplianceService
	logger  logging.Logger
}

func NewInspectionHandler(service ComplianceService, log logging.Logger) *InspectionHandler {
	return &InspectionHandler{service: service, logger: log}
}

// Record runs the full inspection workflow: validation, leak rate
// evaluation, persistence, alerting.
func (h *InspectionHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req compliance.RecordInspectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}

	ins, err := h.service.RecordInspection(r.Context(), req)
	if err != nil {
		h.logger.Warn("Inspection rejected",
			logging.String("equipment_id", string(req.EquipmentID)), logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ins)
}

// History lists the most recent inspections for an appliance.
func (h *InspectionHandler) History(w http.ResponseWriter, r *http.Request) {
	equipmentID := common.ID(chi.URLParam(r, "equipmentID"))
	inspections, err := h.service.History(r.Context(), equipmentID, parseLimit(r, 50))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inspections)
}

// Status reports the appliance's current compliance state.
func (h *InspectionHandler) Status(w http.ResponseWriter, r *http.Request) {
	equipmentID := common.ID(chi.URLParam(r, "equipmentID"))
	status, err := h.service.StatusFor(r.Context(), equipmentID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

//Personal.AI order the ending
