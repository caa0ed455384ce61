package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// AlertHandler serves the compliance alert endpoints.
type AlertHandler struct {
	repo   alert.Repository
	logger logging.Logger
}

func NewAlertHandler(repo alert.Repository, log logging.Logger) *AlertHandler {
	return &AlertHandler{repo: repo, logger: log}
}

// CloseAlertRequest carries the resolution fields for resolve and dismiss.
type CloseAlertRequest struct {
	By    string `json:"by"`
	Notes string `json:"notes,omitempty"`
}

func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := alert.ListFilter{
		EquipmentID: common.ID(r.URL.Query().Get("equipment_id")),
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := alert.AlertStatus(v)
		filter.Status = &status
	}
	if v := r.URL.Query().Get("severity"); v != "" {
		severity := alert.Severity(v)
		filter.Severity = &severity
	}
	if v := r.URL.Query().Get("alert_type"); v != "" {
		alertType := alert.AlertType(v)
		filter.AlertType = &alertType
	}

	result, err := h.repo.List(r.Context(), filter, parsePagination(r))
	if err != nil {
		h.logger.Error("Failed to list alerts", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.repo.GetByID(r.Context(), common.ID(chi.URLParam(r, "alertID")))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Resolve closes an open alert with remediation notes.
func (h *AlertHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	h.close(w, r, func(a *alert.ComplianceAlert, req CloseAlertRequest) error {
		return a.Resolve(req.By, req.Notes)
	})
}

// Dismiss closes an open alert without remediation.
func (h *AlertHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.close(w, r, func(a *alert.ComplianceAlert, req CloseAlertRequest) error {
		return a.Dismiss(req.By, req.Notes)
	})
}

func (h *AlertHandler) close(w http.ResponseWriter, r *http.Request, transition func(*alert.ComplianceAlert, CloseAlertRequest) error) {
	var req CloseAlertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}
	if req.By == "" {
		writeValidationError(w, "by is required")
		return
	}

	a, err := h.repo.GetByID(r.Context(), common.ID(chi.URLParam(r, "alertID")))
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := transition(a, req); err != nil {
		writeAppError(w, err)
		return
	}
	if err := h.repo.Update(r.Context(), a); err != nil {
		h.logger.Error("Failed to update alert",
			logging.String("alert_id", string(a.ID)), logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

//Personal.AI order the ending
