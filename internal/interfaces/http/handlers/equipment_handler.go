package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/FreonTrack-Compliance/internal/config"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// EquipmentHandler serves the equipment registry endpoints.
type EquipmentHandler struct {
	repo     equipment.Repository
	defaults config.ComplianceConfig
	logger   logging.Logger
}

func NewEquipmentHandler(repo equipment.Repository, defaults config.ComplianceConfig, log logging.Logger) *EquipmentHandler {
	return &EquipmentHandler{repo: repo, defaults: defaults, logger: log}
}

// CreateEquipmentRequest carries the fields accepted when registering an
// appliance. Threshold and inspection frequency fall back to the
// regulatory defaults when omitted.
type CreateEquipmentRequest struct {
	Name                    string         `json:"name"`
	EquipmentType           equipment.Type `json:"equipment_type"`
	Location                string         `json:"location"`
	RefrigerantType         string         `json:"refrigerant_type"`
	FullCharge              float64        `json:"full_charge_lbs"`
	InstallDate             *time.Time     `json:"install_date,omitempty"`
	LeakRateThreshold       float64        `json:"leak_rate_threshold,omitempty"`
	InspectionFrequencyDays int            `json:"inspection_frequency_days,omitempty"`
}

// UpdateEquipmentRequest carries the mutable fields of an appliance.
type UpdateEquipmentRequest struct {
	Name                    string           `json:"name"`
	EquipmentType           equipment.Type   `json:"equipment_type"`
	Location                string           `json:"location"`
	RefrigerantType         string           `json:"refrigerant_type"`
	FullCharge              float64          `json:"full_charge_lbs"`
	InstallDate             *time.Time       `json:"install_date,omitempty"`
	LeakRateThreshold       float64          `json:"leak_rate_threshold"`
	InspectionFrequencyDays int              `json:"inspection_frequency_days"`
	Status                  equipment.Status `json:"status"`
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEquipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}

	threshold := req.LeakRateThreshold
	if threshold == 0 {
		threshold = h.defaults.DefaultLeakRateThreshold
	}
	freq := req.InspectionFrequencyDays
	if freq == 0 {
		freq = h.defaults.DefaultInspectionFreqDays
	}

	eq := equipment.New(req.Name, req.EquipmentType, req.RefrigerantType, req.FullCharge, threshold, freq)
	eq.Location = req.Location
	if req.InstallDate != nil {
		eq.InstallDate = *req.InstallDate
	}

	if err := eq.Validate(); err != nil {
		writeAppError(w, err)
		return
	}
	if err := h.repo.Create(r.Context(), eq); err != nil {
		h.logger.Error("Failed to create equipment", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	eq, err := h.repo.GetByID(r.Context(), common.ID(chi.URLParam(r, "equipmentID")))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateEquipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}

	eq, err := h.repo.GetByID(r.Context(), common.ID(chi.URLParam(r, "equipmentID")))
	if err != nil {
		writeAppError(w, err)
		return
	}

	eq.Name = req.Name
	eq.EquipmentType = req.EquipmentType
	eq.Location = req.Location
	eq.RefrigerantType = req.RefrigerantType
	eq.FullCharge = req.FullCharge
	eq.LeakRateThreshold = req.LeakRateThreshold
	eq.InspectionFrequencyDays = req.InspectionFrequencyDays
	eq.Status = req.Status
	if req.InstallDate != nil {
		eq.InstallDate = *req.InstallDate
	}
	eq.UpdatedAt = time.Now().UTC()

	if err := eq.Validate(); err != nil {
		writeAppError(w, err)
		return
	}
	if err := h.repo.Update(r.Context(), eq); err != nil {
		h.logger.Error("Failed to update equipment",
			logging.String("equipment_id", string(eq.ID)), logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), common.ID(chi.URLParam(r, "equipmentID"))); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := equipment.ListFilter{
		RefrigerantType: r.URL.Query().Get("refrigerant_type"),
		Location:        r.URL.Query().Get("location"),
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := equipment.Status(v)
		filter.Status = &status
	}

	result, err := h.repo.List(r.Context(), filter, parsePagination(r))
	if err != nil {
		h.logger.Error("Failed to list equipment", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

//Personal.AI order the ending
