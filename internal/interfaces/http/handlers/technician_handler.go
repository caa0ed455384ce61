package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/technician"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// TechnicianHandler serves the technician registry endpoints.
type TechnicianHandler struct {
	repo   technician.Repository
	logger logging.Logger
}

func NewTechnicianHandler(repo technician.Repository, log logging.Logger) *TechnicianHandler {
	return &TechnicianHandler{repo: repo, logger: log}
}

// TechnicianRequest carries the fields accepted on create and update.
type TechnicianRequest struct {
	Name                string                       `json:"name"`
	CertificationNumber string                       `json:"certification_number"`
	CertificationType   technician.CertificationType `json:"certification_type"`
	CertificationExpiry time.Time                    `json:"certification_expiry"`
	Email               string                       `json:"email,omitempty"`
	Phone               string                       `json:"phone,omitempty"`
}

func (h *TechnicianHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TechnicianRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}

	tech := technician.New(req.Name, req.CertificationNumber, req.CertificationType, req.CertificationExpiry)
	tech.Email = req.Email
	tech.Phone = req.Phone

	if err := tech.Validate(); err != nil {
		writeAppError(w, err)
		return
	}
	if err := h.repo.Create(r.Context(), tech); err != nil {
		h.logger.Error("Failed to create technician", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tech)
}

func (h *TechnicianHandler) Get(w http.ResponseWriter, r *http.Request) {
	tech, err := h.repo.GetByID(r.Context(), common.ID(chi.URLParam(r, "technicianID")))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tech)
}

func (h *TechnicianHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req TechnicianRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}

	tech, err := h.repo.GetByID(r.Context(), common.ID(chi.URLParam(r, "technicianID")))
	if err != nil {
		writeAppError(w, err)
		return
	}

	tech.Name = req.Name
	tech.CertificationNumber = req.CertificationNumber
	tech.CertificationType = req.CertificationType
	tech.CertificationExpiry = req.CertificationExpiry
	tech.Email = req.Email
	tech.Phone = req.Phone
	tech.UpdatedAt = time.Now().UTC()

	if err := tech.Validate(); err != nil {
		writeAppError(w, err)
		return
	}
	if err := h.repo.Update(r.Context(), tech); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tech)
}

func (h *TechnicianHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), common.ID(chi.URLParam(r, "technicianID"))); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TechnicianHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.repo.List(r.Context(), parsePagination(r))
	if err != nil {
		h.logger.Error("Failed to list technicians", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

//Personal.AI order the ending
