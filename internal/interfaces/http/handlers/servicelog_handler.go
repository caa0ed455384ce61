package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/FreonTrack-Compliance/internal/application/servicing"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/servicelog"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// invoiceFormLimit caps the multipart form held in memory during an invoice
// upload; larger files spill to disk.
const invoiceFormLimit = 8 << 20

// ServicingService is the slice of the servicing application service the
// HTTP layer uses.
type ServicingService interface {
	RecordService(ctx context.Context, req servicing.RecordServiceRequest) (*servicelog.ServiceLog, error)
	AttachInvoice(ctx context.Context, serviceLogID common.ID, filename, contentType string, size int64, r io.Reader) (*servicelog.ServiceLog, error)
	InvoiceURL(ctx context.Context, serviceLogID common.ID, expiry time.Duration) (string, error)
	History(ctx context.Context, equipmentID common.ID, limit int) ([]*servicelog.ServiceLog, error)
}

// ServiceLogHandler serves service event recording and invoice documents.
type ServiceLogHandler struct {
	service ServicingService
	logger  logging.Logger
}

func NewServiceLogHandler(service ServicingService, log logging.Logger) *ServiceLogHandler {
	return &ServiceLogHandler{service: service, logger: log}
}

// Record persists a service event and applies its refrigerant movement to
// the inventory ledger.
func (h *ServiceLogHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req servicing.RecordServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}

	log, err := h.service.RecordService(r.Context(), req)
	if err != nil {
		h.logger.Warn("Service event rejected",
			logging.String("equipment_id", string(req.EquipmentID)), logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

// History lists the most recent service events for an appliance.
func (h *ServiceLogHandler) History(w http.ResponseWriter, r *http.Request) {
	equipmentID := common.ID(chi.URLParam(r, "equipmentID"))
	logs, err := h.service.History(r.Context(), equipmentID, parseLimit(r, 50))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// UploadInvoice stores an invoice document for a service log. The document
// arrives as the "invoice" part of a multipart form.
func (h *ServiceLogHandler) UploadInvoice(w http.ResponseWriter, r *http.Request) {
	serviceLogID := common.ID(chi.URLParam(r, "serviceLogID"))

	if err := r.ParseMultipartForm(invoiceFormLimit); err != nil {
		writeValidationError(w, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("invoice")
	if err != nil {
		writeValidationError(w, "invoice file is required")
		return
	}
	defer file.Close()

	log, err := h.service.AttachInvoice(r.Context(), serviceLogID,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		h.logger.Warn("Invoice upload rejected",
			logging.String("service_log_id", string(serviceLogID)), logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

// InvoiceURL returns a short-lived presigned download link for the stored
// invoice.
func (h *ServiceLogHandler) InvoiceURL(w http.ResponseWriter, r *http.Request) {
	serviceLogID := common.ID(chi.URLParam(r, "serviceLogID"))

	url, err := h.service.InvoiceURL(r.Context(), serviceLogID, 0)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

//Personal.AI order the ending
