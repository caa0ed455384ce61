package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/application/reporting"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// ReportingService is the slice of the reporting application service the
// HTTP layer uses.
type ReportingService interface {
	Compliance(ctx context.Context) (*reporting.ComplianceReport, error)
	Usage(ctx context.Context, rng common.DateRange) (*reporting.UsageReport, error)
}

// ReportHandler serves the regulatory report endpoints.
type ReportHandler struct {
	service ReportingService
	logger  logging.Logger
}

func NewReportHandler(service ReportingService, log logging.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: log}
}

func (h *ReportHandler) Compliance(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Compliance(r.Context())
	if err != nil {
		h.logger.Error("Failed to build compliance report", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Usage builds the refrigerant usage report, optionally bounded by from/to
// query parameters (date-only or RFC 3339).
func (h *ReportHandler) Usage(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	report, err := h.service.Usage(r.Context(), rng)
	if err != nil {
		h.logger.Error("Failed to build usage report", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func parseDateRange(r *http.Request) (common.DateRange, error) {
	var rng common.DateRange
	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		if rng.From, err = parseDate(v); err != nil {
			return rng, err
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if rng.To, err = parseDate(v); err != nil {
			return rng, err
		}
	}
	return rng, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

//Personal.AI order the ending
