// Package alert defines compliance alerts raised by the evaluator, the
// background scanner, and the servicing flow.
package alert

import (
	"context"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// AlertType enumerates the conditions that raise an alert.
type AlertType string

const (
	TypeLeakRateExceeded      AlertType = "Leak Rate Exceeded"
	TypeInspectionDue         AlertType = "Inspection Due"
	TypeCertificationExpiring AlertType = "Certification Expiring"
	TypeLowInventory          AlertType = "Low Inventory"
)

// ValidAlertTypes lists every accepted alert type.
var ValidAlertTypes = []AlertType{
	TypeLeakRateExceeded, TypeInspectionDue, TypeCertificationExpiring, TypeLowInventory,
}

// Severity grades the urgency of an alert.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityWarning  Severity = "Warning"
	SeverityInfo     Severity = "Info"
)

// AlertStatus tracks the alert lifecycle.
type AlertStatus string

const (
	StatusOpen      AlertStatus = "Open"
	StatusResolved  AlertStatus = "Resolved"
	StatusDismissed AlertStatus = "Dismissed"
)

// ComplianceAlert is a persisted notification about a compliance condition.
// EquipmentID is empty for alerts not tied to a specific appliance (e.g. low
// inventory).
type ComplianceAlert struct {
	ID          common.ID `json:"id"`
	EquipmentID common.ID `json:"equipment_id,omitempty"`

	AlertType AlertType `json:"alert_type"`
	Severity  Severity  `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`

	// AlertDate is when the alerting condition occurred.  For leak-rate
	// violations this is the inspection date, which may be well before the
	// alert row was written; CreatedDate is the persistence timestamp.
	AlertDate time.Time `json:"alert_date"`

	Status          AlertStatus `json:"status"`
	CreatedDate     time.Time   `json:"created_date"`
	ResolvedDate    *time.Time  `json:"resolved_date,omitempty"`
	ResolvedBy      string      `json:"resolved_by,omitempty"`
	ResolutionNotes string      `json:"resolution_notes,omitempty"`
}

// New constructs an open ComplianceAlert with a fresh ID.
func New(equipmentID common.ID, alertType AlertType, severity Severity, title, message string) *ComplianceAlert {
	now := time.Now().UTC()
	return &ComplianceAlert{
		ID:          common.NewID(),
		EquipmentID: equipmentID,
		AlertType:   alertType,
		Severity:    severity,
		Title:       title,
		Message:     message,
		AlertDate:   now,
		Status:      StatusOpen,
		CreatedDate: now,
	}
}

// Validate checks the invariants every persisted alert must satisfy.
func (a *ComplianceAlert) Validate() error {
	valid := false
	for _, at := range ValidAlertTypes {
		if a.AlertType == at {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New(errors.ErrCodeAlertTypeInvalid, "").WithDetail(string(a.AlertType))
	}
	if a.Message == "" {
		return errors.InvalidParam("alert message is required")
	}
	return nil
}

// Resolve transitions the alert to Resolved, recording who closed it and why.
// Resolving a non-open alert is a conflict.
func (a *ComplianceAlert) Resolve(by, notes string) error {
	if a.Status != StatusOpen {
		return errors.New(errors.ErrCodeAlertAlreadyResolved, "").
			WithDetailf("status=%s", a.Status)
	}
	now := time.Now().UTC()
	a.Status = StatusResolved
	a.ResolvedDate = &now
	a.ResolvedBy = by
	a.ResolutionNotes = notes
	return nil
}

// Dismiss closes the alert without remediation.
func (a *ComplianceAlert) Dismiss(by, notes string) error {
	if a.Status != StatusOpen {
		return errors.New(errors.ErrCodeAlertAlreadyResolved, "").
			WithDetailf("status=%s", a.Status)
	}
	now := time.Now().UTC()
	a.Status = StatusDismissed
	a.ResolvedDate = &now
	a.ResolvedBy = by
	a.ResolutionNotes = notes
	return nil
}

// ListFilter narrows alert list queries.
type ListFilter struct {
	EquipmentID common.ID
	Status      *AlertStatus
	Severity    *Severity
	AlertType   *AlertType
}

// Repository is the persistence contract for ComplianceAlert.
type Repository interface {
	Create(ctx context.Context, a *ComplianceAlert) error
	GetByID(ctx context.Context, id common.ID) (*ComplianceAlert, error)
	Update(ctx context.Context, a *ComplianceAlert) error
	List(ctx context.Context, filter ListFilter, page common.Pagination) (common.PaginatedResult[*ComplianceAlert], error)
	// HasOpenAlert reports whether an open alert of the given type already
	// exists for the equipment, used to suppress duplicate sweep alerts.
	HasOpenAlert(ctx context.Context, equipmentID common.ID, alertType AlertType) (bool, error)
	CountOpenBySeverity(ctx context.Context) (map[Severity]int64, error)
}

//Personal.AI order the ending
