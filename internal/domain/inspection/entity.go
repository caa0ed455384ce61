// Package inspection defines leak inspection records, the primary input to
// compliance evaluation.
package inspection

import (
	"context"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// Method enumerates recognized leak-detection methods.
type Method string

const (
	MethodElectronic Method = "Electronic"
	MethodUltrasonic Method = "Ultrasonic"
	MethodSoapBubble Method = "Soap Bubble"
	MethodDye        Method = "Dye"
	MethodPressure   Method = "Pressure Test"
	MethodVisual     Method = "Visual"
)

// LeakInspection is a single leak inspection event for one piece of
// equipment.
//
// CalculatedLeakRate is nil when the inspection could not be annualized:
// the first inspection of an appliance, a same-day follow-up, or a prior
// reading with a zero charge.  Compliant defaults to true in those cases —
// absence of evidence is not a violation.
type LeakInspection struct {
	ID           common.ID `json:"id"`
	EquipmentID  common.ID `json:"equipment_id"`
	TechnicianID common.ID `json:"technician_id"`

	InspectionDate time.Time `json:"inspection_date"`
	Method         Method    `json:"method"`

	// CurrentCharge is the refrigerant charge found during the inspection, lbs.
	CurrentCharge float64 `json:"current_charge_lbs"`

	// ChargeAdded is the refrigerant added to restore full charge, lbs.
	ChargeAdded float64 `json:"charge_added_lbs"`

	// CalculatedLeakRate is the annualized leak rate in percent, when it could
	// be computed from the previous inspection.
	CalculatedLeakRate *float64 `json:"calculated_leak_rate,omitempty"`

	Compliant          bool       `json:"compliant"`
	Notes              string     `json:"notes,omitempty"`
	NextInspectionDate *time.Time `json:"next_inspection_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// New constructs a LeakInspection with a fresh ID.  The compliance evaluator
// fills CalculatedLeakRate, Compliant, and NextInspectionDate.
func New(equipmentID, technicianID common.ID, date time.Time, method Method, currentCharge, chargeAdded float64) *LeakInspection {
	return &LeakInspection{
		ID:             common.NewID(),
		EquipmentID:    equipmentID,
		TechnicianID:   technicianID,
		InspectionDate: date,
		Method:         method,
		CurrentCharge:  currentCharge,
		ChargeAdded:    chargeAdded,
		Compliant:      true,
		CreatedAt:      time.Now().UTC(),
	}
}

// Validate checks the invariants every persisted inspection must satisfy.
func (i *LeakInspection) Validate() error {
	if i.EquipmentID == "" {
		return errors.InvalidParam("equipment_id is required")
	}
	if i.TechnicianID == "" {
		return errors.InvalidParam("technician_id is required")
	}
	if i.InspectionDate.IsZero() {
		return errors.New(errors.ErrCodeInspectionInvalidDate, "")
	}
	if i.CurrentCharge < 0 || i.ChargeAdded < 0 {
		return errors.New(errors.ErrCodeInspectionChargeNegative, "").
			WithDetailf("current=%g added=%g", i.CurrentCharge, i.ChargeAdded)
	}
	return nil
}

// Repository is the persistence contract for LeakInspection.
type Repository interface {
	Create(ctx context.Context, ins *LeakInspection) error
	GetByID(ctx context.Context, id common.ID) (*LeakInspection, error)
	// GetLatestForEquipment returns the most recent inspection by date for the
	// equipment, or a not-found error when none exists.
	GetLatestForEquipment(ctx context.Context, equipmentID common.ID) (*LeakInspection, error)
	// ListForEquipment returns inspections for the equipment ordered by
	// inspection date descending (most recent first).
	ListForEquipment(ctx context.Context, equipmentID common.ID, limit int) ([]*LeakInspection, error)
	List(ctx context.Context, page common.Pagination) (common.PaginatedResult[*LeakInspection], error)
	CountForEquipment(ctx context.Context, equipmentID common.ID) (int64, error)
}

//Personal.AI order the ending
