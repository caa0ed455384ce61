// Package equipment defines the refrigerant-containing equipment aggregate
// and its repository contract.
package equipment

import (
	"context"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// Status enumerates equipment lifecycle states.  Only Active equipment is
// inspected, scored, and swept by the background scanner.
type Status string

const (
	StatusActive         Status = "Active"
	StatusInactive       Status = "Inactive"
	StatusRetired        Status = "Retired"
	StatusDecommissioned Status = "Decommissioned"
)

// ValidStatuses lists every accepted status value.
var ValidStatuses = []Status{StatusActive, StatusInactive, StatusRetired, StatusDecommissioned}

// Type enumerates the supported appliance categories.
type Type string

const (
	TypeCommercialRefrigeration Type = "Commercial Refrigeration"
	TypeComfortCooling          Type = "Comfort Cooling"
	TypeIndustrialProcess       Type = "Industrial Process Refrigeration"
	TypeOther                   Type = "Other"
)

// Equipment is a single refrigerant-containing appliance under compliance
// tracking.
type Equipment struct {
	ID               common.ID `json:"id"`
	Name             string    `json:"name"`
	EquipmentType    Type      `json:"equipment_type"`
	Location         string    `json:"location"`
	RefrigerantType  string    `json:"refrigerant_type"` // e.g. R-410A
	FullCharge       float64   `json:"full_charge_lbs"`  // nameplate charge in lbs
	InstallDate      time.Time `json:"install_date"`

	// LeakRateThreshold is the annualized leak-rate ceiling in percent above
	// which the appliance is out of compliance.
	LeakRateThreshold float64 `json:"leak_rate_threshold"`

	// InspectionFrequencyDays is the required interval between leak
	// inspections.
	InspectionFrequencyDays int `json:"inspection_frequency_days"`

	Status             Status     `json:"status"`
	NextInspectionDate *time.Time `json:"next_inspection_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New constructs an Equipment with a fresh ID and Active status, applying the
// supplied regulatory defaults when the caller left them unset.
func New(name string, eqType Type, refrigerant string, fullCharge float64, defaultThreshold float64, defaultFreqDays int) *Equipment {
	now := time.Now().UTC()
	return &Equipment{
		ID:                      common.NewID(),
		Name:                    name,
		EquipmentType:           eqType,
		RefrigerantType:         refrigerant,
		FullCharge:              fullCharge,
		LeakRateThreshold:       defaultThreshold,
		InspectionFrequencyDays: defaultFreqDays,
		Status:                  StatusActive,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

// Validate checks the invariants every persisted Equipment must satisfy.
func (e *Equipment) Validate() error {
	if e.Name == "" {
		return errors.InvalidParam("equipment name is required")
	}
	if e.RefrigerantType == "" {
		return errors.InvalidParam("refrigerant type is required")
	}
	if e.FullCharge < 0 {
		return errors.New(errors.ErrCodeEquipmentInvalidCharge, "").
			WithDetailf("full_charge=%g", e.FullCharge)
	}
	if e.LeakRateThreshold <= 0 {
		return errors.New(errors.ErrCodeInvalidLeakRateThreshold, "").
			WithDetailf("threshold=%g", e.LeakRateThreshold)
	}
	if e.InspectionFrequencyDays <= 0 {
		return errors.InvalidParam("inspection frequency must be positive")
	}
	if !e.HasValidStatus() {
		return errors.New(errors.ErrCodeEquipmentInvalidStatus, "").
			WithDetail(string(e.Status))
	}
	return nil
}

// HasValidStatus reports whether Status is one of the accepted values.
func (e *Equipment) HasValidStatus() bool {
	for _, s := range ValidStatuses {
		if e.Status == s {
			return true
		}
	}
	return false
}

// IsActive reports whether the equipment participates in compliance tracking.
func (e *Equipment) IsActive() bool {
	return e.Status == StatusActive
}

// AgeYears returns the equipment age in whole years at the given time.
// A zero InstallDate yields 0.
func (e *Equipment) AgeYears(at time.Time) int {
	if e.InstallDate.IsZero() {
		return 0
	}
	years := at.Year() - e.InstallDate.Year()
	anniversary := e.InstallDate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// ScheduleNextInspection sets NextInspectionDate to the inspection date plus
// the equipment's inspection frequency.
func (e *Equipment) ScheduleNextInspection(inspectionDate time.Time) {
	next := inspectionDate.AddDate(0, 0, e.InspectionFrequencyDays)
	e.NextInspectionDate = &next
	e.UpdatedAt = time.Now().UTC()
}

// ListFilter narrows equipment list queries.
type ListFilter struct {
	Status          *Status
	RefrigerantType string
	Location        string
	// NextInspectionBefore selects equipment whose next inspection falls on or
	// before the given instant; used by the due-inspection sweep.
	NextInspectionBefore *time.Time
}

// Repository is the persistence contract for Equipment.
type Repository interface {
	Create(ctx context.Context, eq *Equipment) error
	GetByID(ctx context.Context, id common.ID) (*Equipment, error)
	Update(ctx context.Context, eq *Equipment) error
	Delete(ctx context.Context, id common.ID) error
	List(ctx context.Context, filter ListFilter, page common.Pagination) (common.PaginatedResult[*Equipment], error)
	ListActive(ctx context.Context) ([]*Equipment, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}

//Personal.AI order the ending
