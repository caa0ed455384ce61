// Package servicelog defines refrigerant service events (repairs, recharges,
// recoveries) performed on tracked equipment.
package servicelog

import (
	"context"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// ServiceType enumerates the recognized kinds of service event.
type ServiceType string

const (
	TypeRepair             ServiceType = "Repair"
	TypeRecharge           ServiceType = "Recharge"
	TypeRecovery           ServiceType = "Recovery"
	TypePreventive         ServiceType = "Preventive Maintenance"
	TypeLeakRepair         ServiceType = "Leak Repair"
	TypeRetrofit           ServiceType = "Retrofit"
	TypeDecommission       ServiceType = "Decommission"
)

// ValidServiceTypes lists every accepted service type.
var ValidServiceTypes = []ServiceType{
	TypeRepair, TypeRecharge, TypeRecovery, TypePreventive,
	TypeLeakRepair, TypeRetrofit, TypeDecommission,
}

// ServiceLog records one service event, including refrigerant moved in or out
// of the appliance.  RefrigerantAdded draws down inventory; RefrigerantRecovered
// returns stock to it.
type ServiceLog struct {
	ID           common.ID `json:"id"`
	EquipmentID  common.ID `json:"equipment_id"`
	TechnicianID common.ID `json:"technician_id"`

	ServiceDate time.Time   `json:"service_date"`
	ServiceType ServiceType `json:"service_type"`
	Description string      `json:"description"`

	RefrigerantAdded     float64 `json:"refrigerant_added_lbs"`
	RefrigerantRecovered float64 `json:"refrigerant_recovered_lbs"`
	Cost                 float64 `json:"cost,omitempty"`

	// InvoiceKey is the object-store key of the uploaded service invoice,
	// empty when no document was attached.
	InvoiceKey string `json:"invoice_key,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// New constructs a ServiceLog with a fresh ID.
func New(equipmentID, technicianID common.ID, date time.Time, svcType ServiceType, description string) *ServiceLog {
	return &ServiceLog{
		ID:           common.NewID(),
		EquipmentID:  equipmentID,
		TechnicianID: technicianID,
		ServiceDate:  date,
		ServiceType:  svcType,
		Description:  description,
		CreatedAt:    time.Now().UTC(),
	}
}

// Validate checks the invariants every persisted service log must satisfy.
func (s *ServiceLog) Validate() error {
	if s.EquipmentID == "" {
		return errors.InvalidParam("equipment_id is required")
	}
	if s.TechnicianID == "" {
		return errors.InvalidParam("technician_id is required")
	}
	if s.ServiceDate.IsZero() {
		return errors.InvalidParam("service_date is required")
	}
	valid := false
	for _, st := range ValidServiceTypes {
		if s.ServiceType == st {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New(errors.ErrCodeServiceTypeInvalid, "").WithDetail(string(s.ServiceType))
	}
	if s.RefrigerantAdded < 0 || s.RefrigerantRecovered < 0 {
		return errors.New(errors.ErrCodeServiceAmountNegative, "").
			WithDetailf("added=%g recovered=%g", s.RefrigerantAdded, s.RefrigerantRecovered)
	}
	return nil
}

// UsageTotals aggregates refrigerant movement by type over a date range.
type UsageTotals struct {
	RefrigerantType string  `json:"refrigerant_type"`
	TotalAdded      float64 `json:"total_added_lbs"`
	TotalRecovered  float64 `json:"total_recovered_lbs"`
	ServiceCount    int64   `json:"service_count"`
}

// Repository is the persistence contract for ServiceLog.
type Repository interface {
	Create(ctx context.Context, log *ServiceLog) error
	GetByID(ctx context.Context, id common.ID) (*ServiceLog, error)
	Update(ctx context.Context, log *ServiceLog) error
	ListForEquipment(ctx context.Context, equipmentID common.ID, limit int) ([]*ServiceLog, error)
	List(ctx context.Context, page common.Pagination) (common.PaginatedResult[*ServiceLog], error)
	CountForEquipment(ctx context.Context, equipmentID common.ID) (int64, error)
	// UsageByRefrigerant joins service logs with equipment to aggregate
	// refrigerant added/recovered per refrigerant type inside the range.
	UsageByRefrigerant(ctx context.Context, rng common.DateRange) ([]UsageTotals, error)
}

//Personal.AI order the ending
