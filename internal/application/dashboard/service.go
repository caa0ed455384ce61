// Package dashboard assembles the fleet-wide compliance overview served to
// the UI landing page.
package dashboard

import (
	"context"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/application/risk"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inventory"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/technician"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// RiskAssessor provides the highest-risk appliances for the overview.
type RiskAssessor interface {
	AssessFleet(ctx context.Context) ([]*risk.Assessment, error)
}

// Overview is the aggregate snapshot the dashboard renders.
type Overview struct {
	GeneratedAt time.Time `json:"generated_at"`

	EquipmentByStatus   map[equipment.Status]int64 `json:"equipment_by_status"`
	OpenAlertsBySeverity map[alert.Severity]int64  `json:"open_alerts_by_severity"`

	// InspectionsDue lists active equipment whose next inspection falls within
	// the due window.
	InspectionsDue []*equipment.Equipment `json:"inspections_due"`

	// ExpiringCertifications lists technicians whose certification lapses
	// within the expiry window.
	ExpiringCertifications []*technician.Technician `json:"expiring_certifications"`

	// LowInventory lists refrigerant stock at or below reorder level.
	LowInventory []*inventory.RefrigerantInventory `json:"low_inventory"`

	// TopRisks is the highest-risk equipment, at most topRiskCount entries.
	TopRisks []*risk.Assessment `json:"top_risks"`
}

// topRiskCount bounds the risk listing on the overview.
const topRiskCount = 5

// Service aggregates repository counts and the risk fleet view into one
// Overview.  Each section degrades independently: a failing risk scorer does
// not blank the rest of the dashboard.
type Service struct {
	equipment   equipment.Repository
	technicians technician.Repository
	alerts      alert.Repository
	inventory   inventory.Repository
	risks       RiskAssessor

	dueWindow    time.Duration
	expiryWindow time.Duration
	logger       logging.Logger
	now          func() time.Time
}

// NewService constructs the dashboard Service.  dueWindow bounds the
// inspections-due listing, expiryWindow the certification listing.
func NewService(
	equipmentRepo equipment.Repository,
	technicianRepo technician.Repository,
	alertRepo alert.Repository,
	inventoryRepo inventory.Repository,
	risks RiskAssessor,
	dueWindow, expiryWindow time.Duration,
	logger logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		equipment:    equipmentRepo,
		technicians:  technicianRepo,
		alerts:       alertRepo,
		inventory:    inventoryRepo,
		risks:        risks,
		dueWindow:    dueWindow,
		expiryWindow: expiryWindow,
		logger:       logger.Named("dashboard"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Overview assembles the dashboard snapshot.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	now := s.now()
	ov := &Overview{GeneratedAt: now}

	var err error
	ov.EquipmentByStatus, err = s.equipment.CountByStatus(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "count equipment")
	}
	ov.OpenAlertsBySeverity, err = s.alerts.CountOpenBySeverity(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "count alerts")
	}

	dueCutoff := now.Add(s.dueWindow)
	active := equipment.StatusActive
	due, err := s.equipment.List(ctx, equipment.ListFilter{
		Status:               &active,
		NextInspectionBefore: &dueCutoff,
	}, common.Pagination{Page: 1, PageSize: common.MaxPageSize})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "list due inspections")
	}
	ov.InspectionsDue = due.Items

	ov.ExpiringCertifications, err = s.technicians.ListExpiringCertifications(ctx, now.Add(s.expiryWindow))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "list expiring certifications")
	}

	ov.LowInventory, err = s.inventory.ListBelowReorderLevel(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "list low inventory")
	}

	if s.risks != nil {
		assessments, err := s.risks.AssessFleet(ctx)
		if err != nil {
			// Risk scoring is decoration on the dashboard, not its spine.
			s.logger.Warn("risk fleet view unavailable", logging.Err(err))
		} else {
			if len(assessments) > topRiskCount {
				assessments = assessments[:topRiskCount]
			}
			ov.TopRisks = assessments
		}
	}

	return ov, nil
}

//Personal.AI order the ending
