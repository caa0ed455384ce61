// Package reporting builds the compliance and refrigerant-usage reports an
// operator hands to an EPA auditor.
package reporting

import (
	"context"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inspection"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/servicelog"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// EquipmentComplianceLine is one appliance row in the compliance report.
type EquipmentComplianceLine struct {
	Equipment         *equipment.Equipment       `json:"equipment"`
	LatestInspection  *inspection.LeakInspection `json:"latest_inspection,omitempty"`
	CurrentLeakRate   *float64                   `json:"current_leak_rate,omitempty"`
	Compliant         bool                       `json:"compliant"`
	InspectionOverdue bool                       `json:"inspection_overdue"`
	InspectionsOnFile int64                      `json:"inspections_on_file"`
}

// ComplianceReport is the fleet-wide compliance summary.
type ComplianceReport struct {
	GeneratedAt time.Time `json:"generated_at"`

	TotalEquipment    int `json:"total_equipment"`
	CompliantCount    int `json:"compliant_count"`
	NonCompliantCount int `json:"non_compliant_count"`
	OverdueCount      int `json:"overdue_count"`

	Lines []EquipmentComplianceLine `json:"lines"`
}

// UsageReport aggregates refrigerant movement per type over a date range.
type UsageReport struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Range       common.DateRange         `json:"range"`
	Totals      []servicelog.UsageTotals `json:"totals"`

	// NetConsumed is total added minus total recovered across all types, lbs.
	NetConsumed float64 `json:"net_consumed_lbs"`
}

// Service assembles reports from the repositories.  Reports are point-in-time
// reads, not stored artifacts.
type Service struct {
	equipment   equipment.Repository
	inspections inspection.Repository
	logs        servicelog.Repository
	logger      logging.Logger
	now         func() time.Time
}

// NewService constructs the reporting Service.
func NewService(
	equipmentRepo equipment.Repository,
	inspectionRepo inspection.Repository,
	logRepo servicelog.Repository,
	logger logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		equipment:   equipmentRepo,
		inspections: inspectionRepo,
		logs:        logRepo,
		logger:      logger.Named("reporting"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Compliance builds the fleet compliance report over all active equipment.
// Equipment without inspection history counts as compliant but is flagged
// overdue once its scheduled inspection passes.
func (s *Service) Compliance(ctx context.Context) (*ComplianceReport, error) {
	now := s.now()
	fleet, err := s.equipment.ListActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "list active equipment")
	}

	report := &ComplianceReport{
		GeneratedAt:    now,
		TotalEquipment: len(fleet),
		Lines:          make([]EquipmentComplianceLine, 0, len(fleet)),
	}

	for _, eq := range fleet {
		line := EquipmentComplianceLine{Equipment: eq, Compliant: true}

		latest, err := s.inspections.GetLatestForEquipment(ctx, eq.ID)
		if err != nil && !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "load latest inspection")
		}
		if latest != nil {
			line.LatestInspection = latest
			line.CurrentLeakRate = latest.CalculatedLeakRate
			line.Compliant = latest.Compliant
		}

		count, err := s.inspections.CountForEquipment(ctx, eq.ID)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "count inspections")
		}
		line.InspectionsOnFile = count

		if eq.NextInspectionDate != nil && eq.NextInspectionDate.Before(now) {
			line.InspectionOverdue = true
			report.OverdueCount++
		}
		if line.Compliant {
			report.CompliantCount++
		} else {
			report.NonCompliantCount++
		}
		report.Lines = append(report.Lines, line)
	}

	return report, nil
}

// Usage builds the refrigerant-usage report over the given range.
func (s *Service) Usage(ctx context.Context, rng common.DateRange) (*UsageReport, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	totals, err := s.logs.UsageByRefrigerant(ctx, rng)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "aggregate refrigerant usage")
	}

	report := &UsageReport{
		GeneratedAt: s.now(),
		Range:       rng,
		Totals:      totals,
	}
	for _, t := range totals {
		report.NetConsumed += t.TotalAdded - t.TotalRecovered
	}
	return report, nil
}

//Personal.AI order the ending
