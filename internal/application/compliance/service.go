package compliance

import (
	"context"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inspection"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/technician"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Ports
// ─────────────────────────────────────────────────────────────────────────────

// EventPublisher pushes compliance events onto the message bus.  Publishing is
// best-effort: a bus failure never rolls back a recorded inspection.
type EventPublisher interface {
	InspectionRecorded(ctx context.Context, ins *inspection.LeakInspection) error
	AlertRaised(ctx context.Context, a *alert.ComplianceAlert) error
}

// Metrics records compliance outcomes for the metrics endpoint.
type Metrics interface {
	ComplianceEvaluated(compliant bool)
	AlertRaised(alertType string)
}

type nopEvents struct{}

func (nopEvents) InspectionRecorded(context.Context, *inspection.LeakInspection) error { return nil }
func (nopEvents) AlertRaised(context.Context, *alert.ComplianceAlert) error            { return nil }

type nopMetrics struct{}

func (nopMetrics) ComplianceEvaluated(bool) {}
func (nopMetrics) AlertRaised(string)       {}

// ─────────────────────────────────────────────────────────────────────────────
// Service
// ─────────────────────────────────────────────────────────────────────────────

// Service is the inspection recording workflow: validate the request, run the
// evaluator against the latest prior inspection, persist the outcome, and fan
// out alerts and events.
type Service struct {
	equipment   equipment.Repository
	technicians technician.Repository
	inspections inspection.Repository
	alerts      alert.Repository
	evaluator   *Evaluator
	events      EventPublisher
	metrics     Metrics
	logger      logging.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithEventPublisher wires the message bus.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

// WithMetrics wires the metrics collector.
func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs the compliance Service.  Event publishing and metrics
// default to no-ops until wired with options.
func NewService(
	equipmentRepo equipment.Repository,
	technicianRepo technician.Repository,
	inspectionRepo inspection.Repository,
	alertRepo alert.Repository,
	logger logging.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Service{
		equipment:   equipmentRepo,
		technicians: technicianRepo,
		inspections: inspectionRepo,
		alerts:      alertRepo,
		evaluator:   NewEvaluator(),
		events:      nopEvents{},
		metrics:     nopMetrics{},
		logger:      logger.Named("compliance"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordInspectionRequest carries the fields a caller supplies when recording
// a leak inspection.
type RecordInspectionRequest struct {
	EquipmentID    common.ID         `json:"equipment_id"`
	TechnicianID   common.ID         `json:"technician_id"`
	InspectionDate time.Time         `json:"inspection_date"`
	Method         inspection.Method `json:"method"`
	CurrentCharge  float64           `json:"current_charge_lbs"`
	ChargeAdded    float64           `json:"charge_added_lbs"`
	Notes          string            `json:"notes,omitempty"`
}

// RecordInspection validates and persists a new leak inspection, returning the
// stored record with its computed leak rate and verdict.
//
// Inspections must arrive in date order: a date at or before the latest
// recorded inspection for the equipment is rejected rather than silently
// producing a garbage rate.
func (s *Service) RecordInspection(ctx context.Context, req RecordInspectionRequest) (*inspection.LeakInspection, error) {
	eq, err := s.equipment.GetByID(ctx, req.EquipmentID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEquipmentNotFound, "")
	}
	if !eq.IsActive() {
		return nil, errors.New(errors.ErrCodeEquipmentInactive, "").
			WithDetailf("status=%s", eq.Status)
	}
	tech, err := s.technicians.GetByID(ctx, req.TechnicianID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTechnicianNotFound, "")
	}
	if !tech.CertifiedAt(req.InspectionDate) {
		s.logger.Warn("inspection recorded by technician with expired certification",
			logging.String("technician_id", string(tech.ID)),
			logging.String("equipment_id", string(eq.ID)))
	}

	ins := inspection.New(eq.ID, tech.ID, req.InspectionDate, req.Method, req.CurrentCharge, req.ChargeAdded)
	ins.Notes = req.Notes
	if err := ins.Validate(); err != nil {
		return nil, err
	}

	previous, err := s.inspections.GetLatestForEquipment(ctx, eq.ID)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "load latest inspection")
		}
		previous = nil
	}
	if previous != nil && !req.InspectionDate.After(previous.InspectionDate) {
		return nil, errors.New(errors.ErrCodeInspectionOutOfOrder, "").
			WithDetailf("latest=%s incoming=%s",
				previous.InspectionDate.Format("2006-01-02"),
				req.InspectionDate.Format("2006-01-02"))
	}

	result, err := s.evaluator.Evaluate(eq, previous, ins)
	if err != nil {
		return nil, err
	}
	result.Apply(ins)

	if err := s.inspections.Create(ctx, ins); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "persist inspection")
	}

	eq.ScheduleNextInspection(ins.InspectionDate)
	if err := s.equipment.Update(ctx, eq); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "reschedule equipment")
	}

	s.metrics.ComplianceEvaluated(result.Compliant)

	if result.Alert != nil {
		if err := s.alerts.Create(ctx, result.Alert); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "persist alert")
		}
		s.metrics.AlertRaised(string(result.Alert.AlertType))
		s.logger.Warn("leak rate threshold exceeded",
			logging.String("equipment_id", string(eq.ID)),
			logging.Float64("leak_rate", *result.LeakRate),
			logging.Float64("threshold", eq.LeakRateThreshold))
		if err := s.events.AlertRaised(ctx, result.Alert); err != nil {
			s.logger.Error("publish alert event", logging.Err(err))
		}
	}

	if err := s.events.InspectionRecorded(ctx, ins); err != nil {
		s.logger.Error("publish inspection event", logging.Err(err))
	}

	s.logger.Info("inspection recorded",
		logging.String("equipment_id", string(eq.ID)),
		logging.String("inspection_id", string(ins.ID)),
		logging.Bool("compliant", ins.Compliant))

	return ins, nil
}

// EquipmentStatus is the compliance snapshot of one appliance.
type EquipmentStatus struct {
	Equipment          *equipment.Equipment       `json:"equipment"`
	LatestInspection   *inspection.LeakInspection `json:"latest_inspection,omitempty"`
	CurrentLeakRate    *float64                   `json:"current_leak_rate,omitempty"`
	Compliant          bool                       `json:"compliant"`
	InspectionOverdue  bool                       `json:"inspection_overdue"`
	NextInspectionDate *time.Time                 `json:"next_inspection_date,omitempty"`
	OpenAlerts         int                        `json:"open_alerts"`
}

// StatusFor assembles the current compliance snapshot for one appliance.
// Equipment with no inspection history is compliant by definition.
func (s *Service) StatusFor(ctx context.Context, equipmentID common.ID) (*EquipmentStatus, error) {
	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEquipmentNotFound, "")
	}

	status := &EquipmentStatus{
		Equipment:          eq,
		Compliant:          true,
		NextInspectionDate: eq.NextInspectionDate,
	}

	latest, err := s.inspections.GetLatestForEquipment(ctx, equipmentID)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "load latest inspection")
		}
	} else {
		status.LatestInspection = latest
		status.CurrentLeakRate = latest.CalculatedLeakRate
		status.Compliant = latest.Compliant
	}

	if eq.NextInspectionDate != nil && eq.NextInspectionDate.Before(time.Now().UTC()) {
		status.InspectionOverdue = true
	}

	open := alert.StatusOpen
	alerts, err := s.alerts.List(ctx, alert.ListFilter{EquipmentID: equipmentID, Status: &open}, common.Pagination{Page: 1, PageSize: 1})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "count open alerts")
	}
	status.OpenAlerts = int(alerts.Total)

	return status, nil
}

// History returns the most recent inspections for an appliance, newest first.
func (s *Service) History(ctx context.Context, equipmentID common.ID, limit int) ([]*inspection.LeakInspection, error) {
	if _, err := s.equipment.GetByID(ctx, equipmentID); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEquipmentNotFound, "")
	}
	if limit <= 0 {
		limit = 50
	}
	list, err := s.inspections.ListForEquipment(ctx, equipmentID, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "list inspections")
	}
	return list, nil
}

//Personal.AI order the ending
