package monitoring

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/technician"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

var fixedNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

type stubEquipmentRepo struct {
	due []*equipment.Equipment
}

func (s *stubEquipmentRepo) Create(_ context.Context, _ *equipment.Equipment) error { return nil }

func (s *stubEquipmentRepo) GetByID(_ context.Context, _ common.ID) (*equipment.Equipment, error) {
	return nil, errors.New(errors.ErrCodeEquipmentNotFound, "")
}

func (s *stubEquipmentRepo) Update(_ context.Context, _ *equipment.Equipment) error { return nil }
func (s *stubEquipmentRepo) Delete(_ context.Context, _ common.ID) error            { return nil }

func (s *stubEquipmentRepo) List(_ context.Context, filter equipment.ListFilter, p common.Pagination) (common.PaginatedResult[*equipment.Equipment], error) {
	if filter.NextInspectionBefore == nil {
		return common.PaginatedResult[*equipment.Equipment]{}, nil
	}
	var items []*equipment.Equipment
	for _, eq := range s.due {
		if eq.NextInspectionDate != nil && eq.NextInspectionDate.Before(*filter.NextInspectionBefore) {
			items = append(items, eq)
		}
	}
	return common.NewPaginatedResult(items, int64(len(items)), p), nil
}

func (s *stubEquipmentRepo) ListActive(_ context.Context) ([]*equipment.Equipment, error) {
	return nil, nil
}

func (s *stubEquipmentRepo) CountByStatus(_ context.Context) (map[equipment.Status]int64, error) {
	return nil, nil
}

type stubTechnicianRepo struct {
	expiring []*technician.Technician
}

func (s *stubTechnicianRepo) Create(_ context.Context, _ *technician.Technician) error { return nil }

func (s *stubTechnicianRepo) GetByID(_ context.Context, _ common.ID) (*technician.Technician, error) {
	return nil, errors.New(errors.ErrCodeTechnicianNotFound, "")
}

func (s *stubTechnicianRepo) GetByCertificationNumber(_ context.Context, _ string) (*technician.Technician, error) {
	return nil, errors.New(errors.ErrCodeTechnicianNotFound, "")
}

func (s *stubTechnicianRepo) Update(_ context.Context, _ *technician.Technician) error { return nil }
func (s *stubTechnicianRepo) Delete(_ context.Context, _ common.ID) error              { return nil }

func (s *stubTechnicianRepo) List(_ context.Context, _ common.Pagination) (common.PaginatedResult[*technician.Technician], error) {
	return common.PaginatedResult[*technician.Technician]{}, nil
}

func (s *stubTechnicianRepo) ListExpiringCertifications(_ context.Context, cutoff time.Time) ([]*technician.Technician, error) {
	var out []*technician.Technician
	for _, tech := range s.expiring {
		if !tech.CertificationExpiry.IsZero() && !tech.CertificationExpiry.After(cutoff) {
			out = append(out, tech)
		}
	}
	return out, nil
}

type recordingAlertRepo struct {
	created []*alert.ComplianceAlert
}

func (r *recordingAlertRepo) Create(_ context.Context, a *alert.ComplianceAlert) error {
	r.created = append(r.created, a)
	return nil
}

func (r *recordingAlertRepo) GetByID(_ context.Context, _ common.ID) (*alert.ComplianceAlert, error) {
	return nil, errors.New(errors.ErrCodeAlertNotFound, "")
}

func (r *recordingAlertRepo) Update(_ context.Context, _ *alert.ComplianceAlert) error { return nil }

func (r *recordingAlertRepo) List(_ context.Context, _ alert.ListFilter, _ common.Pagination) (common.PaginatedResult[*alert.ComplianceAlert], error) {
	return common.PaginatedResult[*alert.ComplianceAlert]{}, nil
}

func (r *recordingAlertRepo) HasOpenAlert(_ context.Context, equipmentID common.ID, alertType alert.AlertType) (bool, error) {
	for _, a := range r.created {
		if a.EquipmentID == equipmentID && a.AlertType == alertType && a.Status == alert.StatusOpen {
			return true, nil
		}
	}
	return false, nil
}

func (r *recordingAlertRepo) CountOpenBySeverity(_ context.Context) (map[alert.Severity]int64, error) {
	return nil, nil
}

type capturedEvents struct {
	alerts []*alert.ComplianceAlert
}

func (c *capturedEvents) AlertRaised(_ context.Context, a *alert.ComplianceAlert) error {
	c.alerts = append(c.alerts, a)
	return nil
}

type deniedLocker struct{}

func (deniedLocker) TryAcquire(context.Context, string, time.Duration) (func(context.Context) error, bool, error) {
	return nil, false, nil
}

func dueEquipment(name string, daysUntilDue int) *equipment.Equipment {
	eq := equipment.New(name, equipment.TypeComfortCooling, "R-410A", 40, 10, 30)
	next := fixedNow.AddDate(0, 0, daysUntilDue)
	eq.NextInspectionDate = &next
	return eq
}

func newScanner(eqRepo *stubEquipmentRepo, techRepo *stubTechnicianRepo, alerts *recordingAlertRepo, events *capturedEvents) *Scanner {
	return NewScanner(eqRepo, techRepo, alerts, Config{
		Interval:     time.Hour,
		DueWindow:    7 * 24 * time.Hour,
		ExpiryWindow: 30 * 24 * time.Hour,
		LockTTL:      time.Minute,
	}, logging.NewNopLogger(),
		WithEventPublisher(events),
		WithClock(func() time.Time { return fixedNow }))
}

func TestSweepRaisesInspectionDueAlerts(t *testing.T) {
	alerts := &recordingAlertRepo{}
	events := &capturedEvents{}
	s := newScanner(
		&stubEquipmentRepo{due: []*equipment.Equipment{
			dueEquipment("RTU-1", 3),
			dueEquipment("RTU-2", 60), // outside the window
		}},
		&stubTechnicianRepo{}, alerts, events)

	res, err := s.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("SweepOnce: %v", err)
	}
	if res.InspectionAlerts != 1 {
		t.Fatalf("InspectionAlerts = %d, want 1", res.InspectionAlerts)
	}
	a := alerts.created[0]
	if a.AlertType != alert.TypeInspectionDue || a.Severity != alert.SeverityWarning {
		t.Errorf("alert = %s/%s", a.AlertType, a.Severity)
	}
	if !strings.Contains(a.Message, "due in 3 days") {
		t.Errorf("Message = %q", a.Message)
	}
	if len(events.alerts) != 1 {
		t.Errorf("events = %d, want 1", len(events.alerts))
	}
}

func TestSweepFlagsOverdueInspection(t *testing.T) {
	alerts := &recordingAlertRepo{}
	s := newScanner(
		&stubEquipmentRepo{due: []*equipment.Equipment{dueEquipment("RTU-9", -4)}},
		&stubTechnicianRepo{}, alerts, &capturedEvents{})

	if _, err := s.SweepOnce(context.Background()); err != nil {
		t.Fatalf("SweepOnce: %v", err)
	}
	if len(alerts.created) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts.created))
	}
	if !strings.Contains(alerts.created[0].Message, "overdue by 4 days") {
		t.Errorf("Message = %q", alerts.created[0].Message)
	}
}

func TestSweepDeduplicatesOpenAlerts(t *testing.T) {
	alerts := &recordingAlertRepo{}
	s := newScanner(
		&stubEquipmentRepo{due: []*equipment.Equipment{dueEquipment("RTU-1", 3)}},
		&stubTechnicianRepo{}, alerts, &capturedEvents{})

	for i := 0; i < 3; i++ {
		if _, err := s.SweepOnce(context.Background()); err != nil {
			t.Fatalf("SweepOnce: %v", err)
		}
	}
	if len(alerts.created) != 1 {
		t.Errorf("repeated sweeps created %d alerts, want 1", len(alerts.created))
	}

	// Resolving the alert re-arms the sweep.
	if err := alerts.created[0].Resolve("ops", "inspection scheduled"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := s.SweepOnce(context.Background()); err != nil {
		t.Fatalf("SweepOnce: %v", err)
	}
	if len(alerts.created) != 2 {
		t.Errorf("resolved alert must re-arm, got %d", len(alerts.created))
	}
}

func TestSweepRaisesCertificationAlerts(t *testing.T) {
	alerts := &recordingAlertRepo{}
	s := newScanner(
		&stubEquipmentRepo{},
		&stubTechnicianRepo{expiring: []*technician.Technician{
			technician.New("Kim Lee", "CERT-42", technician.CertUniversal, fixedNow.AddDate(0, 0, 12)),
			technician.New("Safe Tech", "CERT-77", technician.CertTypeII, fixedNow.AddDate(2, 0, 0)),
		}},
		alerts, &capturedEvents{})

	res, err := s.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("SweepOnce: %v", err)
	}
	if res.CertificationAlerts != 1 {
		t.Fatalf("CertificationAlerts = %d, want 1", res.CertificationAlerts)
	}
	a := alerts.created[0]
	if a.AlertType != alert.TypeCertificationExpiring {
		t.Errorf("AlertType = %s", a.AlertType)
	}
	if !strings.Contains(a.Message, "CERT-42") || !strings.Contains(a.Message, "expires in 12 days") {
		t.Errorf("Message = %q", a.Message)
	}
}

func TestSweepSkipsWhenLockHeld(t *testing.T) {
	alerts := &recordingAlertRepo{}
	s := NewScanner(
		&stubEquipmentRepo{due: []*equipment.Equipment{dueEquipment("RTU-1", 3)}},
		&stubTechnicianRepo{}, alerts,
		Config{Interval: time.Hour, DueWindow: 7 * 24 * time.Hour, ExpiryWindow: 30 * 24 * time.Hour, LockTTL: time.Minute},
		logging.NewNopLogger(),
		WithLocker(deniedLocker{}),
		WithClock(func() time.Time { return fixedNow }))

	res, err := s.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("SweepOnce: %v", err)
	}
	if !res.Skipped {
		t.Error("sweep must be skipped when the lock is held elsewhere")
	}
	if len(alerts.created) != 0 {
		t.Errorf("alerts = %d, want 0", len(alerts.created))
	}
}

//Personal.AI order the ending
