// Package monitoring implements the background compliance scanner that raises
// alerts for upcoming inspections and expiring technician certifications.
package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/technician"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// sweepLockKey serializes sweeps across worker replicas.
const sweepLockKey = "freontrack:scanner:sweep"

// EventPublisher pushes scanner alerts onto the message bus.
type EventPublisher interface {
	AlertRaised(ctx context.Context, a *alert.ComplianceAlert) error
}

// Locker is the distributed mutex port.  TryAcquire returns acquired=false
// without error when another replica holds the lock.
type Locker interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, acquired bool, err error)
}

// localLocker is the single-process fallback when no distributed lock is
// wired; within one process sweeps never overlap anyway because Run is
// sequential.
type localLocker struct{}

func (localLocker) TryAcquire(context.Context, string, time.Duration) (func(context.Context) error, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

type nopEvents struct{}

func (nopEvents) AlertRaised(context.Context, *alert.ComplianceAlert) error { return nil }

// SweepResult summarizes one scanner pass.
type SweepResult struct {
	InspectionAlerts    int
	CertificationAlerts int
	Skipped             bool
}

// Scanner periodically sweeps equipment and technicians, raising Warning
// alerts for inspections due inside the due window and certifications lapsing
// inside the expiry window.  An open alert of the same type suppresses a
// duplicate until it is resolved or dismissed.
type Scanner struct {
	equipment   equipment.Repository
	technicians technician.Repository
	alerts      alert.Repository
	events      EventPublisher
	locker      Locker

	interval     time.Duration
	dueWindow    time.Duration
	expiryWindow time.Duration
	lockTTL      time.Duration

	logger logging.Logger
	now    func() time.Time
}

// Config bundles the scanner cadence and windows.
type Config struct {
	Interval     time.Duration
	DueWindow    time.Duration
	ExpiryWindow time.Duration
	LockTTL      time.Duration
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithEventPublisher wires the message bus.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *Scanner) { s.events = p }
}

// WithLocker wires a distributed lock so only one worker replica sweeps.
func WithLocker(l Locker) Option {
	return func(s *Scanner) { s.locker = l }
}

// WithClock replaces the scanner clock.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

// NewScanner constructs a Scanner.
func NewScanner(
	equipmentRepo equipment.Repository,
	technicianRepo technician.Repository,
	alertRepo alert.Repository,
	cfg Config,
	logger logging.Logger,
	opts ...Option,
) *Scanner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Scanner{
		equipment:    equipmentRepo,
		technicians:  technicianRepo,
		alerts:       alertRepo,
		events:       nopEvents{},
		locker:       localLocker{},
		interval:     cfg.Interval,
		dueWindow:    cfg.DueWindow,
		expiryWindow: cfg.ExpiryWindow,
		lockTTL:      cfg.LockTTL,
		logger:       logger.Named("scanner"),
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run sweeps immediately and then on every interval tick until the context is
// canceled.
func (s *Scanner) Run(ctx context.Context) error {
	s.logger.Info("scanner started",
		logging.Duration("interval", s.interval),
		logging.Duration("due_window", s.dueWindow),
		logging.Duration("expiry_window", s.expiryWindow))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.SweepOnce(ctx); err != nil {
			s.logger.Error("sweep failed", logging.Err(err))
		}
		select {
		case <-ctx.Done():
			s.logger.Info("scanner stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SweepOnce performs a single pass.  When another replica holds the sweep
// lock the pass is skipped, not queued.
func (s *Scanner) SweepOnce(ctx context.Context) (*SweepResult, error) {
	release, acquired, err := s.locker.TryAcquire(ctx, sweepLockKey, s.lockTTL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "acquire sweep lock")
	}
	if !acquired {
		s.logger.Debug("sweep lock held elsewhere, skipping pass")
		return &SweepResult{Skipped: true}, nil
	}
	defer func() {
		if err := release(ctx); err != nil {
			s.logger.Warn("release sweep lock", logging.Err(err))
		}
	}()

	result := &SweepResult{}
	if result.InspectionAlerts, err = s.sweepInspectionsDue(ctx); err != nil {
		return result, err
	}
	if result.CertificationAlerts, err = s.sweepCertifications(ctx); err != nil {
		return result, err
	}

	s.logger.Info("sweep complete",
		logging.Int("inspection_alerts", result.InspectionAlerts),
		logging.Int("certification_alerts", result.CertificationAlerts))
	return result, nil
}

func (s *Scanner) sweepInspectionsDue(ctx context.Context) (int, error) {
	now := s.now()
	cutoff := now.Add(s.dueWindow)
	active := equipment.StatusActive

	due, err := s.equipment.List(ctx, equipment.ListFilter{
		Status:               &active,
		NextInspectionBefore: &cutoff,
	}, common.Pagination{Page: 1, PageSize: common.MaxPageSize})
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "list due equipment")
	}

	raised := 0
	for _, eq := range due.Items {
		if eq.NextInspectionDate == nil {
			continue
		}
		exists, err := s.alerts.HasOpenAlert(ctx, eq.ID, alert.TypeInspectionDue)
		if err != nil {
			return raised, errors.Wrap(err, errors.ErrCodeDatabaseError, "check open alert")
		}
		if exists {
			continue
		}

		daysLeft := int(eq.NextInspectionDate.Sub(now).Hours() / 24)
		var message string
		if daysLeft < 0 {
			message = fmt.Sprintf("Leak inspection overdue by %d days (was due %s).",
				-daysLeft, eq.NextInspectionDate.Format("2006-01-02"))
		} else {
			message = fmt.Sprintf("Leak inspection due in %d days (%s).",
				daysLeft, eq.NextInspectionDate.Format("2006-01-02"))
		}
		a := alert.New(eq.ID, alert.TypeInspectionDue, alert.SeverityWarning,
			fmt.Sprintf("Equipment %s: Inspection Due", eq.Name), message)
		if err := s.raise(ctx, a); err != nil {
			return raised, err
		}
		raised++
	}
	return raised, nil
}

func (s *Scanner) sweepCertifications(ctx context.Context) (int, error) {
	now := s.now()
	expiring, err := s.technicians.ListExpiringCertifications(ctx, now.Add(s.expiryWindow))
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "list expiring certifications")
	}

	raised := 0
	for _, tech := range expiring {
		if tech.CertificationExpiry.IsZero() {
			continue
		}
		// Certification alerts carry no equipment; dedup keys on the
		// technician instead.
		exists, err := s.alerts.HasOpenAlert(ctx, tech.ID, alert.TypeCertificationExpiring)
		if err != nil {
			return raised, errors.Wrap(err, errors.ErrCodeDatabaseError, "check open alert")
		}
		if exists {
			continue
		}

		daysLeft := int(tech.CertificationExpiry.Sub(now).Hours() / 24)
		var message string
		if daysLeft < 0 {
			message = fmt.Sprintf("EPA certification %s expired on %s.",
				tech.CertificationNumber, tech.CertificationExpiry.Format("2006-01-02"))
		} else {
			message = fmt.Sprintf("EPA certification %s expires in %d days (%s).",
				tech.CertificationNumber, daysLeft, tech.CertificationExpiry.Format("2006-01-02"))
		}
		a := alert.New(tech.ID, alert.TypeCertificationExpiring, alert.SeverityWarning,
			fmt.Sprintf("Technician %s: Certification Expiring", tech.Name), message)
		if err := s.raise(ctx, a); err != nil {
			return raised, err
		}
		raised++
	}
	return raised, nil
}

func (s *Scanner) raise(ctx context.Context, a *alert.ComplianceAlert) error {
	if err := s.alerts.Create(ctx, a); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "persist alert")
	}
	if err := s.events.AlertRaised(ctx, a); err != nil {
		s.logger.Error("publish alert event", logging.Err(err))
	}
	return nil
}

//Personal.AI order the ending
