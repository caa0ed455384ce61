// Package servicing implements the refrigerant service workflow: recording
// service events, drawing down and crediting refrigerant inventory, and
// attaching invoice documents.
package servicing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inventory"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/servicelog"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/technician"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Ports
// ─────────────────────────────────────────────────────────────────────────────

// EventPublisher pushes servicing events onto the message bus.
type EventPublisher interface {
	AlertRaised(ctx context.Context, a *alert.ComplianceAlert) error
	InventoryLow(ctx context.Context, inv *inventory.RefrigerantInventory) error
}

// InvoiceStore persists service invoice documents and serves links to them.
type InvoiceStore interface {
	StoreInvoice(ctx context.Context, serviceLogID common.ID, filename, contentType string, size int64, r io.Reader) (string, error)
	InvoiceURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type nopEvents struct{}

func (nopEvents) AlertRaised(context.Context, *alert.ComplianceAlert) error            { return nil }
func (nopEvents) InventoryLow(context.Context, *inventory.RefrigerantInventory) error { return nil }

// ─────────────────────────────────────────────────────────────────────────────
// Service
// ─────────────────────────────────────────────────────────────────────────────

// Service coordinates service-event recording with the inventory ledger.
type Service struct {
	equipment   equipment.Repository
	technicians technician.Repository
	logs        servicelog.Repository
	inventory   inventory.Repository
	alerts      alert.Repository
	events      EventPublisher
	invoices    InvoiceStore
	logger      logging.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithEventPublisher wires the message bus.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

// WithInvoiceStore wires the document store for invoice uploads.
func WithInvoiceStore(store InvoiceStore) Option {
	return func(s *Service) { s.invoices = store }
}

// NewService constructs the servicing Service.
func NewService(
	equipmentRepo equipment.Repository,
	technicianRepo technician.Repository,
	logRepo servicelog.Repository,
	inventoryRepo inventory.Repository,
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
		logs:        logRepo,
		inventory:   inventoryRepo,
		alerts:      alertRepo,
		events:      nopEvents{},
		logger:      logger.Named("servicing"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordServiceRequest carries the fields a caller supplies when recording a
// service event.
type RecordServiceRequest struct {
	EquipmentID  common.ID               `json:"equipment_id"`
	TechnicianID common.ID               `json:"technician_id"`
	ServiceDate  time.Time               `json:"service_date"`
	ServiceType  servicelog.ServiceType  `json:"service_type"`
	Description  string                  `json:"description"`
	RefrigerantAdded     float64         `json:"refrigerant_added_lbs"`
	RefrigerantRecovered float64         `json:"refrigerant_recovered_lbs"`
	Cost                 float64         `json:"cost,omitempty"`
}

// RecordService persists a service event and applies its refrigerant movement
// to inventory.  Service on retired or decommissioned equipment is allowed:
// recovery during decommissioning is itself a regulated service event.
//
// A missing inventory row for the equipment's refrigerant is logged and
// skipped rather than failing the record; the service happened regardless of
// whether stock is tracked.
func (s *Service) RecordService(ctx context.Context, req RecordServiceRequest) (*servicelog.ServiceLog, error) {
	eq, err := s.equipment.GetByID(ctx, req.EquipmentID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEquipmentNotFound, "")
	}
	if _, err := s.technicians.GetByID(ctx, req.TechnicianID); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTechnicianNotFound, "")
	}

	log := servicelog.New(eq.ID, req.TechnicianID, req.ServiceDate, req.ServiceType, req.Description)
	log.RefrigerantAdded = req.RefrigerantAdded
	log.RefrigerantRecovered = req.RefrigerantRecovered
	log.Cost = req.Cost
	if err := log.Validate(); err != nil {
		return nil, err
	}

	if err := s.logs.Create(ctx, log); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "persist service log")
	}

	if req.RefrigerantAdded > 0 {
		if err := s.applyInventory(ctx, eq.RefrigerantType, inventory.TxServiceUse, -req.RefrigerantAdded, log.ID); err != nil {
			return nil, err
		}
	}
	if req.RefrigerantRecovered > 0 {
		if err := s.applyInventory(ctx, eq.RefrigerantType, inventory.TxRecovery, req.RefrigerantRecovered, log.ID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("service recorded",
		logging.String("equipment_id", string(eq.ID)),
		logging.String("service_log_id", string(log.ID)),
		logging.String("service_type", string(log.ServiceType)))

	return log, nil
}

// applyInventory posts one refrigerant movement to the ledger.  Crossing the
// reorder level on the way down raises a Low Inventory alert; an alert is not
// repeated while stock stays below the level.
func (s *Service) applyInventory(ctx context.Context, refrigerantType string, txType inventory.TransactionType, change float64, reference common.ID) error {
	inv, err := s.inventory.GetByRefrigerantType(ctx, refrigerantType)
	if err != nil {
		if errors.IsNotFound(err) {
			s.logger.Warn("no inventory tracked for refrigerant",
				logging.String("refrigerant_type", refrigerantType))
			return nil
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "load inventory")
	}

	wasAboveReorder := !inv.NeedsReorder()

	tx := inv.NewTransaction(txType, change, string(reference))
	if err := inv.Apply(tx); err != nil {
		return err
	}
	if err := s.inventory.RecordTransaction(ctx, tx); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "record inventory transaction")
	}
	if err := s.inventory.Update(ctx, inv); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "update inventory")
	}

	if wasAboveReorder && inv.NeedsReorder() {
		a := alert.New("", alert.TypeLowInventory, alert.SeverityWarning,
			fmt.Sprintf("Low Inventory: %s", inv.RefrigerantType),
			fmt.Sprintf("%s stock at %.1f lbs, at or below reorder level of %.1f lbs.",
				inv.RefrigerantType, inv.QuantityOnHand, inv.ReorderLevel))
		if err := s.alerts.Create(ctx, a); err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "persist low-inventory alert")
		}
		s.logger.Warn("refrigerant stock below reorder level",
			logging.String("refrigerant_type", inv.RefrigerantType),
			logging.Float64("on_hand", inv.QuantityOnHand),
			logging.Float64("reorder_level", inv.ReorderLevel))
		if err := s.events.AlertRaised(ctx, a); err != nil {
			s.logger.Error("publish alert event", logging.Err(err))
		}
		if err := s.events.InventoryLow(ctx, inv); err != nil {
			s.logger.Error("publish inventory event", logging.Err(err))
		}
	}
	return nil
}

// AttachInvoice uploads an invoice document for a recorded service event and
// links its object key to the log.
func (s *Service) AttachInvoice(ctx context.Context, serviceLogID common.ID, filename, contentType string, size int64, r io.Reader) (*servicelog.ServiceLog, error) {
	if s.invoices == nil {
		return nil, errors.New(errors.ErrCodeNotImplemented, "document storage is not configured")
	}
	log, err := s.logs.GetByID(ctx, serviceLogID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceLogNotFound, "")
	}

	key, err := s.invoices.StoreInvoice(ctx, serviceLogID, filename, contentType, size, r)
	if err != nil {
		return nil, err
	}
	log.InvoiceKey = key
	if err := s.logs.Update(ctx, log); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "update service log")
	}
	s.logger.Info("invoice attached",
		logging.String("service_log_id", string(serviceLogID)),
		logging.String("invoice_key", key))
	return log, nil
}

// InvoiceURL returns a time-limited download link for a stored invoice.
func (s *Service) InvoiceURL(ctx context.Context, serviceLogID common.ID, expiry time.Duration) (string, error) {
	if s.invoices == nil {
		return "", errors.New(errors.ErrCodeNotImplemented, "document storage is not configured")
	}
	log, err := s.logs.GetByID(ctx, serviceLogID)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeServiceLogNotFound, "")
	}
	if log.InvoiceKey == "" {
		return "", errors.New(errors.ErrCodeDocumentNotFound, "").
			WithDetailf("service_log=%s", serviceLogID)
	}
	return s.invoices.InvoiceURL(ctx, log.InvoiceKey, expiry)
}

// History returns the most recent service events for an appliance.
func (s *Service) History(ctx context.Context, equipmentID common.ID, limit int) ([]*servicelog.ServiceLog, error) {
	if _, err := s.equipment.GetByID(ctx, equipmentID); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEquipmentNotFound, "")
	}
	if limit <= 0 {
		limit = 50
	}
	list, err := s.logs.ListForEquipment(ctx, equipmentID, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "list service logs")
	}
	return list, nil
}

//Personal.AI order the ending
