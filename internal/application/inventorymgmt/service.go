// Package inventorymgmt implements refrigerant stock management: purchases,
// manual adjustments, and the transaction ledger.
package inventorymgmt

import (
	"context"
	"fmt"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inventory"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// Service manages refrigerant inventory rows and their ledger.  Stock
// movements driven by service events live in the servicing package; this
// service covers direct stock operations (purchases, audits, corrections).
type Service struct {
	inventory inventory.Repository
	alerts    alert.Repository
	logger    logging.Logger
}

// NewService constructs the inventory Service.
func NewService(inventoryRepo inventory.Repository, alertRepo alert.Repository, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		inventory: inventoryRepo,
		alerts:    alertRepo,
		logger:    logger.Named("inventory"),
	}
}

// Create registers stock tracking for a refrigerant type.  One row per type.
func (s *Service) Create(ctx context.Context, refrigerantType string, quantity, reorderLevel, costPerLb float64) (*inventory.RefrigerantInventory, error) {
	if existing, err := s.inventory.GetByRefrigerantType(ctx, refrigerantType); err == nil && existing != nil {
		return nil, errors.Conflict("inventory already tracked for refrigerant type").
			WithDetail(refrigerantType)
	} else if err != nil && !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "check existing inventory")
	}

	inv := inventory.New(refrigerantType, quantity, reorderLevel)
	inv.CostPerLb = costPerLb
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if err := s.inventory.Create(ctx, inv); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "create inventory")
	}
	s.logger.Info("inventory tracking started",
		logging.String("refrigerant_type", refrigerantType),
		logging.Float64("quantity", quantity))
	return inv, nil
}

// Get returns one inventory row.
func (s *Service) Get(ctx context.Context, id common.ID) (*inventory.RefrigerantInventory, error) {
	inv, err := s.inventory.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInventoryNotFound, "")
	}
	return inv, nil
}

// List returns all tracked inventory rows.
func (s *Service) List(ctx context.Context) ([]*inventory.RefrigerantInventory, error) {
	list, err := s.inventory.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "list inventory")
	}
	return list, nil
}

// AdjustRequest carries a direct stock movement.
type AdjustRequest struct {
	InventoryID     common.ID                 `json:"inventory_id"`
	TransactionType inventory.TransactionType `json:"transaction_type"`
	ChangeAmount    float64                   `json:"change_amount_lbs"`
	Reference       string                    `json:"reference,omitempty"`
}

// Adjust posts a purchase, adjustment, or recovery directly to the ledger.
// Service Use movements belong to the servicing workflow and are rejected
// here so every draw stays traceable to a service log.
func (s *Service) Adjust(ctx context.Context, req AdjustRequest) (*inventory.RefrigerantInventory, error) {
	if req.TransactionType == inventory.TxServiceUse {
		return nil, errors.New(errors.ErrCodeTransactionTypeInvalid,
			"service use must be recorded through a service log")
	}

	inv, err := s.inventory.GetByID(ctx, req.InventoryID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInventoryNotFound, "")
	}

	wasAboveReorder := !inv.NeedsReorder()

	tx := inv.NewTransaction(req.TransactionType, req.ChangeAmount, req.Reference)
	if err := inv.Apply(tx); err != nil {
		return nil, err
	}
	if err := s.inventory.RecordTransaction(ctx, tx); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "record transaction")
	}
	if err := s.inventory.Update(ctx, inv); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "update inventory")
	}

	if wasAboveReorder && inv.NeedsReorder() {
		a := alert.New("", alert.TypeLowInventory, alert.SeverityWarning,
			fmt.Sprintf("Low Inventory: %s", inv.RefrigerantType),
			fmt.Sprintf("%s stock at %.1f lbs, at or below reorder level of %.1f lbs.",
				inv.RefrigerantType, inv.QuantityOnHand, inv.ReorderLevel))
		if err := s.alerts.Create(ctx, a); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "persist low-inventory alert")
		}
		s.logger.Warn("refrigerant stock below reorder level",
			logging.String("refrigerant_type", inv.RefrigerantType),
			logging.Float64("on_hand", inv.QuantityOnHand))
	}

	s.logger.Info("inventory adjusted",
		logging.String("inventory_id", string(inv.ID)),
		logging.String("transaction_type", string(req.TransactionType)),
		logging.Float64("change", req.ChangeAmount))
	return inv, nil
}

// Transactions returns the most recent ledger entries for an inventory row.
func (s *Service) Transactions(ctx context.Context, inventoryID common.ID, limit int) ([]*inventory.Transaction, error) {
	if _, err := s.inventory.GetByID(ctx, inventoryID); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInventoryNotFound, "")
	}
	if limit <= 0 {
		limit = 50
	}
	txs, err := s.inventory.ListTransactions(ctx, inventoryID, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "list transactions")
	}
	return txs, nil
}

//Personal.AI order the ending
