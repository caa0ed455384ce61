// Package inventory defines refrigerant stock on hand and the transaction
// ledger that tracks every movement.
package inventory

import (
	"context"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// TransactionType enumerates refrigerant stock movements.
type TransactionType string

const (
	TxPurchase   TransactionType = "Purchase"
	TxServiceUse TransactionType = "Service Use"
	TxRecovery   TransactionType = "Recovery"
	TxAdjustment TransactionType = "Adjustment"
)

// ValidTransactionTypes lists every accepted movement type.
var ValidTransactionTypes = []TransactionType{TxPurchase, TxServiceUse, TxRecovery, TxAdjustment}

// RefrigerantInventory tracks stock of a single refrigerant type.
type RefrigerantInventory struct {
	ID              common.ID `json:"id"`
	RefrigerantType string    `json:"refrigerant_type"`
	QuantityOnHand  float64   `json:"quantity_on_hand_lbs"`
	ReorderLevel    float64   `json:"reorder_level_lbs"`
	CostPerLb       float64   `json:"cost_per_lb,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Transaction is one entry in the refrigerant movement ledger.  ChangeAmount
// is positive for stock in (purchase, recovery) and negative for stock out.
type Transaction struct {
	ID              common.ID       `json:"id"`
	InventoryID     common.ID       `json:"inventory_id"`
	TransactionType TransactionType `json:"transaction_type"`
	ChangeAmount    float64         `json:"change_amount_lbs"`
	Reference       string          `json:"reference,omitempty"` // service log ID, PO number, etc.
	OccurredAt      time.Time       `json:"occurred_at"`
}

// New constructs a RefrigerantInventory with a fresh ID.
func New(refrigerantType string, quantity, reorderLevel float64) *RefrigerantInventory {
	return &RefrigerantInventory{
		ID:              common.NewID(),
		RefrigerantType: refrigerantType,
		QuantityOnHand:  quantity,
		ReorderLevel:    reorderLevel,
		UpdatedAt:       time.Now().UTC(),
	}
}

// Validate checks the invariants every persisted inventory row must satisfy.
func (inv *RefrigerantInventory) Validate() error {
	if inv.RefrigerantType == "" {
		return errors.InvalidParam("refrigerant type is required")
	}
	if inv.QuantityOnHand < 0 {
		return errors.InvalidParam("quantity on hand must be non-negative")
	}
	if inv.ReorderLevel < 0 {
		return errors.InvalidParam("reorder level must be non-negative")
	}
	return nil
}

// NeedsReorder reports whether stock has fallen to or below the reorder level.
func (inv *RefrigerantInventory) NeedsReorder() bool {
	return inv.QuantityOnHand <= inv.ReorderLevel
}

// Apply adjusts the stock level by the transaction amount.  Drawing more than
// the available stock is rejected.
func (inv *RefrigerantInventory) Apply(tx *Transaction) error {
	valid := false
	for _, tt := range ValidTransactionTypes {
		if tx.TransactionType == tt {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New(errors.ErrCodeTransactionTypeInvalid, "").
			WithDetail(string(tx.TransactionType))
	}
	next := inv.QuantityOnHand + tx.ChangeAmount
	if next < 0 {
		return errors.New(errors.ErrCodeInventoryInsufficient, "").
			WithDetailf("on_hand=%g requested=%g", inv.QuantityOnHand, -tx.ChangeAmount)
	}
	inv.QuantityOnHand = next
	inv.UpdatedAt = time.Now().UTC()
	return nil
}

// NewTransaction constructs a ledger entry for the inventory row.
func (inv *RefrigerantInventory) NewTransaction(txType TransactionType, change float64, reference string) *Transaction {
	return &Transaction{
		ID:              common.NewID(),
		InventoryID:     inv.ID,
		TransactionType: txType,
		ChangeAmount:    change,
		Reference:       reference,
		OccurredAt:      time.Now().UTC(),
	}
}

// Repository is the persistence contract for inventory and its ledger.
type Repository interface {
	Create(ctx context.Context, inv *RefrigerantInventory) error
	GetByID(ctx context.Context, id common.ID) (*RefrigerantInventory, error)
	GetByRefrigerantType(ctx context.Context, refrigerantType string) (*RefrigerantInventory, error)
	Update(ctx context.Context, inv *RefrigerantInventory) error
	List(ctx context.Context) ([]*RefrigerantInventory, error)
	ListBelowReorderLevel(ctx context.Context) ([]*RefrigerantInventory, error)
	RecordTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, inventoryID common.ID, limit int) ([]*Transaction, error)
}

//Personal.AI order the ending
