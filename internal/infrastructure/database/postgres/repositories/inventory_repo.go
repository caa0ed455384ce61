package repositories

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inventory"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

const inventoryColumns = `
	id, refrigerant_type, quantity_on_hand_lbs, reorder_level_lbs, cost_per_lb, updated_at`

const transactionColumns = `
	id, inventory_id, transaction_type, change_amount_lbs, reference, occurred_at`

type postgresInventoryRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewInventoryRepo constructs the PostgreSQL refrigerant inventory repository.
func NewInventoryRepo(conn *postgres.Connection, log logging.Logger, opts ...Option) inventory.Repository {
	return &postgresInventoryRepo{
		conn:     conn,
		log:      log,
		executor: newExecutor(conn, "inventory", opts),
	}
}

func (r *postgresInventoryRepo) Create(ctx context.Context, inv *inventory.RefrigerantInventory) error {
	query := `
		INSERT INTO refrigerant_inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.executor.ExecContext(ctx, query,
		inv.ID, inv.RefrigerantType, inv.QuantityOnHand, inv.ReorderLevel, inv.CostPerLb, inv.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return errors.Conflict("inventory already tracked for refrigerant type").
				WithDetail(inv.RefrigerantType)
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create inventory")
	}
	return nil
}

func (r *postgresInventoryRepo) GetByID(ctx context.Context, id common.ID) (*inventory.RefrigerantInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM refrigerant_inventory WHERE id = $1`
	inv, err := scanInventory(r.executor.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeInventoryNotFound, "").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load inventory")
	}
	return inv, nil
}

func (r *postgresInventoryRepo) GetByRefrigerantType(ctx context.Context, refrigerantType string) (*inventory.RefrigerantInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM refrigerant_inventory WHERE refrigerant_type = $1`
	inv, err := scanInventory(r.executor.QueryRowContext(ctx, query, refrigerantType))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeInventoryNotFound, "").WithDetail(refrigerantType)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load inventory")
	}
	return inv, nil
}

func (r *postgresInventoryRepo) Update(ctx context.Context, inv *inventory.RefrigerantInventory) error {
	query := `
		UPDATE refrigerant_inventory SET
			quantity_on_hand_lbs = $2, reorder_level_lbs = $3, cost_per_lb = $4, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.executor.ExecContext(ctx, query,
		inv.ID, inv.QuantityOnHand, inv.ReorderLevel, inv.CostPerLb,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update inventory")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New(errors.ErrCodeInventoryNotFound, "").WithDetail(string(inv.ID))
	}
	return nil
}

func (r *postgresInventoryRepo) List(ctx context.Context) ([]*inventory.RefrigerantInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM refrigerant_inventory ORDER BY refrigerant_type`
	return r.queryInventories(ctx, query)
}

func (r *postgresInventoryRepo) ListBelowReorderLevel(ctx context.Context) ([]*inventory.RefrigerantInventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM refrigerant_inventory
		WHERE quantity_on_hand_lbs <= reorder_level_lbs
		ORDER BY refrigerant_type
	`
	return r.queryInventories(ctx, query)
}

func (r *postgresInventoryRepo) queryInventories(ctx context.Context, query string, args ...interface{}) ([]*inventory.RefrigerantInventory, error) {
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list inventory")
	}
	defer rows.Close()

	var items []*inventory.RefrigerantInventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan inventory")
		}
		items = append(items, inv)
	}
	return items, rows.Err()
}

func (r *postgresInventoryRepo) RecordTransaction(ctx context.Context, tx *inventory.Transaction) error {
	query := `
		INSERT INTO inventory_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.executor.ExecContext(ctx, query,
		tx.ID, tx.InventoryID, tx.TransactionType, tx.ChangeAmount, tx.Reference, tx.OccurredAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to record inventory transaction")
	}
	return nil
}

func (r *postgresInventoryRepo) ListTransactions(ctx context.Context, inventoryID common.ID, limit int) ([]*inventory.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM inventory_transactions
		WHERE inventory_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`
	rows, err := r.executor.QueryContext(ctx, query, inventoryID, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list inventory transactions")
	}
	defer rows.Close()

	var items []*inventory.Transaction
	for rows.Next() {
		var tx inventory.Transaction
		if err := rows.Scan(&tx.ID, &tx.InventoryID, &tx.TransactionType, &tx.ChangeAmount, &tx.Reference, &tx.OccurredAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan inventory transaction")
		}
		items = append(items, &tx)
	}
	return items, rows.Err()
}

func scanInventory(s scanner) (*inventory.RefrigerantInventory, error) {
	var inv inventory.RefrigerantInventory
	err := s.Scan(
		&inv.ID, &inv.RefrigerantType, &inv.QuantityOnHand, &inv.ReorderLevel, &inv.CostPerLb, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

//Personal.AI order the ending
