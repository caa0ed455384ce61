package repositories

import (
	"context"
	"database/sql"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inspection"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

const inspectionColumns = `
	id, equipment_id, technician_id, inspection_date, method,
	current_charge_lbs, charge_added_lbs, calculated_leak_rate, compliant,
	notes, next_inspection_date, created_at`

type postgresInspectionRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewInspectionRepo constructs the PostgreSQL inspection repository.
func NewInspectionRepo(conn *postgres.Connection, log logging.Logger, opts ...Option) inspection.Repository {
	return &postgresInspectionRepo{
		conn:     conn,
		log:      log,
		executor: newExecutor(conn, "inspection", opts),
	}
}

func (r *postgresInspectionRepo) Create(ctx context.Context, ins *inspection.LeakInspection) error {
	query := `
		INSERT INTO leak_inspections (` + inspectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.executor.ExecContext(ctx, query,
		ins.ID, ins.EquipmentID, ins.TechnicianID, ins.InspectionDate, ins.Method,
		ins.CurrentCharge, ins.ChargeAdded, nullFloat(ins.CalculatedLeakRate), ins.Compliant,
		ins.Notes, ins.NextInspectionDate, ins.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create inspection")
	}
	return nil
}

func (r *postgresInspectionRepo) GetByID(ctx context.Context, id common.ID) (*inspection.LeakInspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM leak_inspections WHERE id = $1`
	ins, err := scanInspection(r.executor.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeInspectionNotFound, "").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load inspection")
	}
	return ins, nil
}

func (r *postgresInspectionRepo) GetLatestForEquipment(ctx context.Context, equipmentID common.ID) (*inspection.LeakInspection, error) {
	query := `
		SELECT ` + inspectionColumns + `
		FROM leak_inspections
		WHERE equipment_id = $1
		ORDER BY inspection_date DESC
		LIMIT 1
	`
	ins, err := scanInspection(r.executor.QueryRowContext(ctx, query, equipmentID))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeInspectionNotFound, "").
			WithDetailf("equipment=%s", equipmentID)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load latest inspection")
	}
	return ins, nil
}

func (r *postgresInspectionRepo) ListForEquipment(ctx context.Context, equipmentID common.ID, limit int) ([]*inspection.LeakInspection, error) {
	query := `
		SELECT ` + inspectionColumns + `
		FROM leak_inspections
		WHERE equipment_id = $1
		ORDER BY inspection_date DESC
		LIMIT $2
	`
	rows, err := r.executor.QueryContext(ctx, query, equipmentID, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list inspections")
	}
	defer rows.Close()

	var items []*inspection.LeakInspection
	for rows.Next() {
		ins, err := scanInspection(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan inspection")
		}
		items = append(items, ins)
	}
	return items, rows.Err()
}

func (r *postgresInspectionRepo) List(ctx context.Context, page common.Pagination) (common.PaginatedResult[*inspection.LeakInspection], error) {
	var empty common.PaginatedResult[*inspection.LeakInspection]
	if err := page.Validate(); err != nil {
		return empty, err
	}

	var total int64
	if err := r.executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM leak_inspections`).Scan(&total); err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count inspections")
	}

	query := `
		SELECT ` + inspectionColumns + `
		FROM leak_inspections
		ORDER BY inspection_date DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.executor.QueryContext(ctx, query, page.PageSize, page.Offset())
	if err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list inspections")
	}
	defer rows.Close()

	var items []*inspection.LeakInspection
	for rows.Next() {
		ins, err := scanInspection(rows)
		if err != nil {
			return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan inspection")
		}
		items = append(items, ins)
	}
	if err := rows.Err(); err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate inspections")
	}
	return common.NewPaginatedResult(items, total, page), nil
}

func (r *postgresInspectionRepo) CountForEquipment(ctx context.Context, equipmentID common.ID) (int64, error) {
	var count int64
	err := r.executor.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leak_inspections WHERE equipment_id = $1`, equipmentID).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count inspections")
	}
	return count, nil
}

func scanInspection(s scanner) (*inspection.LeakInspection, error) {
	var ins inspection.LeakInspection
	var rate sql.NullFloat64
	var next sql.NullTime
	err := s.Scan(
		&ins.ID, &ins.EquipmentID, &ins.TechnicianID, &ins.InspectionDate, &ins.Method,
		&ins.CurrentCharge, &ins.ChargeAdded, &rate, &ins.Compliant,
		&ins.Notes, &next, &ins.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rate.Valid {
		v := rate.Float64
		ins.CalculatedLeakRate = &v
	}
	if next.Valid {
		t := next.Time
		ins.NextInspectionDate = &t
	}
	return &ins, nil
}

//Personal.AI order the ending
