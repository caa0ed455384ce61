package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

const equipmentColumns = `
	id, name, equipment_type, location, refrigerant_type, full_charge_lbs,
	install_date, leak_rate_threshold, inspection_frequency_days, status,
	next_inspection_date, created_at, updated_at`

type postgresEquipmentRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewEquipmentRepo constructs the PostgreSQL equipment repository.
func NewEquipmentRepo(conn *postgres.Connection, log logging.Logger, opts ...Option) equipment.Repository {
	return &postgresEquipmentRepo{
		conn:     conn,
		log:      log,
		executor: newExecutor(conn, "equipment", opts),
	}
}

func (r *postgresEquipmentRepo) Create(ctx context.Context, eq *equipment.Equipment) error {
	query := `
		INSERT INTO equipment (` + equipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.executor.ExecContext(ctx, query,
		eq.ID, eq.Name, eq.EquipmentType, eq.Location, eq.RefrigerantType, eq.FullCharge,
		nullTime(eq.InstallDate), eq.LeakRateThreshold, eq.InspectionFrequencyDays, eq.Status,
		eq.NextInspectionDate, eq.CreatedAt, eq.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return errors.Wrap(err, errors.ErrCodeEquipmentAlreadyExists, "equipment already exists")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create equipment")
	}
	return nil
}

func (r *postgresEquipmentRepo) GetByID(ctx context.Context, id common.ID) (*equipment.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	eq, err := scanEquipment(r.executor.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeEquipmentNotFound, "").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load equipment")
	}
	return eq, nil
}

func (r *postgresEquipmentRepo) Update(ctx context.Context, eq *equipment.Equipment) error {
	query := `
		UPDATE equipment SET
			name = $2, equipment_type = $3, location = $4, refrigerant_type = $5,
			full_charge_lbs = $6, install_date = $7, leak_rate_threshold = $8,
			inspection_frequency_days = $9, status = $10, next_inspection_date = $11,
			updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.executor.ExecContext(ctx, query,
		eq.ID, eq.Name, eq.EquipmentType, eq.Location, eq.RefrigerantType,
		eq.FullCharge, nullTime(eq.InstallDate), eq.LeakRateThreshold,
		eq.InspectionFrequencyDays, eq.Status, eq.NextInspectionDate,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update equipment")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New(errors.ErrCodeEquipmentNotFound, "").WithDetail(string(eq.ID))
	}
	return nil
}

func (r *postgresEquipmentRepo) Delete(ctx context.Context, id common.ID) error {
	res, err := r.executor.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete equipment")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New(errors.ErrCodeEquipmentNotFound, "").WithDetail(string(id))
	}
	return nil
}

func (r *postgresEquipmentRepo) List(ctx context.Context, filter equipment.ListFilter, page common.Pagination) (common.PaginatedResult[*equipment.Equipment], error) {
	var empty common.PaginatedResult[*equipment.Equipment]
	if err := page.Validate(); err != nil {
		return empty, err
	}

	conditions := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", idx))
		args = append(args, *filter.Status)
		idx++
	}
	if filter.RefrigerantType != "" {
		conditions = append(conditions, fmt.Sprintf("refrigerant_type = $%d", idx))
		args = append(args, filter.RefrigerantType)
		idx++
	}
	if filter.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location = $%d", idx))
		args = append(args, filter.Location)
		idx++
	}
	if filter.NextInspectionBefore != nil {
		conditions = append(conditions, fmt.Sprintf("next_inspection_date IS NOT NULL AND next_inspection_date <= $%d", idx))
		args = append(args, *filter.NextInspectionBefore)
		idx++
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM equipment WHERE ` + where
	if err := r.executor.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count equipment")
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM equipment WHERE %s ORDER BY name LIMIT $%d OFFSET $%d`,
		equipmentColumns, where, idx, idx+1)
	args = append(args, page.PageSize, page.Offset())

	rows, err := r.executor.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list equipment")
	}
	defer rows.Close()

	var items []*equipment.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan equipment")
		}
		items = append(items, eq)
	}
	if err := rows.Err(); err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate equipment")
	}
	return common.NewPaginatedResult(items, total, page), nil
}

func (r *postgresEquipmentRepo) ListActive(ctx context.Context) ([]*equipment.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE status = $1 ORDER BY name`
	rows, err := r.executor.QueryContext(ctx, query, equipment.StatusActive)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list active equipment")
	}
	defer rows.Close()

	var items []*equipment.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan equipment")
		}
		items = append(items, eq)
	}
	return items, rows.Err()
}

func (r *postgresEquipmentRepo) CountByStatus(ctx context.Context) (map[equipment.Status]int64, error) {
	rows, err := r.executor.QueryContext(ctx, `SELECT status, COUNT(*) FROM equipment GROUP BY status`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count equipment by status")
	}
	defer rows.Close()

	counts := make(map[equipment.Status]int64)
	for rows.Next() {
		var status equipment.Status
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan status count")
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanEquipment(s scanner) (*equipment.Equipment, error) {
	var eq equipment.Equipment
	var installDate, nextInspection sql.NullTime
	err := s.Scan(
		&eq.ID, &eq.Name, &eq.EquipmentType, &eq.Location, &eq.RefrigerantType, &eq.FullCharge,
		&installDate, &eq.LeakRateThreshold, &eq.InspectionFrequencyDays, &eq.Status,
		&nextInspection, &eq.CreatedAt, &eq.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if installDate.Valid {
		eq.InstallDate = installDate.Time
	}
	if nextInspection.Valid {
		t := nextInspection.Time
		eq.NextInspectionDate = &t
	}
	return &eq, nil
}

//Personal.AI order the ending
