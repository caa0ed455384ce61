package repositories

import (
	"context"
	"database/sql"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/servicelog"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

const serviceLogColumns = `
	id, equipment_id, technician_id, service_date, service_type, description,
	refrigerant_added_lbs, refrigerant_recovered_lbs, cost, invoice_key, created_at`

type postgresServiceLogRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewServiceLogRepo constructs the PostgreSQL service log repository.
func NewServiceLogRepo(conn *postgres.Connection, log logging.Logger, opts ...Option) servicelog.Repository {
	return &postgresServiceLogRepo{
		conn:     conn,
		log:      log,
		executor: newExecutor(conn, "servicelog", opts),
	}
}

func (r *postgresServiceLogRepo) Create(ctx context.Context, log *servicelog.ServiceLog) error {
	query := `
		INSERT INTO service_logs (` + serviceLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.executor.ExecContext(ctx, query,
		log.ID, log.EquipmentID, log.TechnicianID, log.ServiceDate, log.ServiceType, log.Description,
		log.RefrigerantAdded, log.RefrigerantRecovered, log.Cost, log.InvoiceKey, log.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create service log")
	}
	return nil
}

func (r *postgresServiceLogRepo) GetByID(ctx context.Context, id common.ID) (*servicelog.ServiceLog, error) {
	query := `SELECT ` + serviceLogColumns + ` FROM service_logs WHERE id = $1`
	log, err := scanServiceLog(r.executor.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeServiceLogNotFound, "").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load service log")
	}
	return log, nil
}

func (r *postgresServiceLogRepo) Update(ctx context.Context, log *servicelog.ServiceLog) error {
	query := `
		UPDATE service_logs SET
			service_date = $2, service_type = $3, description = $4,
			refrigerant_added_lbs = $5, refrigerant_recovered_lbs = $6,
			cost = $7, invoice_key = $8
		WHERE id = $1
	`
	res, err := r.executor.ExecContext(ctx, query,
		log.ID, log.ServiceDate, log.ServiceType, log.Description,
		log.RefrigerantAdded, log.RefrigerantRecovered, log.Cost, log.InvoiceKey,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update service log")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New(errors.ErrCodeServiceLogNotFound, "").WithDetail(string(log.ID))
	}
	return nil
}

func (r *postgresServiceLogRepo) ListForEquipment(ctx context.Context, equipmentID common.ID, limit int) ([]*servicelog.ServiceLog, error) {
	query := `
		SELECT ` + serviceLogColumns + `
		FROM service_logs
		WHERE equipment_id = $1
		ORDER BY service_date DESC
		LIMIT $2
	`
	rows, err := r.executor.QueryContext(ctx, query, equipmentID, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list service logs")
	}
	defer rows.Close()

	var items []*servicelog.ServiceLog
	for rows.Next() {
		log, err := scanServiceLog(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan service log")
		}
		items = append(items, log)
	}
	return items, rows.Err()
}

func (r *postgresServiceLogRepo) List(ctx context.Context, page common.Pagination) (common.PaginatedResult[*servicelog.ServiceLog], error) {
	var empty common.PaginatedResult[*servicelog.ServiceLog]
	if err := page.Validate(); err != nil {
		return empty, err
	}

	var total int64
	if err := r.executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_logs`).Scan(&total); err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count service logs")
	}

	query := `
		SELECT ` + serviceLogColumns + `
		FROM service_logs
		ORDER BY service_date DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.executor.QueryContext(ctx, query, page.PageSize, page.Offset())
	if err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list service logs")
	}
	defer rows.Close()

	var items []*servicelog.ServiceLog
	for rows.Next() {
		log, err := scanServiceLog(rows)
		if err != nil {
			return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan service log")
		}
		items = append(items, log)
	}
	if err := rows.Err(); err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate service logs")
	}
	return common.NewPaginatedResult(items, total, page), nil
}

func (r *postgresServiceLogRepo) CountForEquipment(ctx context.Context, equipmentID common.ID) (int64, error) {
	var count int64
	err := r.executor.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM service_logs WHERE equipment_id = $1`, equipmentID).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count service logs")
	}
	return count, nil
}

func (r *postgresServiceLogRepo) UsageByRefrigerant(ctx context.Context, rng common.DateRange) ([]servicelog.UsageTotals, error) {
	query := `
		SELECT e.refrigerant_type,
		       COALESCE(SUM(s.refrigerant_added_lbs), 0),
		       COALESCE(SUM(s.refrigerant_recovered_lbs), 0),
		       COUNT(*)
		FROM service_logs s
		JOIN equipment e ON e.id = s.equipment_id
		WHERE ($1::timestamptz IS NULL OR s.service_date >= $1)
		  AND ($2::timestamptz IS NULL OR s.service_date <= $2)
		GROUP BY e.refrigerant_type
		ORDER BY e.refrigerant_type
	`
	rows, err := r.executor.QueryContext(ctx, query, nullTime(rng.From), nullTime(rng.To))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to aggregate refrigerant usage")
	}
	defer rows.Close()

	var totals []servicelog.UsageTotals
	for rows.Next() {
		var t servicelog.UsageTotals
		if err := rows.Scan(&t.RefrigerantType, &t.TotalAdded, &t.TotalRecovered, &t.ServiceCount); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan usage totals")
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func scanServiceLog(s scanner) (*servicelog.ServiceLog, error) {
	var log servicelog.ServiceLog
	err := s.Scan(
		&log.ID, &log.EquipmentID, &log.TechnicianID, &log.ServiceDate, &log.ServiceType, &log.Description,
		&log.RefrigerantAdded, &log.RefrigerantRecovered, &log.Cost, &log.InvoiceKey, &log.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

//Personal.AI order the ending
