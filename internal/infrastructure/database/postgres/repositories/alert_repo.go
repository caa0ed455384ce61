package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

const alertColumns = `
	id, equipment_id, alert_type, severity, title, message, alert_date,
	status, created_date, resolved_date, resolved_by, resolution_notes`

type postgresAlertRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewAlertRepo constructs the PostgreSQL compliance alert repository.
func NewAlertRepo(conn *postgres.Connection, log logging.Logger, opts ...Option) alert.Repository {
	return &postgresAlertRepo{
		conn:     conn,
		log:      log,
		executor: newExecutor(conn, "alert", opts),
	}
}

func (r *postgresAlertRepo) Create(ctx context.Context, a *alert.ComplianceAlert) error {
	query := `
		INSERT INTO compliance_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.executor.ExecContext(ctx, query,
		a.ID, a.EquipmentID, a.AlertType, a.Severity, a.Title, a.Message, a.AlertDate,
		a.Status, a.CreatedDate, a.ResolvedDate, a.ResolvedBy, a.ResolutionNotes,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create alert")
	}
	return nil
}

func (r *postgresAlertRepo) GetByID(ctx context.Context, id common.ID) (*alert.ComplianceAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM compliance_alerts WHERE id = $1`
	a, err := scanAlert(r.executor.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeAlertNotFound, "").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load alert")
	}
	return a, nil
}

func (r *postgresAlertRepo) Update(ctx context.Context, a *alert.ComplianceAlert) error {
	query := `
		UPDATE compliance_alerts SET
			status = $2, resolved_date = $3, resolved_by = $4, resolution_notes = $5
		WHERE id = $1
	`
	res, err := r.executor.ExecContext(ctx, query,
		a.ID, a.Status, a.ResolvedDate, a.ResolvedBy, a.ResolutionNotes,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update alert")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New(errors.ErrCodeAlertNotFound, "").WithDetail(string(a.ID))
	}
	return nil
}

func (r *postgresAlertRepo) List(ctx context.Context, filter alert.ListFilter, page common.Pagination) (common.PaginatedResult[*alert.ComplianceAlert], error) {
	var empty common.PaginatedResult[*alert.ComplianceAlert]
	if err := page.Validate(); err != nil {
		return empty, err
	}

	conditions := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	if filter.EquipmentID != "" {
		conditions = append(conditions, fmt.Sprintf("equipment_id = $%d", idx))
		args = append(args, filter.EquipmentID)
		idx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", idx))
		args = append(args, *filter.Status)
		idx++
	}
	if filter.Severity != nil {
		conditions = append(conditions, fmt.Sprintf("severity = $%d", idx))
		args = append(args, *filter.Severity)
		idx++
	}
	if filter.AlertType != nil {
		conditions = append(conditions, fmt.Sprintf("alert_type = $%d", idx))
		args = append(args, *filter.AlertType)
		idx++
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM compliance_alerts WHERE ` + where
	if err := r.executor.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count alerts")
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM compliance_alerts WHERE %s ORDER BY created_date DESC LIMIT $%d OFFSET $%d`,
		alertColumns, where, idx, idx+1)
	args = append(args, page.PageSize, page.Offset())

	rows, err := r.executor.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list alerts")
	}
	defer rows.Close()

	var items []*alert.ComplianceAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan alert")
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate alerts")
	}
	return common.NewPaginatedResult(items, total, page), nil
}

func (r *postgresAlertRepo) HasOpenAlert(ctx context.Context, equipmentID common.ID, alertType alert.AlertType) (bool, error) {
	var exists bool
	err := r.executor.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM compliance_alerts
			WHERE equipment_id = $1 AND alert_type = $2 AND status = $3
		)`, equipmentID, alertType, alert.StatusOpen).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to check open alerts")
	}
	return exists, nil
}

func (r *postgresAlertRepo) CountOpenBySeverity(ctx context.Context) (map[alert.Severity]int64, error) {
	rows, err := r.executor.QueryContext(ctx, `
		SELECT severity, COUNT(*) FROM compliance_alerts
		WHERE status = $1 GROUP BY severity`, alert.StatusOpen)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count open alerts")
	}
	defer rows.Close()

	counts := make(map[alert.Severity]int64)
	for rows.Next() {
		var severity alert.Severity
		var count int64
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan severity count")
		}
		counts[severity] = count
	}
	return counts, rows.Err()
}

func scanAlert(s scanner) (*alert.ComplianceAlert, error) {
	var a alert.ComplianceAlert
	var resolved sql.NullTime
	err := s.Scan(
		&a.ID, &a.EquipmentID, &a.AlertType, &a.Severity, &a.Title, &a.Message, &a.AlertDate,
		&a.Status, &a.CreatedDate, &resolved, &a.ResolvedBy, &a.ResolutionNotes,
	)
	if err != nil {
		return nil, err
	}
	if resolved.Valid {
		t := resolved.Time
		a.ResolvedDate = &t
	}
	return &a, nil
}

//Personal.AI order the ending
