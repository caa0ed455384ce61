package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/technician"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

const technicianColumns = `
	id, name, certification_number, certification_type, certification_expiry,
	email, phone, created_at, updated_at`

type postgresTechnicianRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewTechnicianRepo constructs the PostgreSQL technician repository.
func NewTechnicianRepo(conn *postgres.Connection, log logging.Logger, opts ...Option) technician.Repository {
	return &postgresTechnicianRepo{
		conn:     conn,
		log:      log,
		executor: newExecutor(conn, "technician", opts),
	}
}

func (r *postgresTechnicianRepo) Create(ctx context.Context, tech *technician.Technician) error {
	query := `
		INSERT INTO technicians (` + technicianColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.executor.ExecContext(ctx, query,
		tech.ID, tech.Name, tech.CertificationNumber, tech.CertificationType,
		nullTime(tech.CertificationExpiry), tech.Email, tech.Phone,
		tech.CreatedAt, tech.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return errors.Wrap(err, errors.ErrCodeTechnicianAlreadyExists, "certification number already registered")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create technician")
	}
	return nil
}

func (r *postgresTechnicianRepo) GetByID(ctx context.Context, id common.ID) (*technician.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians WHERE id = $1`
	tech, err := scanTechnician(r.executor.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeTechnicianNotFound, "").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load technician")
	}
	return tech, nil
}

func (r *postgresTechnicianRepo) GetByCertificationNumber(ctx context.Context, certNumber string) (*technician.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians WHERE certification_number = $1`
	tech, err := scanTechnician(r.executor.QueryRowContext(ctx, query, certNumber))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeTechnicianNotFound, "").WithDetail(certNumber)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load technician")
	}
	return tech, nil
}

func (r *postgresTechnicianRepo) Update(ctx context.Context, tech *technician.Technician) error {
	query := `
		UPDATE technicians SET
			name = $2, certification_number = $3, certification_type = $4,
			certification_expiry = $5, email = $6, phone = $7, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.executor.ExecContext(ctx, query,
		tech.ID, tech.Name, tech.CertificationNumber, tech.CertificationType,
		nullTime(tech.CertificationExpiry), tech.Email, tech.Phone,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update technician")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New(errors.ErrCodeTechnicianNotFound, "").WithDetail(string(tech.ID))
	}
	return nil
}

func (r *postgresTechnicianRepo) Delete(ctx context.Context, id common.ID) error {
	res, err := r.executor.ExecContext(ctx, `DELETE FROM technicians WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete technician")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New(errors.ErrCodeTechnicianNotFound, "").WithDetail(string(id))
	}
	return nil
}

func (r *postgresTechnicianRepo) List(ctx context.Context, page common.Pagination) (common.PaginatedResult[*technician.Technician], error) {
	var empty common.PaginatedResult[*technician.Technician]
	if err := page.Validate(); err != nil {
		return empty, err
	}

	var total int64
	if err := r.executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM technicians`).Scan(&total); err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count technicians")
	}

	query := `SELECT ` + technicianColumns + ` FROM technicians ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.executor.QueryContext(ctx, query, page.PageSize, page.Offset())
	if err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list technicians")
	}
	defer rows.Close()

	var items []*technician.Technician
	for rows.Next() {
		tech, err := scanTechnician(rows)
		if err != nil {
			return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan technician")
		}
		items = append(items, tech)
	}
	if err := rows.Err(); err != nil {
		return empty, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate technicians")
	}
	return common.NewPaginatedResult(items, total, page), nil
}

func (r *postgresTechnicianRepo) ListExpiringCertifications(ctx context.Context, cutoff time.Time) ([]*technician.Technician, error) {
	query := `
		SELECT ` + technicianColumns + `
		FROM technicians
		WHERE certification_expiry IS NOT NULL AND certification_expiry <= $1
		ORDER BY certification_expiry
	`
	rows, err := r.executor.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list expiring certifications")
	}
	defer rows.Close()

	var items []*technician.Technician
	for rows.Next() {
		tech, err := scanTechnician(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan technician")
		}
		items = append(items, tech)
	}
	return items, rows.Err()
}

func scanTechnician(s scanner) (*technician.Technician, error) {
	var tech technician.Technician
	var expiry sql.NullTime
	err := s.Scan(
		&tech.ID, &tech.Name, &tech.CertificationNumber, &tech.CertificationType,
		&expiry, &tech.Email, &tech.Phone, &tech.CreatedAt, &tech.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if expiry.Valid {
		tech.CertificationExpiry = expiry.Time
	}
	return &tech, nil
}

//Personal.AI order the ending
