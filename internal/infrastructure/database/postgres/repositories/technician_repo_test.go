package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/technician"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

type TechnicianRepoTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	db   *sql.DB
	repo technician.Repository
}

func (s *TechnicianRepoTestSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	s.NoError(err)

	log := logging.NewNopLogger()
	conn := postgres.NewConnectionWithDB(s.db, log)
	s.repo = NewTechnicianRepo(conn, log)
}

func (s *TechnicianRepoTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *TechnicianRepoTestSuite) TestCreate_DuplicateCertNumber() {
	tech := technician.New("Jane Doe", "EPA-608-001", technician.CertUniversal,
		time.Now().AddDate(1, 0, 0))

	s.mock.ExpectExec(`INSERT INTO technicians`).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	err := s.repo.Create(context.Background(), tech)
	s.True(errors.IsCode(err, errors.ErrCodeTechnicianAlreadyExists))
}

func (s *TechnicianRepoTestSuite) TestGetByCertificationNumber() {
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "name", "certification_number", "certification_type", "certification_expiry",
		"email", "phone", "created_at", "updated_at",
	}).AddRow("tech-1", "Jane Doe", "EPA-608-001", "Universal", now.AddDate(1, 0, 0),
		"jane@example.com", "", now, now)

	s.mock.ExpectQuery(`SELECT (.+) FROM technicians WHERE certification_number`).
		WithArgs("EPA-608-001").
		WillReturnRows(rows)

	tech, err := s.repo.GetByCertificationNumber(context.Background(), "EPA-608-001")
	s.NoError(err)
	s.Equal(common.ID("tech-1"), tech.ID)
	s.Equal(technician.CertUniversal, tech.CertificationType)
}

func (s *TechnicianRepoTestSuite) TestGetByID_NotFound() {
	s.mock.ExpectQuery(`SELECT (.+) FROM technicians WHERE id`).
		WillReturnError(sql.ErrNoRows)

	_, err := s.repo.GetByID(context.Background(), common.NewID())
	s.True(errors.IsNotFound(err))
}

func (s *TechnicianRepoTestSuite) TestListExpiringCertifications() {
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 1, 0)
	rows := sqlmock.NewRows([]string{
		"id", "name", "certification_number", "certification_type", "certification_expiry",
		"email", "phone", "created_at", "updated_at",
	}).
		AddRow("tech-1", "A", "C-1", "Universal", now.AddDate(0, 0, 5), "", "", now, now).
		AddRow("tech-2", "B", "C-2", "Type II", now.AddDate(0, 0, 20), "", "", now, now)

	s.mock.ExpectQuery(`FROM technicians\s+WHERE certification_expiry IS NOT NULL`).
		WithArgs(cutoff).
		WillReturnRows(rows)

	items, err := s.repo.ListExpiringCertifications(context.Background(), cutoff)
	s.NoError(err)
	s.Len(items, 2)
	s.Equal("C-1", items[0].CertificationNumber)
}

func TestTechnicianRepoTestSuite(t *testing.T) {
	suite.Run(t, new(TechnicianRepoTestSuite))
}

//Personal.AI order the ending
