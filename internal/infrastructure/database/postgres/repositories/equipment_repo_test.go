package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

var equipmentColumnList = []string{
	"id", "name", "equipment_type", "location", "refrigerant_type", "full_charge_lbs",
	"install_date", "leak_rate_threshold", "inspection_frequency_days", "status",
	"next_inspection_date", "created_at", "updated_at",
}

type EquipmentRepoTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	db   *sql.DB
	repo equipment.Repository
}

func (s *EquipmentRepoTestSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	s.NoError(err)

	log := logging.NewNopLogger()
	conn := postgres.NewConnectionWithDB(s.db, log)
	s.repo = NewEquipmentRepo(conn, log)
}

func (s *EquipmentRepoTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *EquipmentRepoTestSuite) TestGetByID_Found() {
	id := common.NewID()
	now := time.Now()
	s.mock.ExpectQuery(`SELECT .* FROM equipment WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(equipmentColumnList).AddRow(
			id, "Chiller-7", "Chiller", "Plant A", "R-410A", 100.0,
			now.AddDate(-5, 0, 0), 10.0, 90, "Active",
			nil, now, now,
		))

	eq, err := s.repo.GetByID(context.Background(), id)
	s.NoError(err)
	s.NotNil(eq)
	s.Equal(id, eq.ID)
	s.Equal("Chiller-7", eq.Name)
	s.Nil(eq.NextInspectionDate)
}

func (s *EquipmentRepoTestSuite) TestGetByID_NotFound() {
	id := common.NewID()
	s.mock.ExpectQuery(`SELECT .* FROM equipment WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	eq, err := s.repo.GetByID(context.Background(), id)
	s.Nil(eq)
	s.True(errors.IsNotFound(err))
}

func (s *EquipmentRepoTestSuite) TestCreate_DuplicateKey() {
	eq := equipment.New("Chiller-7", equipment.TypeComfortCooling, "R-410A", 100, 10, 90)
	s.mock.ExpectExec(`INSERT INTO equipment`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := s.repo.Create(context.Background(), eq)
	s.True(errors.IsCode(err, errors.ErrCodeEquipmentAlreadyExists))
}

func (s *EquipmentRepoTestSuite) TestUpdate_NotFound() {
	eq := equipment.New("Chiller-7", equipment.TypeComfortCooling, "R-410A", 100, 10, 90)
	s.mock.ExpectExec(`UPDATE equipment SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.repo.Update(context.Background(), eq)
	s.True(errors.IsNotFound(err))
}

func (s *EquipmentRepoTestSuite) TestList_FiltersByStatus() {
	status := equipment.StatusActive
	s.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM equipment WHERE 1=1 AND status = \$1`).
		WithArgs(status).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now()
	s.mock.ExpectQuery(`SELECT .* FROM equipment WHERE 1=1 AND status = \$1 ORDER BY name LIMIT \$2 OFFSET \$3`).
		WithArgs(status, 50, 0).
		WillReturnRows(sqlmock.NewRows(equipmentColumnList).AddRow(
			common.NewID(), "Chiller-7", "Chiller", "Plant A", "R-410A", 100.0,
			nil, 10.0, 90, "Active", now.AddDate(0, 3, 0), now, now,
		))

	result, err := s.repo.List(context.Background(),
		equipment.ListFilter{Status: &status},
		common.Pagination{Page: 1, PageSize: 50})
	s.NoError(err)
	s.Equal(int64(1), result.Total)
	s.Len(result.Items, 1)
	s.True(result.Items[0].InstallDate.IsZero())
	s.NotNil(result.Items[0].NextInspectionDate)
}

func (s *EquipmentRepoTestSuite) TestCountByStatus() {
	s.mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM equipment GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("Active", 12).
			AddRow("Retired", 3))

	counts, err := s.repo.CountByStatus(context.Background())
	s.NoError(err)
	s.Equal(int64(12), counts[equipment.StatusActive])
	s.Equal(int64(3), counts[equipment.StatusRetired])
}

func TestEquipmentRepoTestSuite(t *testing.T) {
	suite.Run(t, new(EquipmentRepoTestSuite))
}

//Personal.AI order the ending
