package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

type AlertRepoTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	db   *sql.DB
	repo alert.Repository
}

func (s *AlertRepoTestSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	s.NoError(err)

	log := logging.NewNopLogger()
	conn := postgres.NewConnectionWithDB(s.db, log)
	s.repo = NewAlertRepo(conn, log)
}

func (s *AlertRepoTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *AlertRepoTestSuite) TestHasOpenAlert_True() {
	eqID := common.NewID()
	s.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(eqID, alert.TypeInspectionDue, alert.StatusOpen).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := s.repo.HasOpenAlert(context.Background(), eqID, alert.TypeInspectionDue)
	s.NoError(err)
	s.True(exists)
}

func (s *AlertRepoTestSuite) TestHasOpenAlert_False() {
	eqID := common.NewID()
	s.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(eqID, alert.TypeLeakRateExceeded, alert.StatusOpen).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := s.repo.HasOpenAlert(context.Background(), eqID, alert.TypeLeakRateExceeded)
	s.NoError(err)
	s.False(exists)
}

func (s *AlertRepoTestSuite) TestUpdate_NotFound() {
	a := alert.New(common.NewID(), alert.TypeInspectionDue, alert.SeverityWarning, "t", "m")
	s.mock.ExpectExec(`UPDATE compliance_alerts SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.repo.Update(context.Background(), a)
	s.True(errors.IsNotFound(err))
}

func (s *AlertRepoTestSuite) TestCountOpenBySeverity() {
	s.mock.ExpectQuery(`SELECT severity, COUNT\(\*\) FROM compliance_alerts`).
		WithArgs(alert.StatusOpen).
		WillReturnRows(sqlmock.NewRows([]string{"severity", "count"}).
			AddRow("Critical", 2).
			AddRow("Warning", 5))

	counts, err := s.repo.CountOpenBySeverity(context.Background())
	s.NoError(err)
	s.Equal(int64(2), counts[alert.SeverityCritical])
	s.Equal(int64(5), counts[alert.SeverityWarning])
}

func (s *AlertRepoTestSuite) TestList_FiltersByStatusAndSeverity() {
	status := alert.StatusOpen
	severity := alert.SeverityCritical

	s.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM compliance_alerts WHERE 1=1 AND status = \$1 AND severity = \$2`).
		WithArgs(status, severity).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	a := alert.New(common.NewID(), alert.TypeLeakRateExceeded, severity,
		"Equipment Chiller-7: Leak Rate Exceeds Threshold", "msg")
	s.mock.ExpectQuery(`SELECT .* FROM compliance_alerts WHERE 1=1 AND status = \$1 AND severity = \$2 ORDER BY created_date DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(status, severity, 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "equipment_id", "alert_type", "severity", "title", "message", "alert_date",
			"status", "created_date", "resolved_date", "resolved_by", "resolution_notes",
		}).AddRow(
			a.ID, a.EquipmentID, a.AlertType, a.Severity, a.Title, a.Message, a.AlertDate,
			a.Status, a.CreatedDate, nil, "", "",
		))

	result, err := s.repo.List(context.Background(),
		alert.ListFilter{Status: &status, Severity: &severity},
		common.Pagination{Page: 1, PageSize: 50})
	s.NoError(err)
	s.Equal(int64(1), result.Total)
	s.Len(result.Items, 1)
	s.Nil(result.Items[0].ResolvedDate)
}

func TestAlertRepoTestSuite(t *testing.T) {
	suite.Run(t, new(AlertRepoTestSuite))
}

//Personal.AI order the ending
