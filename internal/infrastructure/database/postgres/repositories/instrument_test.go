package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
)

type observation struct {
	repository string
	operation  string
	elapsed    time.Duration
	err        error
}

func TestWithQueryObserver_Select(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var seen []observation
	log := logging.NewNopLogger()
	conn := postgres.NewConnectionWithDB(db, log)
	repo := NewEquipmentRepo(conn, log, WithQueryObserver(
		func(repository, operation string, elapsed time.Duration, err error) {
			seen = append(seen, observation{repository, operation, elapsed, err})
		}))

	rows := sqlmock.NewRows(equipmentColumnList).
		AddRow("eq-1", "Chiller-7", "Comfort Cooling", "", "R-410A", 100.0,
			nil, 10.0, 90, "Active", nil, time.Now(), time.Now())
	mock.ExpectQuery("SELECT").WithArgs("eq-1").WillReturnRows(rows)

	_, err = repo.GetByID(context.Background(), "eq-1")
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, "equipment", seen[0].repository)
	assert.Equal(t, "select", seen[0].operation)
	assert.NoError(t, seen[0].err)
}

func TestWithQueryObserver_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var seen []observation
	conn := postgres.NewConnectionWithDB(db, logging.NewNopLogger())
	e := newExecutor(conn, "alert", []Option{WithQueryObserver(
		func(repository, operation string, elapsed time.Duration, err error) {
			seen = append(seen, observation{repository, operation, elapsed, err})
		})})

	mock.ExpectExec("DELETE").WillReturnError(assert.AnError)

	_, execErr := e.ExecContext(context.Background(), "DELETE FROM compliance_alerts WHERE id = $1", "a-1")
	assert.Error(t, execErr)

	require.Len(t, seen, 1)
	assert.Equal(t, "alert", seen[0].repository)
	assert.Equal(t, "delete", seen[0].operation)
	assert.Error(t, seen[0].err)
}

func TestSQLOperation(t *testing.T) {
	assert.Equal(t, "select", sqlOperation("\n\tSELECT * FROM equipment"))
	assert.Equal(t, "insert", sqlOperation("INSERT INTO x VALUES (1)"))
	assert.Equal(t, "unknown", sqlOperation("   "))
}

func TestNoObserverUsesRawExecutor(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	conn := postgres.NewConnectionWithDB(db, logging.NewNopLogger())
	e := newExecutor(conn, "equipment", nil)
	_, isObserved := e.(*observedExecutor)
	assert.False(t, isObserved)
}

//Personal.AI order the ending
