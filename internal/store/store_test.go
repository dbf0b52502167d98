package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tmhire/tmhire-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormStore_AverageTMCapacity(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(AVG(capacity), 0) FROM "transit_mixers" WHERE company_id = $1`)).
		WithArgs("company-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(8.25))

	avg, err := s.AverageTMCapacity(context.Background(), "company-1")
	require.NoError(t, err)
	assert.Equal(t, 8.25, avg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_AverageTMCapacity_EmptyFleet(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(`SELECT COALESCE`).
		WithArgs("company-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.0))

	avg, err := s.AverageTMCapacity(context.Background(), "company-1")
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestGormStore_ClientNotFound(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "clients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.Client(context.Background(), "company-1", "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGormStore_SaveScheduleReplacesTrips(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	now := time.Now().UTC()
	schedule := &model.Schedule{
		ID:        "sched-1",
		CompanyID: "company-1",
		ClientID:  "client-1",
		Quantity:  60,
		Status:    model.StatusGenerated,
		Trips: []model.Trip{
			{TripNo: 1, TMID: "tm-1", PlantStart: now, PumpStart: now, UnloadingEnd: now, ReturnAt: now},
			{TripNo: 2, TMID: "tm-2", PlantStart: now, PumpStart: now, UnloadingEnd: now, ReturnAt: now},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "schedules" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "trips" WHERE schedule_id = \$1`).
		WithArgs("sched-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT INTO "trips"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectCommit()

	err := s.SaveSchedule(context.Background(), schedule)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
