package attendance

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	return NewService(db, zap.NewNop().Sugar()), mock
}

func memberRow(planType string, coinBalance int, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "gym_id", "plan_type", "coin_balance", "status"}).
		AddRow(5, 1, planType, coinBalance, status)
}

func expectMemberLookup(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1 AND gym_id = \$2`).
		WithArgs(uint(5), uint(1), sqlmock.AnyArg()).
		WillReturnRows(rows)
}

func expectNoOpenVisit(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT count\(\*\) FROM "attendances" WHERE gym_id = \$1 AND member_id = \$2 AND check_out_at IS NULL`).
		WithArgs(uint(1), uint(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
}

func TestCheckInCoinMemberSpendsOneCoin(t *testing.T) {
	svc, mock := newTestService(t)

	expectMemberLookup(mock, memberRow("coin", 1, "Active"))
	expectNoOpenVisit(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "members" SET "coin_balance"=coin_balance - 1 WHERE id = \$1 AND coin_balance > 0`).
		WithArgs(uint(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "attendances"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(77))
	mock.ExpectCommit()

	visit, err := svc.CheckIn(context.Background(), 1, 5, nil)
	require.NoError(t, err)
	assert.True(t, visit.CoinSpent)
	assert.Equal(t, uint(77), visit.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInCoinMemberWithoutCoinsIsConflict(t *testing.T) {
	svc, mock := newTestService(t)

	// The stale in-memory balance says 1, but the conditional update loses
	// the race: zero rows affected means another check-in spent the last
	// coin first. No attendance row may be written.
	expectMemberLookup(mock, memberRow("coin", 1, "Active"))
	expectNoOpenVisit(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "members" SET "coin_balance"=coin_balance - 1 WHERE id = \$1 AND coin_balance > 0`).
		WithArgs(uint(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.CheckIn(context.Background(), 1, 5, nil)
	require.ErrorIs(t, err, ErrNoCoinsRemaining)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInMonthlyMemberSkipsCoinSpend(t *testing.T) {
	svc, mock := newTestService(t)

	expectMemberLookup(mock, memberRow("monthly", 0, "Active"))
	expectNoOpenVisit(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "attendances"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(78))
	mock.ExpectCommit()

	visit, err := svc.CheckIn(context.Background(), 1, 5, nil)
	require.NoError(t, err)
	assert.False(t, visit.CoinSpent)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInUnknownMember(t *testing.T) {
	svc, mock := newTestService(t)

	expectMemberLookup(mock, sqlmock.NewRows([]string{"id", "gym_id", "plan_type", "coin_balance", "status"}))

	_, err := svc.CheckIn(context.Background(), 1, 5, nil)
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestCheckInFrozenMember(t *testing.T) {
	svc, mock := newTestService(t)

	expectMemberLookup(mock, memberRow("monthly", 0, "Frozen"))

	_, err := svc.CheckIn(context.Background(), 1, 5, nil)
	require.ErrorIs(t, err, ErrMemberInactive)
}

func TestCheckInWithOpenVisitIsConflict(t *testing.T) {
	svc, mock := newTestService(t)

	expectMemberLookup(mock, memberRow("monthly", 0, "Active"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "attendances" WHERE gym_id = \$1 AND member_id = \$2 AND check_out_at IS NULL`).
		WithArgs(uint(1), uint(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.CheckIn(context.Background(), 1, 5, nil)
	require.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckOutClosesOpenVisit(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "attendances" WHERE gym_id = \$1 AND member_id = \$2 AND check_out_at IS NULL ORDER BY id DESC`).
		WithArgs(uint(1), uint(5), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id", "member_id"}).AddRow(80, 1, 5))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "attendances" SET "check_out_at"=\$1 WHERE "id" = \$2`).
		WithArgs(sqlmock.AnyArg(), uint(80)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	visit, err := svc.CheckOut(context.Background(), 1, 5)
	require.NoError(t, err)
	require.NotNil(t, visit.CheckOutAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOutWithoutOpenVisit(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "attendances" WHERE gym_id = \$1 AND member_id = \$2 AND check_out_at IS NULL ORDER BY id DESC`).
		WithArgs(uint(1), uint(5), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.CheckOut(context.Background(), 1, 5)
	require.ErrorIs(t, err, ErrNoOpenCheckIn)
}
