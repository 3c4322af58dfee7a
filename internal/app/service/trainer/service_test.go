package trainer

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

	"github.com/gymstack/gymhub/internal/models"
)

func uintPtr(v uint) *uint { return &v }

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

func TestAllGymIDsIsDeduplicatedUnion(t *testing.T) {
	tr := &models.Trainer{
		ID:    1,
		GymID: uintPtr(3),
		Gyms:  []models.Gym{{ID: 3}, {ID: 7}, {ID: 5}},
	}
	assert.ElementsMatch(t, []uint{3, 7, 5}, tr.AllGymIDs())
}

func TestAllGymIDsWithoutPrimary(t *testing.T) {
	tr := &models.Trainer{ID: 1, Gyms: []models.Gym{{ID: 9}, {ID: 2}}}
	assert.ElementsMatch(t, []uint{9, 2}, tr.AllGymIDs())

	roaming := &models.Trainer{ID: 2}
	assert.Empty(t, roaming.AllGymIDs())
}

func TestBelongsToGymChecksBothRepresentations(t *testing.T) {
	tr := &models.Trainer{ID: 1, GymID: uintPtr(3), Gyms: []models.Gym{{ID: 7}}}
	assert.True(t, tr.BelongsToGym(3))
	assert.True(t, tr.BelongsToGym(7))
	assert.False(t, tr.BelongsToGym(8))
}

func TestPrimaryGymIDFallsBackToLowestID(t *testing.T) {
	withScalar := &models.Trainer{ID: 1, GymID: uintPtr(9), Gyms: []models.Gym{{ID: 2}}}
	assert.Equal(t, uint(9), withScalar.PrimaryGymID())

	pivotOnly := &models.Trainer{ID: 2, Gyms: []models.Gym{{ID: 6}, {ID: 4}}}
	assert.Equal(t, uint(4), pivotOnly.PrimaryGymID())

	roaming := &models.Trainer{ID: 3}
	assert.Equal(t, uint(0), roaming.PrimaryGymID())
}

func TestListForGymQueriesScalarAndPivot(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "trainers" WHERE gym_id = \$1 OR EXISTS \(SELECT 1 FROM trainer_gyms`).
		WithArgs(uint(4), uint(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id", "name"}).
			AddRow(1, 4, "legacy row").
			AddRow(2, nil, "pivot row"))
	mock.ExpectQuery(`SELECT \* FROM "trainer_gyms"`).
		WillReturnRows(sqlmock.NewRows([]string{"trainer_id", "gym_id"}).AddRow(2, 4))
	mock.ExpectQuery(`SELECT \* FROM "gyms"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "Downtown"))

	trainers, err := svc.ListForGym(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, trainers, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForGymOutsideSetIsNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "trainers" WHERE id = \$1 AND \(gym_id = \$2 OR EXISTS`).
		WithArgs(uint(9), uint(4), uint(4), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetForGym(context.Background(), 4, 9)
	require.ErrorIs(t, err, ErrTrainerNotFound)
}
