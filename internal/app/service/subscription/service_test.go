package subscription

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
	"github.com/gymstack/gymhub/pkg/types"
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

func TestActiveSubscriptionPicksNewestCurrentRow(t *testing.T) {
	svc, mock := newTestService(t)

	// The resolver must order by id descending so that a newly created trial
	// row wins over an older active one.
	mock.ExpectQuery(`SELECT \* FROM "subscriptions" WHERE gym_id = \$1 AND status IN \(\$2,\$3\) ORDER BY id DESC`).
		WithArgs(uint(7), "trial", "active", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id", "subscription_plan_id", "status"}).
			AddRow(42, 7, 3, "trial"))
	mock.ExpectQuery(`SELECT \* FROM "subscription_plans" WHERE "subscription_plans"\."id" = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow(3, "Starter", "starter"))

	sub, err := svc.ActiveSubscription(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, uint(42), sub.ID)
	assert.Equal(t, types.SubscriptionStatusTrial, sub.Status)
	require.NotNil(t, sub.Plan)
	assert.Equal(t, "starter", sub.Plan.Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveSubscriptionNoneIsNil(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "subscriptions" WHERE gym_id = \$1 AND status IN \(\$2,\$3\) ORDER BY id DESC`).
		WithArgs(uint(9), "trial", "active", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id", "subscription_plan_id", "status"}))

	sub, err := svc.ActiveSubscription(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, sub)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachActiveMapsPerGym(t *testing.T) {
	svc, mock := newTestService(t)

	gyms := []*models.Gym{{ID: 1}, {ID: 2}, {ID: 3}}

	// One grouped MAX(id) subquery for the whole page of gyms.
	mock.ExpectQuery(`SELECT \* FROM "subscriptions" WHERE id IN \(SELECT MAX\(id\) FROM "subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id", "subscription_plan_id", "status"}).
			AddRow(10, 1, 5, "active").
			AddRow(14, 3, 5, "trial"))
	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow(5, "Pro", "pro"))

	require.NoError(t, svc.AttachActive(context.Background(), gyms))

	require.NotNil(t, gyms[0].ActiveSubscription)
	assert.Equal(t, uint(10), gyms[0].ActiveSubscription.ID)
	assert.Nil(t, gyms[1].ActiveSubscription)
	require.NotNil(t, gyms[2].ActiveSubscription)
	assert.Equal(t, uint(14), gyms[2].ActiveSubscription.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachActiveNoGymsIsNoQuery(t *testing.T) {
	svc, mock := newTestService(t)
	require.NoError(t, svc.AttachActive(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
