package announcement

import (
	"context"
	"testing"
	"time"

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

func TestActiveForTenantUnionsPlatformRows(t *testing.T) {
	svc, mock := newTestService(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "announcements" WHERE is_published = \$1 AND \(\(starts_at IS NULL OR starts_at <= \$2\)\) AND \(\(ends_at IS NULL OR ends_at >= \$3\)\) AND \(\(gym_id IS NULL OR gym_id = \$4\)\)`).
		WithArgs(true, now, now, uint(6)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id", "title", "is_published"}).
			AddRow(1, nil, "platform notice", true).
			AddRow(2, 6, "gym notice", true))

	rows, err := svc.ActiveFor(context.Background(), types.GymID(6), now)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveForPlatformScopeIsPlatformRowsOnly(t *testing.T) {
	svc, mock := newTestService(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "announcements" WHERE is_published = \$1 AND \(\(starts_at IS NULL OR starts_at <= \$2\)\) AND \(\(ends_at IS NULL OR ends_at >= \$3\)\) AND gym_id IS NULL`).
		WithArgs(true, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id", "title", "is_published"}).
			AddRow(1, nil, "platform notice", true))

	rows, err := svc.ActiveFor(context.Background(), types.Platform, now)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].GymID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveAtWindow(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		a    models.Announcement
		want bool
	}{
		{name: "published no window", a: models.Announcement{IsPublished: true}, want: true},
		{name: "unpublished", a: models.Announcement{IsPublished: false}, want: false},
		{name: "inside window", a: models.Announcement{IsPublished: true, StartsAt: &past, EndsAt: &future}, want: true},
		{name: "not started", a: models.Announcement{IsPublished: true, StartsAt: &future}, want: false},
		{name: "already ended", a: models.Announcement{IsPublished: true, EndsAt: &past}, want: false},
		{name: "open start", a: models.Announcement{IsPublished: true, EndsAt: &future}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.ActiveAt(now))
		})
	}
}
