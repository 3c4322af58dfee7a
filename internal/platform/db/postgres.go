package db

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gymstack/gymhub/internal/models"
	cfgpkg "github.com/gymstack/gymhub/pkg/config"
	gormzap "github.com/gymstack/gymhub/pkg/gormlog"
)

func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*gorm.DB, error) {
	if cfg.Database.DSN == "" {
		l.Error("database DSN is empty")
		return nil, gorm.ErrInvalidDB
	}
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{Logger: gormzap.New(l)})
	if err != nil {
		l.Errorf("failed to connect database: %v", err)
		return nil, err
	}
	l.Infow("connected to postgres via DSN")
	return db, nil
}

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Invoke(AutoMigrate),
	fx.Invoke(SeedPermissions),
	fx.Invoke(registerDBClose),
)

// AutoMigrate runs GORM migrations on startup.
func AutoMigrate(l *zap.SugaredLogger, db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Gym{},
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Member{},
		&models.Trainer{},
		&models.Branch{},
		&models.GymPlan{},
		&models.SubscriptionPlan{},
		&models.Subscription{},
		&models.Payment{},
		&models.Attendance{},
		&models.ExpenseCategory{},
		&models.Expense{},
		&models.Commission{},
		&models.WorkoutPlan{},
		&models.WorkoutPlanExercise{},
		&models.Exercise{},
		&models.Announcement{},
		&models.MemberDietLog{},
		&models.MemberExerciseLog{},
		&models.MemberMessage{},
	); err != nil {
		l.Errorf("automigrate failed: %v", err)
		return err
	}
	l.Infow("automigrate completed")
	return nil
}

// SeedPermissions upserts the fixed permission catalog. Slug is the conflict
// key so redeploys keep display names current without duplicating rows.
func SeedPermissions(l *zap.SugaredLogger, db *gorm.DB) error {
	catalog := make([]models.Permission, len(models.PermissionCatalog))
	copy(catalog, models.PermissionCatalog)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "group_name"}),
	}).Create(&catalog).Error
	if err != nil {
		l.Errorf("permission seed failed: %v", err)
		return err
	}
	l.Infow("permission catalog seeded", "count", len(catalog))
	return nil
}

// registerDBClose ensures the underlying *sql.DB is closed on shutdown.
func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				l.Warnw("gorm: get sql.DB failed", "err", err)
				return nil
			}
			l.Infow("closing postgres connection pool")
			return sqlDB.Close()
		},
	})
}
