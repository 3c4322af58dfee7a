package statistics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/types"
)

// PlatformStats are the tenant counts on the super-admin landing page.
type PlatformStats struct {
	TotalGyms  int64 `json:"total_gyms"`
	ActiveGyms int64 `json:"active_gyms"`
	TrialGyms  int64 `json:"trial_gyms"`
}

// GymStats are the per-tenant dashboard numbers.
type GymStats struct {
	TotalMembers   int64   `json:"total_members"`
	ActiveMembers  int64   `json:"active_members"`
	TotalTrainers  int64   `json:"total_trainers"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	TodayCheckIns  int64   `json:"today_check_ins"`
}

// Service computes read-only aggregates. Counts are plain queries; nothing
// here is cached or snapshotted.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// Platform returns gym counts by status.
func (s *Service) Platform(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats
	gyms := func() *gorm.DB { return s.db.WithContext(ctx).Model(&models.Gym{}) }

	if err := gyms().Count(&stats.TotalGyms).Error; err != nil {
		return nil, fmt.Errorf("failed to count gyms: %w", err)
	}
	if err := gyms().Where("status = ?", types.GymStatusActive).Count(&stats.ActiveGyms).Error; err != nil {
		return nil, fmt.Errorf("failed to count active gyms: %w", err)
	}
	if err := gyms().Where("status = ?", types.GymStatusTrial).Count(&stats.TrialGyms).Error; err != nil {
		return nil, fmt.Errorf("failed to count trial gyms: %w", err)
	}
	return &stats, nil
}

// Gym returns the dashboard numbers for one tenant. Revenue covers the
// calendar month containing now.
func (s *Service) Gym(ctx context.Context, gymID uint, now time.Time) (*GymStats, error) {
	var stats GymStats

	err := s.db.WithContext(ctx).Model(&models.Member{}).
		Where("gym_id = ?", gymID).Count(&stats.TotalMembers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	err = s.db.WithContext(ctx).Model(&models.Member{}).
		Where("gym_id = ? AND status = ?", gymID, types.MemberStatusActive).Count(&stats.ActiveMembers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active members: %w", err)
	}
	err = s.db.WithContext(ctx).Model(&models.Trainer{}).
		Where("gym_id = ? OR EXISTS (SELECT 1 FROM trainer_gyms WHERE trainer_gyms.trainer_id = trainers.id AND trainer_gyms.gym_id = ?)", gymID, gymID).
		Count(&stats.TotalTrainers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count trainers: %w", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	err = s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("gym_id = ? AND paid_at >= ?", gymID, monthStart).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.MonthlyRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	err = s.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("gym_id = ? AND check_in_at >= ?", gymID, dayStart).
		Count(&stats.TodayCheckIns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count check-ins: %w", err)
	}
	return &stats, nil
}
