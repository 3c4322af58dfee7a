package branch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/models"
)

var ErrBranchNotFound = errors.New("branch not found")

// Service maintains the denormalized branch counters. CurrentMembers and
// MonthlyRevenue are not kept transactionally consistent with member or
// payment writes; RefreshAggregates recomputes them on demand.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// RefreshAggregates recomputes one branch's counters from the live member
// and payment rows. Revenue covers the calendar month containing now.
func (s *Service) RefreshAggregates(ctx context.Context, gymID uint, branchID uint, now time.Time) (*models.Branch, error) {
	var b models.Branch
	err := s.db.WithContext(ctx).Where("id = ? AND gym_id = ?", branchID, gymID).Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load branch: %w", err)
	}

	var memberCount int64
	err = s.db.WithContext(ctx).Model(&models.Member{}).
		Where("gym_id = ? AND branch_id = ?", gymID, branchID).
		Count(&memberCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count branch members: %w", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var revenue float64
	err = s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("gym_id = ? AND branch_id = ? AND paid_at >= ?", gymID, branchID, monthStart).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum branch revenue: %w", err)
	}

	b.CurrentMembers = int(memberCount)
	b.MonthlyRevenue = revenue
	err = s.db.WithContext(ctx).Model(&b).
		UpdateColumns(map[string]interface{}{"current_members": b.CurrentMembers, "monthly_revenue": b.MonthlyRevenue}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to store branch aggregates: %w", err)
	}

	s.log.Infow("branch aggregates refreshed", "branch_id", branchID, "members", memberCount, "revenue", revenue)
	return &b, nil
}
