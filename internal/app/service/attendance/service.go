package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/types"
)

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrMemberInactive   = errors.New("member is not active")
	ErrAlreadyCheckedIn = errors.New("member already has an open check-in")
	ErrNoCoinsRemaining = errors.New("no coins remaining")
	ErrNoOpenCheckIn    = errors.New("member has no open check-in")
)

// Service handles gym visits. The coin decrement is a single conditional
// UPDATE so two simultaneous check-ins can never both spend the last coin:
// the row write serializes on the member row, and the losing statement
// affects zero rows.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// CheckIn opens a visit for a member of the given gym. Coin-plan members
// spend exactly one coin per completed check-in.
func (s *Service) CheckIn(ctx context.Context, gymID uint, memberID uint, branchID *uint) (*models.Attendance, error) {
	var member models.Member
	err := s.db.WithContext(ctx).Where("id = ? AND gym_id = ?", memberID, gymID).Take(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load member: %w", err)
	}
	if !member.CanCheckIn() {
		return nil, ErrMemberInactive
	}

	var open int64
	err = s.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("gym_id = ? AND member_id = ? AND check_out_at IS NULL", gymID, memberID).
		Count(&open).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check open visits: %w", err)
	}
	if open > 0 {
		return nil, ErrAlreadyCheckedIn
	}

	visit := &models.Attendance{
		GymID:     gymID,
		MemberID:  memberID,
		BranchID:  branchID,
		CheckInAt: time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if member.PlanType == types.PlanTypeCoin {
			res := tx.Model(&models.Member{}).
				Where("id = ? AND coin_balance > 0", memberID).
				UpdateColumn("coin_balance", gorm.Expr("coin_balance - 1"))
			if res.Error != nil {
				return fmt.Errorf("failed to spend coin: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrNoCoinsRemaining
			}
			visit.CoinSpent = true
		}
		if err := tx.Create(visit).Error; err != nil {
			return fmt.Errorf("failed to create attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("member checked in", "gym_id", gymID, "member_id", memberID, "coin_spent", visit.CoinSpent)
	return visit, nil
}

// CheckOut closes the member's open visit.
func (s *Service) CheckOut(ctx context.Context, gymID uint, memberID uint) (*models.Attendance, error) {
	var visit models.Attendance
	err := s.db.WithContext(ctx).
		Where("gym_id = ? AND member_id = ? AND check_out_at IS NULL", gymID, memberID).
		Order("id DESC").
		Limit(1).
		Take(&visit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoOpenCheckIn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load open visit: %w", err)
	}

	now := time.Now()
	visit.CheckOutAt = &now
	if err := s.db.WithContext(ctx).Model(&visit).UpdateColumn("check_out_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to close visit: %w", err)
	}
	return &visit, nil
}
