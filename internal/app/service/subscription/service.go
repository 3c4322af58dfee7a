package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/types"
)

// TrialPeriod is the window granted to a freshly onboarded gym.
const TrialPeriod = 14 * 24 * time.Hour

// currentStatuses are the statuses that count toward a gym's active
// subscription.
var currentStatuses = []types.SubscriptionStatus{
	types.SubscriptionStatusTrial,
	types.SubscriptionStatusActive,
}

// Service resolves and maintains gym billing state against the platform
// subscription history.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// ActiveSubscription returns the gym's single active subscription: the
// trial/active row with the greatest id, or nil when the gym has none.
// Selection is by id, not by date columns, which may be null or out of order
// on manually-entered rows.
func (s *Service) ActiveSubscription(ctx context.Context, gymID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.WithContext(ctx).
		Preload("Plan").
		Where("gym_id = ? AND status IN ?", gymID, currentStatuses).
		Order("id DESC").
		Limit(1).
		Take(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve active subscription: %w", err)
	}
	return &sub, nil
}

// AttachActive populates ActiveSubscription on each gym with one derived
// lookup: a grouped MAX(id) subquery keeps the per-gym selection consistent
// under concurrent subscription creation, instead of looping over histories
// in the application.
func (s *Service) AttachActive(ctx context.Context, gyms []*models.Gym) error {
	if len(gyms) == 0 {
		return nil
	}
	gymIDs := lo.Map(gyms, func(g *models.Gym, _ int) uint { return g.ID })

	latest := s.db.Model(&models.Subscription{}).
		Select("MAX(id)").
		Where("gym_id IN ? AND status IN ?", gymIDs, currentStatuses).
		Group("gym_id")

	var subs []*models.Subscription
	if err := s.db.WithContext(ctx).Preload("Plan").Where("id IN (?)", latest).Find(&subs).Error; err != nil {
		return fmt.Errorf("failed to load active subscriptions: %w", err)
	}

	byGym := lo.KeyBy(subs, func(sub *models.Subscription) uint { return sub.GymID })
	for _, g := range gyms {
		g.ActiveSubscription = byGym[g.ID]
	}
	return nil
}

// StartTrial opens the first subscription row for a new gym inside the
// caller's transaction. The plan defaults to the cheapest catalog entry when
// none is named.
func (s *Service) StartTrial(ctx context.Context, tx *gorm.DB, gymID uint, planID uint) (*models.Subscription, error) {
	if planID == 0 {
		var plan models.SubscriptionPlan
		err := tx.WithContext(ctx).Order("price ASC").Limit(1).Take(&plan).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to pick trial plan: %w", err)
		}
		planID = plan.ID
	}

	now := time.Now()
	ends := now.Add(TrialPeriod)
	sub := &models.Subscription{
		GymID:              gymID,
		SubscriptionPlanID: planID,
		Status:             types.SubscriptionStatusTrial,
		StartsAt:           &now,
		EndsAt:             &ends,
	}
	if err := tx.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create trial subscription: %w", err)
	}
	s.log.Infow("trial subscription started", "gym_id", gymID, "subscription_id", sub.ID)
	return sub, nil
}
