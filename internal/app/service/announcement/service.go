package announcement

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/types"
)

// Service serves the announcement feeds shown in the portals.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// ActiveFor returns the currently visible feed for a scope. A tenant scope
// unions platform-wide rows (gym_id IS NULL) with the gym's own; the
// explicit platform scope returns exactly the platform-wide rows, never
// mixed with any tenant's. Visibility requires the publish flag and the
// date window, either end open.
func (s *Service) ActiveFor(ctx context.Context, scope types.GymID, now time.Time) ([]*models.Announcement, error) {
	q := s.db.WithContext(ctx).
		Where("is_published = ?", true).
		Where("(starts_at IS NULL OR starts_at <= ?)", now).
		Where("(ends_at IS NULL OR ends_at >= ?)", now)

	if scope.IsPlatform() {
		q = q.Where("gym_id IS NULL")
	} else {
		q = q.Where("(gym_id IS NULL OR gym_id = ?)", uint(scope))
	}

	var rows []*models.Announcement
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return rows, nil
}
