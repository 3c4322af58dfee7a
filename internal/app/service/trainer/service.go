package trainer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/models"
)

var ErrTrainerNotFound = errors.New("trainer not found")

// Service answers trainer-gym membership questions. A trainer's gym set
// lives in two places for historical rows: the gym_id scalar and the
// trainer_gyms pivot. Every query here checks both; filtering on only one
// under-reports trainers migrated from single-gym assignment.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// ListForGym returns all trainers working at the gym, whichever
// representation records the membership.
func (s *Service) ListForGym(ctx context.Context, gymID uint) ([]*models.Trainer, error) {
	var trainers []*models.Trainer
	err := s.db.WithContext(ctx).
		Preload("Gyms").
		Where("gym_id = ? OR EXISTS (SELECT 1 FROM trainer_gyms WHERE trainer_gyms.trainer_id = trainers.id AND trainer_gyms.gym_id = ?)", gymID, gymID).
		Find(&trainers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trainers: %w", err)
	}
	return trainers, nil
}

// GetForGym loads one trainer scoped to the gym. A trainer outside the gym's
// set is indistinguishable from a missing one.
func (s *Service) GetForGym(ctx context.Context, gymID uint, trainerID uint) (*models.Trainer, error) {
	var t models.Trainer
	err := s.db.WithContext(ctx).
		Preload("Gyms").
		Where("id = ? AND (gym_id = ? OR EXISTS (SELECT 1 FROM trainer_gyms WHERE trainer_gyms.trainer_id = trainers.id AND trainer_gyms.gym_id = ?))", trainerID, gymID, gymID).
		Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTrainerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trainer: %w", err)
	}
	return &t, nil
}

// Get loads a trainer by id with its gym set, unscoped (trainer portal).
func (s *Service) Get(ctx context.Context, trainerID uint) (*models.Trainer, error) {
	var t models.Trainer
	err := s.db.WithContext(ctx).Preload("Gyms").Where("id = ?", trainerID).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTrainerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trainer: %w", err)
	}
	return &t, nil
}

// AttachGym records gym membership in the pivot set.
func (s *Service) AttachGym(ctx context.Context, trainerID uint, gymID uint) error {
	t := models.Trainer{ID: trainerID}
	err := s.db.WithContext(ctx).Model(&t).Association("Gyms").Append(&models.Gym{ID: gymID})
	if err != nil {
		return fmt.Errorf("failed to attach gym: %w", err)
	}
	return nil
}

// DetachGym removes a pivot membership. The compatibility scalar is left
// untouched; it disappears only when the trainer row is updated wholesale.
func (s *Service) DetachGym(ctx context.Context, trainerID uint, gymID uint) error {
	t := models.Trainer{ID: trainerID}
	err := s.db.WithContext(ctx).Model(&t).Association("Gyms").Delete(&models.Gym{ID: gymID})
	if err != nil {
		return fmt.Errorf("failed to detach gym: %w", err)
	}
	return nil
}
