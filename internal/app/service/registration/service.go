package registration

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/app/service/subscription"
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/authtoken"
	"github.com/gymstack/gymhub/pkg/types"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrSlugTaken  = errors.New("gym slug already taken")
)

// Service onboards new principals. Gym onboarding creates the tenant root,
// its owner account and the opening trial subscription in one transaction;
// a gym either exists fully or not at all.
type Service struct {
	db   *gorm.DB
	log  *zap.SugaredLogger
	subs *subscription.Service
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, subs *subscription.Service) *Service {
	return &Service{db: db, log: log, subs: subs}
}

type RegisterGymInput struct {
	GymName    string
	Slug       string
	Email      string
	Phone      string
	Address    string
	OwnerName  string
	OwnerEmail string
	Password   string
}

// RegisterGym onboards a tenant. The owner is a gym_admin with no custom
// role, which implicitly grants every permission from the first request.
func (s *Service) RegisterGym(ctx context.Context, in RegisterGymInput) (*models.Gym, *models.User, error) {
	var taken int64
	if err := s.db.WithContext(ctx).Model(&models.Gym{}).Where("slug = ?", in.Slug).Count(&taken).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken > 0 {
		return nil, nil, ErrSlugTaken
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", in.OwnerEmail).Count(&taken).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken > 0 {
		return nil, nil, ErrEmailTaken
	}

	hash, err := authtoken.HashPassword(in.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	gym := &models.Gym{
		Name:    in.GymName,
		Slug:    in.Slug,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		Status:  types.GymStatusTrial,
	}
	owner := &models.User{
		Name:         in.OwnerName,
		Email:        in.OwnerEmail,
		PasswordHash: hash,
		Role:         types.StaffRoleGymAdmin,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(gym).Error; err != nil {
			return fmt.Errorf("failed to create gym: %w", err)
		}
		owner.GymID = &gym.ID
		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("failed to create owner: %w", err)
		}
		if _, err := s.subs.StartTrial(ctx, tx, gym.ID, 0); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Infow("gym registered", "gym_id", gym.ID, "slug", gym.Slug)
	return gym, owner, nil
}

type RegisterTrainerInput struct {
	Name      string
	Email     string
	Phone     string
	Password  string
	Specialty string
}

// RegisterTrainer creates a trainer account with an empty gym set: a
// personal trainer until a gym attaches them.
func (s *Service) RegisterTrainer(ctx context.Context, in RegisterTrainerInput) (*models.Trainer, error) {
	var taken int64
	if err := s.db.WithContext(ctx).Model(&models.Trainer{}).Where("email = ?", in.Email).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := authtoken.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	t := &models.Trainer{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Specialty:    in.Specialty,
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, fmt.Errorf("failed to create trainer: %w", err)
	}

	s.log.Infow("trainer registered", "trainer_id", t.ID)
	return t, nil
}
