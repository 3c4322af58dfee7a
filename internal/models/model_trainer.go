package models

import (
	"time"

	"github.com/samber/lo"
)

// Trainer is a staff-like principal in its own credential namespace. Gym
// membership is a set carried by the trainer_gyms pivot; GymID survives only
// as a compatibility scalar for rows predating multi-gym assignment, so every
// membership query must consult both representations.
type Trainer struct {
	ID           uint    `gorm:"column:id;primaryKey" json:"id"`
	GymID        *uint   `gorm:"column:gym_id;index" json:"gym_id"`
	Name         string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email        string  `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone        string  `gorm:"column:phone;type:varchar(64)" json:"phone"`
	PasswordHash string  `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Specialty    string  `gorm:"column:specialty;type:varchar(255)" json:"specialty"`
	HourlyRate   float64 `gorm:"column:hourly_rate;default:0" json:"hourly_rate"`

	Gyms []Gym `gorm:"many2many:trainer_gyms" json:"gyms,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Trainer) TableName() string {
	return "trainers"
}

// AllGymIDs returns the deduplicated union of the compatibility scalar and
// the pivot set. Order carries no meaning. Gyms must be preloaded.
func (t *Trainer) AllGymIDs() []uint {
	ids := make([]uint, 0, len(t.Gyms)+1)
	if t.GymID != nil {
		ids = append(ids, *t.GymID)
	}
	for _, g := range t.Gyms {
		ids = append(ids, g.ID)
	}
	return lo.Uniq(ids)
}

// BelongsToGym tests membership against the full gym set.
func (t *Trainer) BelongsToGym(gymID uint) bool {
	return lo.Contains(t.AllGymIDs(), gymID)
}

// PrimaryGymID is the display gym: the scalar when set, otherwise the lowest
// id in the membership set, zero for a roaming personal trainer.
func (t *Trainer) PrimaryGymID() uint {
	if t.GymID != nil {
		return *t.GymID
	}
	ids := t.AllGymIDs()
	if len(ids) == 0 {
		return 0
	}
	return lo.Min(ids)
}
