package models

import (
	"time"
)

// MemberDietLog is a member-recorded meal entry.
type MemberDietLog struct {
	ID       uint      `gorm:"column:id;primaryKey" json:"id"`
	GymID    uint      `gorm:"column:gym_id;not null;index" json:"gym_id"`
	MemberID uint      `gorm:"column:member_id;not null;index" json:"member_id"`
	LoggedAt time.Time `gorm:"column:logged_at;not null" json:"logged_at"`
	Meal     string    `gorm:"column:meal;type:varchar(64)" json:"meal"`
	Food     string    `gorm:"column:food;type:varchar(512);not null" json:"food"`
	Calories int       `gorm:"column:calories;default:0" json:"calories"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MemberDietLog) TableName() string {
	return "member_diet_logs"
}

// MemberExerciseLog is a member-recorded training entry.
type MemberExerciseLog struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	GymID      uint      `gorm:"column:gym_id;not null;index" json:"gym_id"`
	MemberID   uint      `gorm:"column:member_id;not null;index" json:"member_id"`
	ExerciseID *uint     `gorm:"column:exercise_id" json:"exercise_id"`
	LoggedAt   time.Time `gorm:"column:logged_at;not null" json:"logged_at"`
	Sets       int       `gorm:"column:sets;default:0" json:"sets"`
	Reps       int       `gorm:"column:reps;default:0" json:"reps"`
	WeightKg   float64   `gorm:"column:weight_kg;default:0" json:"weight_kg"`
	Notes      string    `gorm:"column:notes;type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MemberExerciseLog) TableName() string {
	return "member_exercise_logs"
}

// MemberMessage is a message between a member and gym staff or a trainer.
type MemberMessage struct {
	ID         uint       `gorm:"column:id;primaryKey" json:"id"`
	GymID      uint       `gorm:"column:gym_id;not null;index" json:"gym_id"`
	MemberID   uint       `gorm:"column:member_id;not null;index" json:"member_id"`
	SenderKind string     `gorm:"column:sender_kind;type:varchar(16);not null" json:"sender_kind"`
	Body       string     `gorm:"column:body;type:text;not null" json:"body"`
	ReadAt     *time.Time `gorm:"column:read_at" json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MemberMessage) TableName() string {
	return "member_messages"
}
