package models

import (
	"time"
)

// WorkoutPlan is a trainer-authored program for one member.
type WorkoutPlan struct {
	ID        uint   `gorm:"column:id;primaryKey" json:"id"`
	GymID     uint   `gorm:"column:gym_id;not null;index" json:"gym_id"`
	MemberID  uint   `gorm:"column:member_id;not null;index" json:"member_id"`
	TrainerID *uint  `gorm:"column:trainer_id;index" json:"trainer_id"`
	Title     string `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Notes     string `gorm:"column:notes;type:text" json:"notes"`

	Exercises []WorkoutPlanExercise `gorm:"foreignKey:WorkoutPlanID" json:"exercises,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WorkoutPlan) TableName() string {
	return "workout_plans"
}

// WorkoutPlanExercise is one prescribed exercise line within a plan.
type WorkoutPlanExercise struct {
	ID            uint `gorm:"column:id;primaryKey" json:"id"`
	WorkoutPlanID uint `gorm:"column:workout_plan_id;not null;index" json:"workout_plan_id"`
	ExerciseID    uint `gorm:"column:exercise_id;not null" json:"exercise_id"`
	Sets          int  `gorm:"column:sets;default:0" json:"sets"`
	Reps          int  `gorm:"column:reps;default:0" json:"reps"`
	DayOfWeek     int  `gorm:"column:day_of_week;default:0" json:"day_of_week"`
	Sequence      int  `gorm:"column:sequence;default:0" json:"sequence"`

	Exercise *Exercise `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
}

func (WorkoutPlanExercise) TableName() string {
	return "workout_plan_exercises"
}
