package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/response"
)

type WorkoutExerciseInput struct {
	ExerciseID uint `json:"exercise_id" binding:"required"`
	Sets       int  `json:"sets" binding:"gte=0"`
	Reps       int  `json:"reps" binding:"gte=0"`
	DayOfWeek  int  `json:"day_of_week" binding:"gte=0,lte=7"`
	Sequence   int  `json:"sequence" binding:"gte=0"`
}

type WorkoutPlanRequest struct {
	MemberID  uint                   `json:"member_id" binding:"required"`
	TrainerID *uint                  `json:"trainer_id"`
	Title     string                 `json:"title" binding:"required,min=2,max=255"`
	Notes     string                 `json:"notes"`
	Exercises []WorkoutExerciseInput `json:"exercises" binding:"dive"`
}

func workoutLines(planID uint, in []WorkoutExerciseInput) []models.WorkoutPlanExercise {
	return lo.Map(in, func(e WorkoutExerciseInput, _ int) models.WorkoutPlanExercise {
		return models.WorkoutPlanExercise{
			WorkoutPlanID: planID,
			ExerciseID:    e.ExerciseID,
			Sets:          e.Sets,
			Reps:          e.Reps,
			DayOfWeek:     e.DayOfWeek,
			Sequence:      e.Sequence,
		}
	})
}

func ListWorkoutPlans(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.WorkoutPlan{}).
			Where("gym_id = ?", gymID).Order("id DESC")
		if member := c.Query("member_id"); member != "" {
			q = q.Where("member_id = ?", member)
		}
		respondList[*models.WorkoutPlan](c, q, pageFromQuery(c))
	}
}

func GetWorkoutPlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		p, ok := takeScoped[models.WorkoutPlan](c, db, gymID, id, "Exercises.Exercise")
		if !ok {
			return
		}
		response.OK(c, p)
	}
}

// CreateWorkoutPlan creates the plan with its exercise lines in one
// transaction. The member must belong to the effective gym.
func CreateWorkoutPlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req WorkoutPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		if _, ok := takeScoped[models.Member](c, db, gymID, req.MemberID); !ok {
			return
		}
		plan := &models.WorkoutPlan{
			GymID:     gymID,
			MemberID:  req.MemberID,
			TrainerID: req.TrainerID,
			Title:     req.Title,
			Notes:     req.Notes,
		}
		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(plan).Error; err != nil {
				return err
			}
			if len(req.Exercises) == 0 {
				return nil
			}
			return tx.Create(workoutLines(plan.ID, req.Exercises)).Error
		})
		if err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, plan)
	}
}

// UpdateWorkoutPlan replaces the plan head and its full exercise list.
func UpdateWorkoutPlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req WorkoutPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		plan, ok := takeScoped[models.WorkoutPlan](c, db, gymID, id)
		if !ok {
			return
		}
		plan.Title = req.Title
		plan.Notes = req.Notes
		plan.TrainerID = req.TrainerID
		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Exercises").Save(plan).Error; err != nil {
				return err
			}
			if err := tx.Where("workout_plan_id = ?", plan.ID).Delete(&models.WorkoutPlanExercise{}).Error; err != nil {
				return err
			}
			if len(req.Exercises) == 0 {
				return nil
			}
			return tx.Create(workoutLines(plan.ID, req.Exercises)).Error
		})
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, plan)
	}
}

func DeleteWorkoutPlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		plan, ok := takeScoped[models.WorkoutPlan](c, db, gymID, id)
		if !ok {
			return
		}
		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("workout_plan_id = ?", plan.ID).Delete(&models.WorkoutPlanExercise{}).Error; err != nil {
				return err
			}
			return tx.Delete(plan).Error
		})
		if err != nil {
			response.Internal(c)
			return
		}
		response.Message(c, "workout plan deleted")
	}
}

func RegisterWorkoutRoutes(r gin.IRouter, db *gorm.DB) {
	r.GET("/workout-plans", ListWorkoutPlans(db))
	r.GET("/workout-plans/:id", GetWorkoutPlan(db))
	r.POST("/workout-plans", CreateWorkoutPlan(db))
	r.PUT("/workout-plans/:id", UpdateWorkoutPlan(db))
	r.DELETE("/workout-plans/:id", DeleteWorkoutPlan(db))
}
