package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/gymstack/gymhub/internal/app/api/middleware"
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/response"
)

// @Summary      Trainer profile
// @Tags         TrainerPortal
// @Produce      json
// @Success      200 {object} models.Trainer
// @Router       /api/v1/trainer/profile [get]
func TrainerProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, _ := mw.CurrentTrainer(c)
		response.OK(c, t)
	}
}

func TrainerGyms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, _ := mw.CurrentTrainer(c)
		ids := t.AllGymIDs()
		if len(ids) == 0 {
			response.OK(c, []*models.Gym{})
			return
		}
		var gyms []*models.Gym
		if err := db.WithContext(c.Request.Context()).Where("id IN ?", ids).Order("id").Find(&gyms).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, gyms)
	}
}

// TrainerMembers lists members assigned to the trainer across their gym set.
func TrainerMembers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, _ := mw.CurrentTrainer(c)
		ids := t.AllGymIDs()
		if len(ids) == 0 {
			response.OK(c, []*models.Member{})
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.Member{}).
			Where("trainer_id = ? AND gym_id IN ?", t.ID, ids).Order("id")
		respondList[*models.Member](c, q, pageFromQuery(c))
	}
}

// trainerMember loads a member assigned to the trainer; anything else is a
// 404, including members of gyms outside the trainer's set.
func trainerMember(c *gin.Context, db *gorm.DB, t *models.Trainer, memberID uint) (*models.Member, bool) {
	ids := t.AllGymIDs()
	if len(ids) == 0 {
		response.NotFound(c)
		return nil, false
	}
	var m models.Member
	err := db.WithContext(c.Request.Context()).
		Where("id = ? AND trainer_id = ? AND gym_id IN ?", memberID, t.ID, ids).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(c)
		return nil, false
	}
	if err != nil {
		response.Internal(c)
		return nil, false
	}
	return &m, true
}

func TrainerListWorkoutPlans(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, _ := mw.CurrentTrainer(c)
		q := db.WithContext(c.Request.Context()).Model(&models.WorkoutPlan{}).
			Preload("Exercises.Exercise").Where("trainer_id = ?", t.ID).Order("id DESC")
		respondList[*models.WorkoutPlan](c, q, pageFromQuery(c))
	}
}

type TrainerWorkoutPlanRequest struct {
	MemberID  uint                   `json:"member_id" binding:"required"`
	Title     string                 `json:"title" binding:"required,min=2,max=255"`
	Notes     string                 `json:"notes"`
	Exercises []WorkoutExerciseInput `json:"exercises" binding:"dive"`
}

func TrainerCreateWorkoutPlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, _ := mw.CurrentTrainer(c)
		var req TrainerWorkoutPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		m, ok := trainerMember(c, db, t, req.MemberID)
		if !ok {
			return
		}
		plan := &models.WorkoutPlan{
			GymID:     m.GymID,
			MemberID:  m.ID,
			TrainerID: &t.ID,
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

func TrainerUpdateWorkoutPlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, _ := mw.CurrentTrainer(c)
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req TrainerWorkoutPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var plan models.WorkoutPlan
		err := db.WithContext(c.Request.Context()).
			Where("id = ? AND trainer_id = ?", id, t.ID).Take(&plan).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		plan.Title = req.Title
		plan.Notes = req.Notes
		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Exercises").Save(&plan).Error; err != nil {
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
		response.OK(c, &plan)
	}
}

// TrainerCommissions is the trainer's own earnings view.
func TrainerCommissions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, _ := mw.CurrentTrainer(c)
		q := db.WithContext(c.Request.Context()).Model(&models.Commission{}).
			Where("trainer_id = ?", t.ID).Order("month DESC, id DESC")
		if month := c.Query("month"); month != "" {
			q = q.Where("month = ?", month)
		}
		respondList[*models.Commission](c, q, pageFromQuery(c))
	}
}

// RegisterTrainerPortalRoutes mounts the trainer self-service surface. The
// group must already carry TrainerAuth.
func RegisterTrainerPortalRoutes(r gin.IRouter, db *gorm.DB) {
	r.GET("/profile", TrainerProfile())
	r.GET("/gyms", TrainerGyms(db))
	r.GET("/members", TrainerMembers(db))
	r.GET("/workout-plans", TrainerListWorkoutPlans(db))
	r.POST("/workout-plans", TrainerCreateWorkoutPlan(db))
	r.PUT("/workout-plans/:id", TrainerUpdateWorkoutPlan(db))
	r.GET("/commissions", TrainerCommissions(db))
}
