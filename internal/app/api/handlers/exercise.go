package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/response"
)

type ExerciseRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	MuscleGroup string `json:"muscle_group" binding:"omitempty,max=128"`
	Equipment   string `json:"equipment" binding:"omitempty,max=128"`
}

// ListExercises returns the shared movement catalog plus the effective gym's
// own entries.
func ListExercises(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.Exercise{}).
			Where("gym_id IS NULL OR gym_id = ?", gymID).Order("name")
		if group := c.Query("muscle_group"); group != "" {
			q = q.Where("muscle_group = ?", group)
		}
		respondList[*models.Exercise](c, q, pageFromQuery(c))
	}
}

func CreateExercise(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req ExerciseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		e := &models.Exercise{
			GymID:       &gymID,
			Name:        req.Name,
			MuscleGroup: req.MuscleGroup,
			Equipment:   req.Equipment,
		}
		if err := db.WithContext(c.Request.Context()).Create(e).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, e)
	}
}

// UpdateExercise edits a gym-owned entry. Global catalog rows are read-only
// for gym staff, so they resolve as missing here.
func UpdateExercise(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req ExerciseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		e, ok := takeScoped[models.Exercise](c, db, gymID, id)
		if !ok {
			return
		}
		e.Name = req.Name
		e.MuscleGroup = req.MuscleGroup
		e.Equipment = req.Equipment
		if err := db.WithContext(c.Request.Context()).Save(e).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, e)
	}
}

func DeleteExercise(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		deleteScoped[models.Exercise](c, db, gymID, id, "exercise deleted")
	}
}

func RegisterExerciseRoutes(r gin.IRouter, db *gorm.DB) {
	r.GET("/exercises", ListExercises(db))
	r.POST("/exercises", CreateExercise(db))
	r.PUT("/exercises/:id", UpdateExercise(db))
	r.DELETE("/exercises/:id", DeleteExercise(db))
}
