package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	trainersvc "github.com/gymstack/gymhub/internal/app/service/trainer"
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/authtoken"
	"github.com/gymstack/gymhub/pkg/response"
)

type CreateTrainerRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=255"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      string  `json:"phone" binding:"omitempty,max=64"`
	Password   string  `json:"password" binding:"required,min=8"`
	Specialty  string  `json:"specialty" binding:"omitempty,max=255"`
	HourlyRate float64 `json:"hourly_rate" binding:"gte=0"`
}

type UpdateTrainerRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Phone      *string  `json:"phone" binding:"omitempty,max=64"`
	Specialty  *string  `json:"specialty" binding:"omitempty,max=255"`
	HourlyRate *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
}

// @Summary      List trainers
// @Description  Trainers attached to the effective gym, via the legacy scalar or the pivot set.
// @Tags         Trainers
// @Produce      json
// @Success      200 {array} models.Trainer
// @Router       /api/v1/trainers [get]
func ListTrainers(svc *trainersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		trainers, err := svc.ListForGym(c.Request.Context(), gymID)
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, trainers)
	}
}

func GetTrainer(svc *trainersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		t, err := svc.GetForGym(c.Request.Context(), gymID, id)
		if errors.Is(err, trainersvc.ErrTrainerNotFound) {
			response.NotFound(c)
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, t)
	}
}

// CreateTrainer creates the trainer account and attaches it to the effective
// gym in the same request.
func CreateTrainer(db *gorm.DB, svc *trainersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req CreateTrainerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var taken int64
		if err := db.WithContext(c.Request.Context()).Model(&models.Trainer{}).Where("email = ?", req.Email).Count(&taken).Error; err != nil {
			response.Internal(c)
			return
		}
		if taken > 0 {
			response.Conflict(c, "email already registered")
			return
		}
		hash, err := authtoken.HashPassword(req.Password)
		if err != nil {
			response.Internal(c)
			return
		}
		t := &models.Trainer{
			GymID:        &gymID,
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: hash,
			Specialty:    req.Specialty,
			HourlyRate:   req.HourlyRate,
		}
		if err := db.WithContext(c.Request.Context()).Create(t).Error; err != nil {
			response.Internal(c)
			return
		}
		if err := svc.AttachGym(c.Request.Context(), t.ID, gymID); err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, t)
	}
}

func UpdateTrainer(db *gorm.DB, svc *trainersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UpdateTrainerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		t, err := svc.GetForGym(c.Request.Context(), gymID, id)
		if errors.Is(err, trainersvc.ErrTrainerNotFound) {
			response.NotFound(c)
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		if req.Name != nil {
			t.Name = *req.Name
		}
		if req.Phone != nil {
			t.Phone = *req.Phone
		}
		if req.Specialty != nil {
			t.Specialty = *req.Specialty
		}
		if req.HourlyRate != nil {
			t.HourlyRate = *req.HourlyRate
		}
		if err := db.WithContext(c.Request.Context()).Omit("Gyms").Save(t).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, t)
	}
}

type AttachTrainerRequest struct {
	TrainerID uint `json:"trainer_id" binding:"required"`
}

// AttachTrainer adds an existing trainer to the effective gym's set.
func AttachTrainer(svc *trainersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req AttachTrainerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		if _, err := svc.Get(c.Request.Context(), req.TrainerID); err != nil {
			if errors.Is(err, trainersvc.ErrTrainerNotFound) {
				response.NotFound(c)
				return
			}
			response.Internal(c)
			return
		}
		if err := svc.AttachGym(c.Request.Context(), req.TrainerID, gymID); err != nil {
			response.Internal(c)
			return
		}
		response.Message(c, "trainer attached")
	}
}

// DetachTrainer removes a trainer from the effective gym's set. The trainer
// account itself survives; it may still belong to other gyms.
func DetachTrainer(svc *trainersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		if _, err := svc.GetForGym(c.Request.Context(), gymID, id); err != nil {
			if errors.Is(err, trainersvc.ErrTrainerNotFound) {
				response.NotFound(c)
				return
			}
			response.Internal(c)
			return
		}
		if err := svc.DetachGym(c.Request.Context(), id, gymID); err != nil {
			response.Internal(c)
			return
		}
		response.Message(c, "trainer detached")
	}
}

func RegisterTrainerRoutes(r gin.IRouter, db *gorm.DB, svc *trainersvc.Service) {
	r.GET("/trainers", ListTrainers(svc))
	r.GET("/trainers/:id", GetTrainer(svc))
	r.POST("/trainers", CreateTrainer(db, svc))
	r.PUT("/trainers/:id", UpdateTrainer(db, svc))
	r.POST("/trainers/attach", AttachTrainer(svc))
	r.DELETE("/trainers/:id", DetachTrainer(svc))
}
