package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	trainersvc "github.com/gymstack/gymhub/internal/app/service/trainer"
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/response"
)

type CommissionRequest struct {
	TrainerID uint    `json:"trainer_id" binding:"required"`
	MemberID  *uint   `json:"member_id"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Month     string  `json:"month" binding:"required,len=7"`
	Status    string  `json:"status" binding:"omitempty,oneof=pending approved paid"`
}

func ListCommissions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.Commission{}).
			Where("gym_id = ?", gymID).Order("month DESC, id DESC")
		if trainer := c.Query("trainer_id"); trainer != "" {
			q = q.Where("trainer_id = ?", trainer)
		}
		if month := c.Query("month"); month != "" {
			q = q.Where("month = ?", month)
		}
		respondList[*models.Commission](c, q, pageFromQuery(c))
	}
}

// CreateCommission records a trainer earning. The trainer must belong to the
// effective gym's set.
func CreateCommission(db *gorm.DB, trainers *trainersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req CommissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		if _, err := trainers.GetForGym(c.Request.Context(), gymID, req.TrainerID); err != nil {
			response.NotFound(c)
			return
		}
		status := req.Status
		if status == "" {
			status = "pending"
		}
		com := &models.Commission{
			GymID:     gymID,
			TrainerID: req.TrainerID,
			MemberID:  req.MemberID,
			Amount:    req.Amount,
			Month:     req.Month,
			Status:    status,
		}
		if err := db.WithContext(c.Request.Context()).Create(com).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, com)
	}
}

type UpdateCommissionRequest struct {
	Amount *float64 `json:"amount" binding:"omitempty,gt=0"`
	Status *string  `json:"status" binding:"omitempty,oneof=pending approved paid"`
}

func UpdateCommission(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UpdateCommissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		com, ok := takeScoped[models.Commission](c, db, gymID, id)
		if !ok {
			return
		}
		if req.Amount != nil {
			com.Amount = *req.Amount
		}
		if req.Status != nil {
			com.Status = *req.Status
		}
		if err := db.WithContext(c.Request.Context()).Save(com).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, com)
	}
}

func DeleteCommission(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		deleteScoped[models.Commission](c, db, gymID, id, "commission deleted")
	}
}

func RegisterCommissionRoutes(r gin.IRouter, db *gorm.DB, trainers *trainersvc.Service) {
	r.GET("/commissions", ListCommissions(db))
	r.POST("/commissions", CreateCommission(db, trainers))
	r.PUT("/commissions/:id", UpdateCommission(db))
	r.DELETE("/commissions/:id", DeleteCommission(db))
}
