package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/response"
	"github.com/gymstack/gymhub/pkg/types"
)

type GymPlanRequest struct {
	Name           string  `json:"name" binding:"required,min=2,max=255"`
	Type           string  `json:"type" binding:"required,oneof=monthly coin bundle"`
	Tier           string  `json:"tier" binding:"omitempty,max=64"`
	Price          float64 `json:"price" binding:"gte=0"`
	CoinCount      int     `json:"coin_count" binding:"gte=0"`
	DurationMonths int     `json:"duration_months" binding:"gte=0"`
}

func ListGymPlans(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.GymPlan{}).
			Where("gym_id = ?", gymID).Order("price")
		respondList[*models.GymPlan](c, q, pageFromQuery(c))
	}
}

func CreateGymPlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req GymPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		p := &models.GymPlan{
			GymID:          gymID,
			Name:           req.Name,
			Type:           types.PlanType(req.Type),
			Tier:           req.Tier,
			Price:          req.Price,
			CoinCount:      req.CoinCount,
			DurationMonths: req.DurationMonths,
		}
		if err := db.WithContext(c.Request.Context()).Create(p).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, p)
	}
}

func UpdateGymPlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req GymPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		p, ok := takeScoped[models.GymPlan](c, db, gymID, id)
		if !ok {
			return
		}
		p.Name = req.Name
		p.Type = types.PlanType(req.Type)
		p.Tier = req.Tier
		p.Price = req.Price
		p.CoinCount = req.CoinCount
		p.DurationMonths = req.DurationMonths
		if err := db.WithContext(c.Request.Context()).Save(p).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, p)
	}
}

func DeleteGymPlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		deleteScoped[models.GymPlan](c, db, gymID, id, "plan deleted")
	}
}

func RegisterGymPlanRoutes(r gin.IRouter, db *gorm.DB) {
	r.GET("/gym-plans", ListGymPlans(db))
	r.POST("/gym-plans", CreateGymPlan(db))
	r.PUT("/gym-plans/:id", UpdateGymPlan(db))
	r.DELETE("/gym-plans/:id", DeleteGymPlan(db))
}
