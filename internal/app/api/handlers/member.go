package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/authtoken"
	"github.com/gymstack/gymhub/pkg/response"
	"github.com/gymstack/gymhub/pkg/types"
)

type CreateMemberRequest struct {
	Name         string     `json:"name" binding:"required,min=2,max=255"`
	Email        string     `json:"email" binding:"required,email"`
	Phone        string     `json:"phone" binding:"omitempty,max=64"`
	Password     string     `json:"password" binding:"required,min=8"`
	BranchID     *uint      `json:"branch_id"`
	TrainerID    *uint      `json:"trainer_id"`
	GymPlanID    *uint      `json:"gym_plan_id"`
	PlanType     string     `json:"plan_type" binding:"omitempty,oneof=monthly coin bundle"`
	PlanTier     string     `json:"plan_tier" binding:"omitempty,max=64"`
	BundleMonths int        `json:"bundle_months" binding:"gte=0"`
	CoinBalance  int        `json:"coin_balance" binding:"gte=0"`
	CoinPackage  string     `json:"coin_package" binding:"omitempty,max=64"`
	StartDate    *time.Time `json:"start_date"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

type UpdateMemberRequest struct {
	Name         *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Phone        *string    `json:"phone" binding:"omitempty,max=64"`
	BranchID     *uint      `json:"branch_id"`
	TrainerID    *uint      `json:"trainer_id"`
	GymPlanID    *uint      `json:"gym_plan_id"`
	PlanType     *string    `json:"plan_type" binding:"omitempty,oneof=monthly coin bundle"`
	PlanTier     *string    `json:"plan_tier" binding:"omitempty,max=64"`
	BundleMonths *int       `json:"bundle_months" binding:"omitempty,gte=0"`
	CoinBalance  *int       `json:"coin_balance" binding:"omitempty,gte=0"`
	CoinPackage  *string    `json:"coin_package" binding:"omitempty,max=64"`
	StartDate    *time.Time `json:"start_date"`
	ExpiresAt    *time.Time `json:"expires_at"`
	Status       *string    `json:"status" binding:"omitempty,oneof=Active Expiring Expired Frozen"`
}

// @Summary      List members
// @Description  Members of the effective gym, optionally filtered by status or branch.
// @Tags         Members
// @Produce      json
// @Success      200 {object} types.Paged[models.Member]
// @Router       /api/v1/members [get]
func ListMembers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.Member{}).
			Where("gym_id = ?", gymID).Order("id")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if branch := c.Query("branch_id"); branch != "" {
			q = q.Where("branch_id = ?", branch)
		}
		if search := c.Query("search"); search != "" {
			q = q.Where("name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
		}
		respondList[*models.Member](c, q, pageFromQuery(c))
	}
}

func GetMember(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		m, ok := takeScoped[models.Member](c, db, gymID, id)
		if !ok {
			return
		}
		response.OK(c, m)
	}
}

// @Summary      Create member
// @Tags         Members
// @Accept       json
// @Produce      json
// @Param        request body CreateMemberRequest true "Member details"
// @Success      201 {object} models.Member
// @Router       /api/v1/members [post]
func CreateMember(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req CreateMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var taken int64
		if err := db.WithContext(c.Request.Context()).Model(&models.Member{}).Where("email = ?", req.Email).Count(&taken).Error; err != nil {
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
		planType := types.PlanType(req.PlanType)
		if req.PlanType == "" {
			planType = types.PlanTypeMonthly
		}
		m := &models.Member{
			GymID:        gymID,
			BranchID:     req.BranchID,
			TrainerID:    req.TrainerID,
			GymPlanID:    req.GymPlanID,
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: hash,
			PlanType:     planType,
			PlanTier:     req.PlanTier,
			BundleMonths: req.BundleMonths,
			CoinBalance:  req.CoinBalance,
			CoinPackage:  req.CoinPackage,
			StartDate:    req.StartDate,
			ExpiresAt:    req.ExpiresAt,
			Status:       types.MemberStatusActive,
		}
		if err := db.WithContext(c.Request.Context()).Create(m).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, m)
	}
}

func UpdateMember(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UpdateMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		m, ok := takeScoped[models.Member](c, db, gymID, id)
		if !ok {
			return
		}
		if req.Name != nil {
			m.Name = *req.Name
		}
		if req.Phone != nil {
			m.Phone = *req.Phone
		}
		if req.BranchID != nil {
			m.BranchID = req.BranchID
		}
		if req.TrainerID != nil {
			m.TrainerID = req.TrainerID
		}
		if req.GymPlanID != nil {
			m.GymPlanID = req.GymPlanID
		}
		if req.PlanType != nil {
			m.PlanType = types.PlanType(*req.PlanType)
		}
		if req.PlanTier != nil {
			m.PlanTier = *req.PlanTier
		}
		if req.BundleMonths != nil {
			m.BundleMonths = *req.BundleMonths
		}
		if req.CoinBalance != nil {
			m.CoinBalance = *req.CoinBalance
		}
		if req.CoinPackage != nil {
			m.CoinPackage = *req.CoinPackage
		}
		if req.StartDate != nil {
			m.StartDate = req.StartDate
		}
		if req.ExpiresAt != nil {
			m.ExpiresAt = req.ExpiresAt
		}
		if req.Status != nil {
			m.Status = types.MemberStatus(*req.Status)
		}
		if err := db.WithContext(c.Request.Context()).Save(m).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, m)
	}
}

func DeleteMember(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		deleteScoped[models.Member](c, db, gymID, id, "member deleted")
	}
}

func RegisterMemberRoutes(r gin.IRouter, db *gorm.DB) {
	r.GET("/members", ListMembers(db))
	r.GET("/members/:id", GetMember(db))
	r.POST("/members", CreateMember(db))
	r.PUT("/members/:id", UpdateMember(db))
	r.DELETE("/members/:id", DeleteMember(db))
}
