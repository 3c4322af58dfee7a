package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	branchsvc "github.com/gymstack/gymhub/internal/app/service/branch"
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/response"
)

type BranchRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=255"`
	Address string `json:"address" binding:"omitempty,max=512"`
}

func ListBranches(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.Branch{}).
			Where("gym_id = ?", gymID).Order("id")
		respondList[*models.Branch](c, q, pageFromQuery(c))
	}
}

func GetBranch(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		b, ok := takeScoped[models.Branch](c, db, gymID, id, "Trainers")
		if !ok {
			return
		}
		response.OK(c, b)
	}
}

func CreateBranch(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req BranchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		b := &models.Branch{GymID: gymID, Name: req.Name, Address: req.Address}
		if err := db.WithContext(c.Request.Context()).Create(b).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, b)
	}
}

func UpdateBranch(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req BranchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		b, ok := takeScoped[models.Branch](c, db, gymID, id)
		if !ok {
			return
		}
		b.Name = req.Name
		b.Address = req.Address
		if err := db.WithContext(c.Request.Context()).Omit("Trainers").Save(b).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, b)
	}
}

func DeleteBranch(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		deleteScoped[models.Branch](c, db, gymID, id, "branch deleted")
	}
}

// RefreshBranch recomputes the branch's denormalized member count and
// current-month revenue.
func RefreshBranch(svc *branchsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		b, err := svc.RefreshAggregates(c.Request.Context(), gymID, id, time.Now())
		if errors.Is(err, branchsvc.ErrBranchNotFound) {
			response.NotFound(c)
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, b)
	}
}

func RegisterBranchRoutes(r gin.IRouter, db *gorm.DB, svc *branchsvc.Service) {
	r.GET("/branches", ListBranches(db))
	r.GET("/branches/:id", GetBranch(db))
	r.POST("/branches", CreateBranch(db))
	r.PUT("/branches/:id", UpdateBranch(db))
	r.DELETE("/branches/:id", DeleteBranch(db))
	r.POST("/branches/:id/refresh", RefreshBranch(svc))
}
