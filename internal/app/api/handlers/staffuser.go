package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/gymstack/gymhub/internal/app/api/middleware"
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/authtoken"
	"github.com/gymstack/gymhub/pkg/response"
	"github.com/gymstack/gymhub/pkg/types"
)

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=gym_admin gym_staff"`
	RoleID   *uint  `json:"role_id"`
}

type UpdateStaffRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Role     *string `json:"role" binding:"omitempty,oneof=gym_admin gym_staff"`
	RoleID   *uint   `json:"role_id"`
}

func ListStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.User{}).
			Preload("CustomRole").Where("gym_id = ?", gymID).Order("id")
		respondList[*models.User](c, q, pageFromQuery(c))
	}
}

// staffRole validates a custom role reference within the tenant.
func staffRole(c *gin.Context, db *gorm.DB, gymID uint, roleID *uint) bool {
	if roleID == nil {
		return true
	}
	_, ok := takeScoped[models.Role](c, db, gymID, *roleID)
	return ok
}

func CreateStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req CreateStaffRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var taken int64
		if err := db.WithContext(c.Request.Context()).Model(&models.User{}).Where("email = ?", req.Email).Count(&taken).Error; err != nil {
			response.Internal(c)
			return
		}
		if taken > 0 {
			response.Conflict(c, "email already registered")
			return
		}
		if !staffRole(c, db, gymID, req.RoleID) {
			return
		}
		hash, err := authtoken.HashPassword(req.Password)
		if err != nil {
			response.Internal(c)
			return
		}
		role := types.StaffRole(req.Role)
		if req.Role == "" {
			role = types.StaffRoleGymStaff
		}
		u := &models.User{
			GymID:        &gymID,
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         role,
			RoleID:       req.RoleID,
		}
		if err := db.WithContext(c.Request.Context()).Create(u).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, u)
	}
}

func UpdateStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UpdateStaffRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		u, ok := takeScoped[models.User](c, db, gymID, id)
		if !ok {
			return
		}
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Password != nil {
			hash, err := authtoken.HashPassword(*req.Password)
			if err != nil {
				response.Internal(c)
				return
			}
			u.PasswordHash = hash
		}
		if req.Role != nil {
			u.Role = types.StaffRole(*req.Role)
		}
		if req.RoleID != nil {
			if !staffRole(c, db, gymID, req.RoleID) {
				return
			}
			u.RoleID = req.RoleID
		}
		if err := db.WithContext(c.Request.Context()).Omit("CustomRole").Save(u).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, u)
	}
}

// DeleteStaff removes a staff account. Callers cannot delete themselves.
func DeleteStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		if self, _ := mw.CurrentStaff(c); self != nil && self.ID == id {
			response.Conflict(c, "cannot delete your own account")
			return
		}
		deleteScoped[models.User](c, db, gymID, id, "user deleted")
	}
}

func RegisterStaffRoutes(r gin.IRouter, db *gorm.DB) {
	r.GET("/users", mw.RequirePermission("users.view"), ListStaff(db))
	r.POST("/users", mw.RequirePermission("users.create"), CreateStaff(db))
	r.PUT("/users/:id", mw.RequirePermission("users.manage"), UpdateStaff(db))
	r.DELETE("/users/:id", mw.RequirePermission("users.manage"), DeleteStaff(db))
}
