package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/gymstack/gymhub/internal/app/api/middleware"
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/response"
)

type RoleRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=255"`
	Slug        string   `json:"slug" binding:"required,min=2,max=64"`
	Permissions []string `json:"permissions" binding:"required,min=1"`
}

// ListPermissionCatalog returns the fixed set of grantable permissions.
func ListPermissionCatalog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var perms []*models.Permission
		if err := db.WithContext(c.Request.Context()).Order("group_name, slug").Find(&perms).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, perms)
	}
}

func ListRoles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.Role{}).
			Preload("Permissions").Where("gym_id = ?", gymID).Order("id")
		respondList[*models.Role](c, q, pageFromQuery(c))
	}
}

// rolePermissions resolves permission slugs against the catalog. Unknown
// slugs fail the whole request.
func rolePermissions(c *gin.Context, db *gorm.DB, slugs []string) ([]models.Permission, bool) {
	var perms []models.Permission
	if err := db.WithContext(c.Request.Context()).Where("slug IN ?", slugs).Find(&perms).Error; err != nil {
		response.Internal(c)
		return nil, false
	}
	if len(perms) != len(slugs) {
		response.BadRequest(c, "unknown permission slug")
		return nil, false
	}
	return perms, true
}

func CreateRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req RoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var taken int64
		if err := db.WithContext(c.Request.Context()).Model(&models.Role{}).
			Where("gym_id = ? AND slug = ?", gymID, req.Slug).Count(&taken).Error; err != nil {
			response.Internal(c)
			return
		}
		if taken > 0 {
			response.Conflict(c, "role slug already taken")
			return
		}
		perms, ok := rolePermissions(c, db, req.Permissions)
		if !ok {
			return
		}
		role := &models.Role{GymID: gymID, Name: req.Name, Slug: req.Slug, Permissions: perms}
		if err := db.WithContext(c.Request.Context()).Create(role).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, role)
	}
}

func UpdateRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req RoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		role, ok := takeScoped[models.Role](c, db, gymID, id)
		if !ok {
			return
		}
		perms, ok := rolePermissions(c, db, req.Permissions)
		if !ok {
			return
		}
		role.Name = req.Name
		role.Slug = req.Slug
		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Permissions").Save(role).Error; err != nil {
				return err
			}
			return tx.Model(role).Association("Permissions").Replace(perms)
		})
		if err != nil {
			response.Internal(c)
			return
		}
		role.Permissions = perms
		response.OK(c, role)
	}
}

// DeleteRole removes a custom role. Staff still assigned to it fall back to
// their built-in role's defaults.
func DeleteRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		role, ok := takeScoped[models.Role](c, db, gymID, id)
		if !ok {
			return
		}
		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.User{}).Where("role_id = ?", role.ID).Update("role_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Model(role).Association("Permissions").Clear(); err != nil {
				return err
			}
			return tx.Delete(role).Error
		})
		if err != nil {
			response.Internal(c)
			return
		}
		response.Message(c, "role deleted")
	}
}

func RegisterRoleRoutes(r gin.IRouter, db *gorm.DB) {
	r.GET("/permissions", mw.RequirePermission("roles.view"), ListPermissionCatalog(db))
	r.GET("/roles", mw.RequirePermission("roles.view"), ListRoles(db))
	r.POST("/roles", mw.RequirePermission("roles.manage"), CreateRole(db))
	r.PUT("/roles/:id", mw.RequirePermission("roles.manage"), UpdateRole(db))
	r.DELETE("/roles/:id", mw.RequirePermission("roles.manage"), DeleteRole(db))
}
