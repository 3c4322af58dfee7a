package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/gymstack/gymhub/internal/app/api/middleware"
	"github.com/gymstack/gymhub/internal/app/service/tenant"
	"github.com/gymstack/gymhub/pkg/response"
	"github.com/gymstack/gymhub/pkg/types"
)

// MsgGymContextRequired is returned when a staff operation needs a concrete
// gym and the request resolves to platform scope.
const MsgGymContextRequired = "Gym context required"

// requestScope resolves the effective tenant for a staff request: the
// caller's own gym, or the gym_id query override for super admins.
func requestScope(c *gin.Context) types.GymID {
	u, _ := mw.CurrentStaff(c)
	return tenant.Resolve(u, c.Query("gym_id"))
}

// requireScope is the strict variant. It writes a 403 and returns false when
// the request resolves to platform scope.
func requireScope(c *gin.Context) (uint, bool) {
	u, _ := mw.CurrentStaff(c)
	scope, err := tenant.ResolveStrict(u, c.Query("gym_id"))
	if err != nil {
		response.Forbidden(c, MsgGymContextRequired)
		return 0, false
	}
	return uint(scope), true
}

// pageFromQuery reads optional page/per_page query params. Absent or zero
// per_page disables pagination.
func pageFromQuery(c *gin.Context) types.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	if perPage < 0 {
		perPage = 0
	}
	return types.Page{Number: page, PerPage: perPage}
}

// pathID parses the :id route param. A non-numeric id is a 400.
func pathID(c *gin.Context) (uint, bool) {
	return pathUint(c, "id")
}

func pathUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// respondList runs a prepared list query, applying pagination when enabled,
// and writes the result. The query must already carry its Where clauses.
func respondList[T any](c *gin.Context, q *gorm.DB, page types.Page) {
	var items []T
	if !page.Enabled() {
		if err := q.Find(&items).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, items)
		return
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		response.Internal(c)
		return
	}
	if err := q.Offset(page.Offset()).Limit(page.PerPage).Find(&items).Error; err != nil {
		response.Internal(c)
		return
	}
	response.OK(c, types.Paged[T]{Items: items, Total: total, Page: page.Number, PerPage: page.PerPage})
}

// takeScoped loads one row by id within a tenant. Rows belonging to another
// gym come back as 404, indistinguishable from rows that do not exist.
func takeScoped[T any](c *gin.Context, db *gorm.DB, gymID uint, id uint, preloads ...string) (*T, bool) {
	q := db.WithContext(c.Request.Context())
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var row T
	err := q.Where("id = ? AND gym_id = ?", id, gymID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(c)
		return nil, false
	}
	if err != nil {
		response.Internal(c)
		return nil, false
	}
	return &row, true
}

// deleteScoped removes one tenant-scoped row by id, answering 404 when the
// row is missing or owned by another gym.
func deleteScoped[T any](c *gin.Context, db *gorm.DB, gymID uint, id uint, doneMsg string) {
	res := db.WithContext(c.Request.Context()).Where("id = ? AND gym_id = ?", id, gymID).Delete(new(T))
	if res.Error != nil {
		response.Internal(c)
		return
	}
	if res.RowsAffected == 0 {
		response.NotFound(c)
		return
	}
	response.Message(c, doneMsg)
}
