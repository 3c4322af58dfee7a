package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/gymstack/gymhub/internal/app/api/middleware"
	attsvc "github.com/gymstack/gymhub/internal/app/service/attendance"
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/response"
)

type CheckInRequest struct {
	MemberID uint  `json:"member_id" binding:"required"`
	BranchID *uint `json:"branch_id"`
}

type CheckOutRequest struct {
	MemberID uint `json:"member_id" binding:"required"`
}

// @Summary      Check a member in
// @Description  Opens a visit. Coin-plan members spend one coin atomically.
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        request body CheckInRequest true "Member and optional branch"
// @Success      201 {object} models.Attendance
// @Router       /api/v1/attendance/check-in [post]
func CheckIn(svc *attsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req CheckInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		att, err := svc.CheckIn(c.Request.Context(), gymID, req.MemberID, req.BranchID)
		switch {
		case errors.Is(err, attsvc.ErrMemberNotFound):
			mw.CheckInsTotal.WithLabelValues("rejected").Inc()
			response.NotFound(c)
			return
		case errors.Is(err, attsvc.ErrMemberInactive),
			errors.Is(err, attsvc.ErrAlreadyCheckedIn),
			errors.Is(err, attsvc.ErrNoCoinsRemaining):
			mw.CheckInsTotal.WithLabelValues("rejected").Inc()
			response.Conflict(c, err.Error())
			return
		case err != nil:
			response.Internal(c)
			return
		}
		mw.CheckInsTotal.WithLabelValues("ok").Inc()
		response.Created(c, att)
	}
}

// @Summary      Check a member out
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        request body CheckOutRequest true "Member"
// @Success      200 {object} models.Attendance
// @Router       /api/v1/attendance/check-out [post]
func CheckOut(svc *attsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req CheckOutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		att, err := svc.CheckOut(c.Request.Context(), gymID, req.MemberID)
		if errors.Is(err, attsvc.ErrNoOpenCheckIn) {
			response.Conflict(c, err.Error())
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, att)
	}
}

func ListAttendance(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.Attendance{}).
			Where("gym_id = ?", gymID).Order("check_in_at DESC")
		if member := c.Query("member_id"); member != "" {
			q = q.Where("member_id = ?", member)
		}
		if day := c.Query("date"); day != "" {
			if d, err := time.Parse("2006-01-02", day); err == nil {
				q = q.Where("check_in_at >= ? AND check_in_at < ?", d, d.AddDate(0, 0, 1))
			}
		}
		respondList[*models.Attendance](c, q, pageFromQuery(c))
	}
}

func RegisterAttendanceRoutes(r gin.IRouter, db *gorm.DB, svc *attsvc.Service) {
	r.GET("/attendance", ListAttendance(db))
	r.POST("/attendance/check-in", CheckIn(svc))
	r.POST("/attendance/check-out", CheckOut(svc))
}
