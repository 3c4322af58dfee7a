package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/gymstack/gymhub/internal/app/api/middleware"
	annsvc "github.com/gymstack/gymhub/internal/app/service/announcement"
	"github.com/gymstack/gymhub/internal/app/service/statistics"
	"github.com/gymstack/gymhub/pkg/response"
)

// Me returns the authenticated staff principal with its role composition.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := mw.CurrentStaff(c)
		response.OK(c, u)
	}
}

// @Summary      Gym dashboard
// @Description  Headline counts and revenue for the effective gym.
// @Tags         Dashboard
// @Produce      json
// @Success      200 {object} statistics.GymStats
// @Router       /api/v1/dashboard [get]
func GymDashboard(stats *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		s, err := stats.Gym(c.Request.Context(), gymID, time.Now())
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, s)
	}
}

// GymAnnouncements is the staff feed: the gym's own live announcements plus
// platform-wide ones. A super admin pinning gym_id=platform gets exactly the
// platform-wide rows.
func GymAnnouncements(svc *annsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ActiveFor(c.Request.Context(), requestScope(c), time.Now())
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, items)
	}
}

func RegisterDashboardRoutes(r gin.IRouter, stats *statistics.Service, ann *annsvc.Service) {
	r.GET("/me", Me())
	r.GET("/dashboard/stats", GymDashboard(stats))
	r.GET("/announcements", GymAnnouncements(ann))
}
