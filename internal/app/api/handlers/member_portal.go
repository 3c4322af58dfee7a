package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/gymstack/gymhub/internal/app/api/middleware"
	annsvc "github.com/gymstack/gymhub/internal/app/service/announcement"
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/authtoken"
	"github.com/gymstack/gymhub/pkg/response"
	"github.com/gymstack/gymhub/pkg/types"
)

type DietLogRequest struct {
	LoggedAt *time.Time `json:"logged_at"`
	Meal     string     `json:"meal" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Food     string     `json:"food" binding:"required,max=512"`
	Calories int        `json:"calories" binding:"gte=0"`
}

type ExerciseLogRequest struct {
	ExerciseID *uint      `json:"exercise_id"`
	LoggedAt   *time.Time `json:"logged_at"`
	Sets       int        `json:"sets" binding:"gte=0"`
	Reps       int        `json:"reps" binding:"gte=0"`
	WeightKg   float64    `json:"weight_kg" binding:"gte=0"`
	Notes      string     `json:"notes"`
}

type MemberMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

// @Summary      Member profile
// @Tags         MemberPortal
// @Produce      json
// @Success      200 {object} models.Member
// @Router       /api/v1/member/profile [get]
func MemberProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		response.OK(c, m)
	}
}

type MemberProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=64"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// MemberUpdateProfile lets a member edit their own contact details and
// credential. Plan and billing fields stay staff-only.
func MemberUpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		var req MemberProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		if req.Name != nil {
			m.Name = *req.Name
		}
		if req.Phone != nil {
			m.Phone = *req.Phone
		}
		if req.Password != nil {
			hash, err := authtoken.HashPassword(*req.Password)
			if err != nil {
				response.Internal(c)
				return
			}
			m.PasswordHash = hash
		}
		if err := db.WithContext(c.Request.Context()).Save(m).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, m)
	}
}

func MemberAttendanceHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		q := db.WithContext(c.Request.Context()).Model(&models.Attendance{}).
			Where("member_id = ? AND gym_id = ?", m.ID, m.GymID).Order("check_in_at DESC")
		respondList[*models.Attendance](c, q, pageFromQuery(c))
	}
}

func MemberWorkoutPlans(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		var plans []*models.WorkoutPlan
		err := db.WithContext(c.Request.Context()).
			Preload("Exercises.Exercise").
			Where("member_id = ? AND gym_id = ?", m.ID, m.GymID).
			Order("id DESC").Find(&plans).Error
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, plans)
	}
}

func MemberListDietLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		q := db.WithContext(c.Request.Context()).Model(&models.MemberDietLog{}).
			Where("member_id = ?", m.ID).Order("logged_at DESC")
		respondList[*models.MemberDietLog](c, q, pageFromQuery(c))
	}
}

func MemberCreateDietLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		var req DietLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		loggedAt := time.Now()
		if req.LoggedAt != nil {
			loggedAt = *req.LoggedAt
		}
		log := &models.MemberDietLog{
			GymID:    m.GymID,
			MemberID: m.ID,
			LoggedAt: loggedAt,
			Meal:     req.Meal,
			Food:     req.Food,
			Calories: req.Calories,
		}
		if err := db.WithContext(c.Request.Context()).Create(log).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, log)
	}
}

func MemberDeleteDietLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		id, ok := pathID(c)
		if !ok {
			return
		}
		res := db.WithContext(c.Request.Context()).
			Where("id = ? AND member_id = ?", id, m.ID).Delete(&models.MemberDietLog{})
		if res.Error != nil {
			response.Internal(c)
			return
		}
		if res.RowsAffected == 0 {
			response.NotFound(c)
			return
		}
		response.Message(c, "log deleted")
	}
}

func MemberListExerciseLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		q := db.WithContext(c.Request.Context()).Model(&models.MemberExerciseLog{}).
			Where("member_id = ?", m.ID).Order("logged_at DESC")
		respondList[*models.MemberExerciseLog](c, q, pageFromQuery(c))
	}
}

func MemberCreateExerciseLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		var req ExerciseLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		loggedAt := time.Now()
		if req.LoggedAt != nil {
			loggedAt = *req.LoggedAt
		}
		log := &models.MemberExerciseLog{
			GymID:      m.GymID,
			MemberID:   m.ID,
			ExerciseID: req.ExerciseID,
			LoggedAt:   loggedAt,
			Sets:       req.Sets,
			Reps:       req.Reps,
			WeightKg:   req.WeightKg,
			Notes:      req.Notes,
		}
		if err := db.WithContext(c.Request.Context()).Create(log).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, log)
	}
}

func MemberDeleteExerciseLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		id, ok := pathID(c)
		if !ok {
			return
		}
		res := db.WithContext(c.Request.Context()).
			Where("id = ? AND member_id = ?", id, m.ID).Delete(&models.MemberExerciseLog{})
		if res.Error != nil {
			response.Internal(c)
			return
		}
		if res.RowsAffected == 0 {
			response.NotFound(c)
			return
		}
		response.Message(c, "log deleted")
	}
}

func MemberListMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		q := db.WithContext(c.Request.Context()).Model(&models.MemberMessage{}).
			Where("member_id = ?", m.ID).Order("id DESC")
		respondList[*models.MemberMessage](c, q, pageFromQuery(c))
	}
}

func MemberSendMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		var req MemberMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		msg := &models.MemberMessage{
			GymID:      m.GymID,
			MemberID:   m.ID,
			SenderKind: "member",
			Body:       req.Body,
		}
		if err := db.WithContext(c.Request.Context()).Create(msg).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, msg)
	}
}

// MemberAnnouncements is the member feed: the gym's live announcements plus
// platform-wide ones.
func MemberAnnouncements(svc *annsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, _ := mw.CurrentMember(c)
		items, err := svc.ActiveFor(c.Request.Context(), types.GymID(m.GymID), time.Now())
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, items)
	}
}

// RegisterMemberPortalRoutes mounts the member self-service surface. The
// group must already carry MemberAuth.
func RegisterMemberPortalRoutes(r gin.IRouter, db *gorm.DB, ann *annsvc.Service) {
	r.GET("/profile", MemberProfile())
	r.PUT("/profile", MemberUpdateProfile(db))
	r.GET("/attendance", MemberAttendanceHistory(db))
	r.GET("/workout-plans", MemberWorkoutPlans(db))
	r.GET("/announcements", MemberAnnouncements(ann))

	r.GET("/diet-logs", MemberListDietLogs(db))
	r.POST("/diet-logs", MemberCreateDietLog(db))
	r.DELETE("/diet-logs/:id", MemberDeleteDietLog(db))

	r.GET("/exercise-logs", MemberListExerciseLogs(db))
	r.POST("/exercise-logs", MemberCreateExerciseLog(db))
	r.DELETE("/exercise-logs/:id", MemberDeleteExerciseLog(db))

	r.GET("/messages", MemberListMessages(db))
	r.POST("/messages", MemberSendMessage(db))
}
