package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/app/service/statistics"
	subsvc "github.com/gymstack/gymhub/internal/app/service/subscription"
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/response"
	"github.com/gymstack/gymhub/pkg/types"
)

// @Summary      Platform statistics (Super admin)
// @Description  Gym counts across the whole platform.
// @Tags         SuperAdmin
// @Produce      json
// @Success      200 {object} statistics.PlatformStats
// @Router       /api/v1/super-admin/stats [get]
func PlatformStats(stats *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := stats.Platform(c.Request.Context())
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, s)
	}
}

// @Summary      List gyms (Super admin)
// @Description  All tenants with their active subscription attached.
// @Tags         SuperAdmin
// @Produce      json
// @Success      200 {object} types.Paged[models.Gym]
// @Router       /api/v1/super-admin/gyms [get]
func ListGyms(db *gorm.DB, sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := pageFromQuery(c)
		q := db.WithContext(c.Request.Context()).Model(&models.Gym{}).Order("id")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		var gyms []*models.Gym
		var total int64
		if page.Enabled() {
			if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
				response.Internal(c)
				return
			}
			q = q.Offset(page.Offset()).Limit(page.PerPage)
		}
		if err := q.Find(&gyms).Error; err != nil {
			response.Internal(c)
			return
		}
		if err := sub.AttachActive(c.Request.Context(), gyms); err != nil {
			response.Internal(c)
			return
		}
		if page.Enabled() {
			response.OK(c, types.Paged[*models.Gym]{Items: gyms, Total: total, Page: page.Number, PerPage: page.PerPage})
			return
		}
		response.OK(c, gyms)
	}
}

type CreateGymRequest struct {
	Name     string         `json:"name" binding:"required,min=2,max=255"`
	Slug     string         `json:"slug" binding:"required,min=2,max=255"`
	Email    string         `json:"email" binding:"required,email"`
	Phone    string         `json:"phone" binding:"omitempty,max=64"`
	Address  string         `json:"address" binding:"omitempty,max=512"`
	Status   string         `json:"status" binding:"omitempty,oneof=trial active suspended cancelled"`
	Settings map[string]any `json:"settings"`
}

// CreateGym provisions a tenant directly, without the self-service signup
// flow. No owner account is created; staff are added separately.
func CreateGym(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGymRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var taken int64
		if err := db.WithContext(c.Request.Context()).Model(&models.Gym{}).Where("slug = ?", req.Slug).Count(&taken).Error; err != nil {
			response.Internal(c)
			return
		}
		if taken > 0 {
			response.Conflict(c, "gym slug already taken")
			return
		}
		status := types.GymStatusTrial
		if req.Status != "" {
			status = types.GymStatus(req.Status)
		}
		gym := &models.Gym{
			Name:    req.Name,
			Slug:    req.Slug,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
			Status:  status,
		}
		if req.Settings != nil {
			gym.Settings = datatypes.JSONMap(req.Settings)
		}
		if err := db.WithContext(c.Request.Context()).Create(gym).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, gym)
	}
}

func GetGym(db *gorm.DB, sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var gym models.Gym
		err := db.WithContext(c.Request.Context()).Take(&gym, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		active, err := sub.ActiveSubscription(c.Request.Context(), gym.ID)
		if err != nil {
			response.Internal(c)
			return
		}
		gym.ActiveSubscription = active
		response.OK(c, &gym)
	}
}

type UpdateGymRequest struct {
	Name     *string        `json:"name" binding:"omitempty,min=2,max=255"`
	Email    *string        `json:"email" binding:"omitempty,email"`
	Phone    *string        `json:"phone" binding:"omitempty,max=64"`
	Address  *string        `json:"address" binding:"omitempty,max=512"`
	Status   *string        `json:"status" binding:"omitempty,oneof=trial active suspended cancelled"`
	Settings map[string]any `json:"settings"`
}

func UpdateGym(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UpdateGymRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var gym models.Gym
		err := db.WithContext(c.Request.Context()).Take(&gym, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		if req.Name != nil {
			gym.Name = *req.Name
		}
		if req.Email != nil {
			gym.Email = *req.Email
		}
		if req.Phone != nil {
			gym.Phone = *req.Phone
		}
		if req.Address != nil {
			gym.Address = *req.Address
		}
		if req.Status != nil {
			gym.Status = types.GymStatus(*req.Status)
		}
		if req.Settings != nil {
			gym.Settings = datatypes.JSONMap(req.Settings)
		}
		if err := db.WithContext(c.Request.Context()).Save(&gym).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, &gym)
	}
}

func DeleteGym(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		res := db.WithContext(c.Request.Context()).Delete(&models.Gym{}, id)
		if res.Error != nil {
			response.Internal(c)
			return
		}
		if res.RowsAffected == 0 {
			response.NotFound(c)
			return
		}
		response.Message(c, "gym deleted")
	}
}

type SubscriptionPlanRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=255"`
	Slug            string  `json:"slug" binding:"required,min=2,max=64"`
	Price           float64 `json:"price" binding:"gte=0"`
	BillingInterval string  `json:"billing_interval" binding:"omitempty,oneof=monthly yearly"`
	MaxMembers      int     `json:"max_members" binding:"gte=0"`
	MaxBranches     int     `json:"max_branches" binding:"gte=0"`
}

func ListSubscriptionPlans(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.WithContext(c.Request.Context()).Model(&models.SubscriptionPlan{}).Order("price")
		respondList[*models.SubscriptionPlan](c, q, pageFromQuery(c))
	}
}

func CreateSubscriptionPlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubscriptionPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var taken int64
		if err := db.WithContext(c.Request.Context()).Model(&models.SubscriptionPlan{}).Where("slug = ?", req.Slug).Count(&taken).Error; err != nil {
			response.Internal(c)
			return
		}
		if taken > 0 {
			response.Conflict(c, "plan slug already taken")
			return
		}
		interval := req.BillingInterval
		if interval == "" {
			interval = "monthly"
		}
		plan := &models.SubscriptionPlan{
			Name:            req.Name,
			Slug:            req.Slug,
			Price:           req.Price,
			BillingInterval: interval,
			MaxMembers:      req.MaxMembers,
			MaxBranches:     req.MaxBranches,
		}
		if err := db.WithContext(c.Request.Context()).Create(plan).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, plan)
	}
}

func UpdateSubscriptionPlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req SubscriptionPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var plan models.SubscriptionPlan
		err := db.WithContext(c.Request.Context()).Take(&plan, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		plan.Name = req.Name
		plan.Slug = req.Slug
		plan.Price = req.Price
		if req.BillingInterval != "" {
			plan.BillingInterval = req.BillingInterval
		}
		plan.MaxMembers = req.MaxMembers
		plan.MaxBranches = req.MaxBranches
		if err := db.WithContext(c.Request.Context()).Save(&plan).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, &plan)
	}
}

func DeleteSubscriptionPlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		res := db.WithContext(c.Request.Context()).Delete(&models.SubscriptionPlan{}, id)
		if res.Error != nil {
			response.Internal(c)
			return
		}
		if res.RowsAffected == 0 {
			response.NotFound(c)
			return
		}
		response.Message(c, "plan deleted")
	}
}

type CreateSubscriptionRequest struct {
	GymID              uint       `json:"gym_id" binding:"required"`
	SubscriptionPlanID uint       `json:"subscription_plan_id" binding:"required"`
	Status             string     `json:"status" binding:"omitempty,oneof=trial active past_due cancelled expired"`
	StartsAt           *time.Time `json:"starts_at"`
	EndsAt             *time.Time `json:"ends_at"`
}

// ListSubscriptions returns a gym's full billing history, newest row first.
func ListSubscriptions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.WithContext(c.Request.Context()).Model(&models.Subscription{}).Preload("Plan").Order("id DESC")
		if gymID := c.Query("gym_id"); gymID != "" {
			q = q.Where("gym_id = ?", gymID)
		}
		respondList[*models.Subscription](c, q, pageFromQuery(c))
	}
}

// CreateSubscription appends a billing row. A new trial/active row
// supersedes older ones by id order; nothing is updated in place.
func CreateSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		status := types.SubscriptionStatus(req.Status)
		if req.Status == "" {
			status = types.SubscriptionStatusActive
		}
		sub := &models.Subscription{
			GymID:              req.GymID,
			SubscriptionPlanID: req.SubscriptionPlanID,
			Status:             status,
			StartsAt:           req.StartsAt,
			EndsAt:             req.EndsAt,
		}
		if err := db.WithContext(c.Request.Context()).Create(sub).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, sub)
	}
}

type UpdateSubscriptionRequest struct {
	Status   *string    `json:"status" binding:"omitempty,oneof=trial active past_due cancelled expired"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

func UpdateSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UpdateSubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var sub models.Subscription
		err := db.WithContext(c.Request.Context()).Take(&sub, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		if req.Status != nil {
			sub.Status = types.SubscriptionStatus(*req.Status)
		}
		if req.StartsAt != nil {
			sub.StartsAt = req.StartsAt
		}
		if req.EndsAt != nil {
			sub.EndsAt = req.EndsAt
		}
		if err := db.WithContext(c.Request.Context()).Save(&sub).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, &sub)
	}
}

func DeleteSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		res := db.WithContext(c.Request.Context()).Delete(&models.Subscription{}, id)
		if res.Error != nil {
			response.Internal(c)
			return
		}
		if res.RowsAffected == 0 {
			response.NotFound(c)
			return
		}
		response.Message(c, "subscription deleted")
	}
}

type AnnouncementRequest struct {
	GymID       *uint      `json:"gym_id"`
	Title       string     `json:"title" binding:"required,min=2,max=255"`
	Body        string     `json:"body"`
	IsPublished bool       `json:"is_published"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

// ListAllAnnouncements is the management view: every row regardless of
// publication state or window.
func ListAllAnnouncements(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.WithContext(c.Request.Context()).Model(&models.Announcement{}).Order("id DESC")
		respondList[*models.Announcement](c, q, pageFromQuery(c))
	}
}

func CreateAnnouncement(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnnouncementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		a := &models.Announcement{
			GymID:       req.GymID,
			Title:       req.Title,
			Body:        req.Body,
			IsPublished: req.IsPublished,
			StartsAt:    req.StartsAt,
			EndsAt:      req.EndsAt,
		}
		if err := db.WithContext(c.Request.Context()).Create(a).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, a)
	}
}

func UpdateAnnouncement(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req AnnouncementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var a models.Announcement
		err := db.WithContext(c.Request.Context()).Take(&a, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		a.GymID = req.GymID
		a.Title = req.Title
		a.Body = req.Body
		a.IsPublished = req.IsPublished
		a.StartsAt = req.StartsAt
		a.EndsAt = req.EndsAt
		if err := db.WithContext(c.Request.Context()).Save(&a).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, &a)
	}
}

func DeleteAnnouncement(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		res := db.WithContext(c.Request.Context()).Delete(&models.Announcement{}, id)
		if res.Error != nil {
			response.Internal(c)
			return
		}
		if res.RowsAffected == 0 {
			response.NotFound(c)
			return
		}
		response.Message(c, "announcement deleted")
	}
}

// RegisterSuperAdminRoutes mounts the platform-level management surface.
// The group must already carry StaffAuth and RequireSuperAdmin.
func RegisterSuperAdminRoutes(r gin.IRouter, db *gorm.DB, sub *subsvc.Service, stats *statistics.Service) {
	r.GET("/stats", PlatformStats(stats))

	r.GET("/gyms", ListGyms(db, sub))
	r.POST("/gyms", CreateGym(db))
	r.GET("/gyms/:id", GetGym(db, sub))
	r.PUT("/gyms/:id", UpdateGym(db))
	r.DELETE("/gyms/:id", DeleteGym(db))

	r.GET("/subscription-plans", ListSubscriptionPlans(db))
	r.POST("/subscription-plans", CreateSubscriptionPlan(db))
	r.PUT("/subscription-plans/:id", UpdateSubscriptionPlan(db))
	r.DELETE("/subscription-plans/:id", DeleteSubscriptionPlan(db))

	r.GET("/subscriptions", ListSubscriptions(db))
	r.POST("/subscriptions", CreateSubscription(db))
	r.PUT("/subscriptions/:id", UpdateSubscription(db))
	r.DELETE("/subscriptions/:id", DeleteSubscription(db))

	r.GET("/announcements", ListAllAnnouncements(db))
	r.POST("/announcements", CreateAnnouncement(db))
	r.PUT("/announcements/:id", UpdateAnnouncement(db))
	r.DELETE("/announcements/:id", DeleteAnnouncement(db))
}
