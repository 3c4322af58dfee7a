package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/gymstack/gymhub/internal/app/api/middleware"
	"github.com/gymstack/gymhub/internal/app/service/registration"
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/authtoken"
	"github.com/gymstack/gymhub/pkg/response"
)

const msgInvalidCredentials = "invalid email or password"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Principal any    `json:"principal"`
	Token     string `json:"token"`
}

// @Summary      Staff login
// @Description  Authenticates a staff user and returns a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} AuthResponse
// @Router       /api/v1/login [post]
func StaffLogin(db *gorm.DB, auth *mw.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var u models.User
		err := db.WithContext(c.Request.Context()).
			Preload("CustomRole.Permissions").
			Where("email = ?", req.Email).Take(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !authtoken.CheckPassword(u.PasswordHash, req.Password)) {
			response.Unauthorized(c, msgInvalidCredentials)
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		token, err := auth.StaffIssuer().Generate(u.ID)
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, AuthResponse{Principal: &u, Token: token})
	}
}

// @Summary      Member login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} AuthResponse
// @Router       /api/v1/member/login [post]
func MemberLogin(db *gorm.DB, auth *mw.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var m models.Member
		err := db.WithContext(c.Request.Context()).Where("email = ?", req.Email).Take(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !authtoken.CheckPassword(m.PasswordHash, req.Password)) {
			response.Unauthorized(c, msgInvalidCredentials)
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		token, err := auth.MemberIssuer().Generate(m.ID)
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, AuthResponse{Principal: &m, Token: token})
	}
}

// @Summary      Trainer login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} AuthResponse
// @Router       /api/v1/trainer/login [post]
func TrainerLogin(db *gorm.DB, auth *mw.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var t models.Trainer
		err := db.WithContext(c.Request.Context()).Preload("Gyms").Where("email = ?", req.Email).Take(&t).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !authtoken.CheckPassword(t.PasswordHash, req.Password)) {
			response.Unauthorized(c, msgInvalidCredentials)
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		token, err := auth.TrainerIssuer().Generate(t.ID)
		if err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, AuthResponse{Principal: &t, Token: token})
	}
}

type RegisterGymRequest struct {
	GymName    string `json:"gym_name" binding:"required,min=2,max=255"`
	Slug       string `json:"slug" binding:"required,min=2,max=64"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"omitempty,max=64"`
	Address    string `json:"address" binding:"omitempty,max=512"`
	OwnerName  string `json:"owner_name" binding:"required,min=2,max=255"`
	OwnerEmail string `json:"owner_email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
}

type RegisterGymResponse struct {
	Gym   *models.Gym  `json:"gym"`
	Owner *models.User `json:"owner"`
	Token string       `json:"token"`
}

// @Summary      Register a gym
// @Description  Onboards a new gym with its owner account and an opening trial subscription.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterGymRequest true "Gym and owner details"
// @Success      201 {object} RegisterGymResponse
// @Router       /api/v1/register-gym [post]
func RegisterGym(reg *registration.Service, auth *mw.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterGymRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		gym, owner, err := reg.RegisterGym(c.Request.Context(), registration.RegisterGymInput{
			GymName:    req.GymName,
			Slug:       req.Slug,
			Email:      req.Email,
			Phone:      req.Phone,
			Address:    req.Address,
			OwnerName:  req.OwnerName,
			OwnerEmail: req.OwnerEmail,
			Password:   req.Password,
		})
		switch {
		case errors.Is(err, registration.ErrSlugTaken), errors.Is(err, registration.ErrEmailTaken):
			response.Conflict(c, err.Error())
			return
		case err != nil:
			response.Internal(c)
			return
		}
		token, err := auth.StaffIssuer().Generate(owner.ID)
		if err != nil {
			response.Internal(c)
			return
		}
		mw.GymRegistrationsTotal.Inc()
		response.Created(c, RegisterGymResponse{Gym: gym, Owner: owner, Token: token})
	}
}

type RegisterTrainerRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=255"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,max=64"`
	Password  string `json:"password" binding:"required,min=8"`
	Specialty string `json:"specialty" binding:"omitempty,max=255"`
}

// @Summary      Register a trainer
// @Description  Creates a trainer account with an empty gym set.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterTrainerRequest true "Trainer details"
// @Success      201 {object} AuthResponse
// @Router       /api/v1/trainer/register [post]
func RegisterTrainer(reg *registration.Service, auth *mw.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterTrainerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		t, err := reg.RegisterTrainer(c.Request.Context(), registration.RegisterTrainerInput{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			Password:  req.Password,
			Specialty: req.Specialty,
		})
		if errors.Is(err, registration.ErrEmailTaken) {
			response.Conflict(c, err.Error())
			return
		}
		if err != nil {
			response.Internal(c)
			return
		}
		token, err := auth.TrainerIssuer().Generate(t.ID)
		if err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, AuthResponse{Principal: t, Token: token})
	}
}

// RegisterAuthRoutes mounts the public login and registration endpoints.
// Login endpoints sit behind the per-IP rate limiter.
func RegisterAuthRoutes(r gin.IRouter, db *gorm.DB, auth *mw.Auth, reg *registration.Service, rl *mw.RateLimiter) {
	r.POST("/login", rl.PerIP("staff-login"), StaffLogin(db, auth))
	r.POST("/member/login", rl.PerIP("member-login"), MemberLogin(db, auth))
	r.POST("/trainer/login", rl.PerIP("trainer-login"), TrainerLogin(db, auth))
	r.POST("/register-gym", RegisterGym(reg, auth))
	r.POST("/trainer/register", RegisterTrainer(reg, auth))
}
