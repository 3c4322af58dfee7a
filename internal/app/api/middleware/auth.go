package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/app/service/access"
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/authtoken"
	cfgpkg "github.com/gymstack/gymhub/pkg/config"
	"github.com/gymstack/gymhub/pkg/response"
	"github.com/gymstack/gymhub/pkg/types"
)

// The exact 403 reason strings the dashboard clients key off.
const (
	MsgNoGymAssigned  = "No gym assigned to this account"
	MsgSuperAdminOnly = "Unauthorized. Super admin only."
	MsgNoPermission   = "Permission denied."
)

const (
	ctxStaffUser = "staff_user"
	ctxMember    = "member_principal"
	ctxTrainer   = "trainer_principal"
)

// Auth holds the per-namespace token issuers and resolves bearer tokens to
// principals. The three guards are independent: each route group stacks the
// subset it needs, and any failure short-circuits before the handler runs.
type Auth struct {
	db      *gorm.DB
	staff   *authtoken.Issuer
	member  *authtoken.Issuer
	trainer *authtoken.Issuer
}

func NewAuth(db *gorm.DB, cfg *cfgpkg.Config) (*Auth, error) {
	staff, err := authtoken.NewIssuer(types.TokenNamespaceStaff, cfg.Auth.StaffSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	member, err := authtoken.NewIssuer(types.TokenNamespaceMember, cfg.Auth.MemberSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	trainer, err := authtoken.NewIssuer(types.TokenNamespaceTrainer, cfg.Auth.TrainerSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &Auth{db: db, staff: staff, member: member, trainer: trainer}, nil
}

func (a *Auth) StaffIssuer() *authtoken.Issuer   { return a.staff }
func (a *Auth) MemberIssuer() *authtoken.Issuer  { return a.member }
func (a *Auth) TrainerIssuer() *authtoken.Issuer { return a.trainer }

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// StaffAuth authenticates the staff token namespace and loads the user with
// its custom role composition.
func (a *Auth) StaffAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		claims, err := a.staff.Validate(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}
		var user models.User
		err = a.db.WithContext(c.Request.Context()).
			Preload("CustomRole.Permissions").
			Where("id = ?", claims.PrincipalID).
			Take(&user).Error
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}
		c.Set(ctxStaffUser, &user)
		c.Next()
	}
}

// MemberAuth authenticates the member token namespace.
func (a *Auth) MemberAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		claims, err := a.member.Validate(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}
		var m models.Member
		if err := a.db.WithContext(c.Request.Context()).Where("id = ?", claims.PrincipalID).Take(&m).Error; err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}
		c.Set(ctxMember, &m)
		c.Next()
	}
}

// TrainerAuth authenticates the trainer token namespace and loads the gym
// membership set.
func (a *Auth) TrainerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		claims, err := a.trainer.Validate(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}
		var t models.Trainer
		if err := a.db.WithContext(c.Request.Context()).Preload("Gyms").Where("id = ?", claims.PrincipalID).Take(&t).Error; err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}
		c.Set(ctxTrainer, &t)
		c.Next()
	}
}

// RequireGymContext rejects staff with no tenant. Super admins always pass;
// they pick a tenant per request via the gym_id override instead.
func RequireGymContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentStaff(c)
		if !ok {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		if !u.IsSuperAdmin() && u.GymID == nil {
			response.Forbidden(c, MsgNoGymAssigned)
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin admits the super_admin role only. String equality, no
// hierarchy: a gym_admin never passes.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentStaff(c)
		if !ok {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		if u.Role != types.StaffRoleSuperAdmin {
			response.Forbidden(c, MsgSuperAdminOnly)
			return
		}
		c.Next()
	}
}

// RequirePermission gates staff-management actions on the permission model.
func RequirePermission(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentStaff(c)
		if !ok {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		if !access.FromUser(u).HasPermission(slug) {
			response.Forbidden(c, MsgNoPermission)
			return
		}
		c.Next()
	}
}

// CurrentStaff returns the authenticated staff user set by StaffAuth.
func CurrentStaff(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxStaffUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

// CurrentMember returns the authenticated member set by MemberAuth.
func CurrentMember(c *gin.Context) (*models.Member, bool) {
	v, ok := c.Get(ctxMember)
	if !ok {
		return nil, false
	}
	m, ok := v.(*models.Member)
	return m, ok && m != nil
}

// CurrentTrainer returns the authenticated trainer set by TrainerAuth.
func CurrentTrainer(c *gin.Context) (*models.Trainer, bool) {
	v, ok := c.Get(ctxTrainer)
	if !ok {
		return nil, false
	}
	t, ok := v.(*models.Trainer)
	return t, ok && t != nil
}
