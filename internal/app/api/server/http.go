package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/docs"
	"github.com/gymstack/gymhub/internal/app/api/handlers"
	mw "github.com/gymstack/gymhub/internal/app/api/middleware"
	annsvc "github.com/gymstack/gymhub/internal/app/service/announcement"
	attsvc "github.com/gymstack/gymhub/internal/app/service/attendance"
	branchsvc "github.com/gymstack/gymhub/internal/app/service/branch"
	"github.com/gymstack/gymhub/internal/app/service/registration"
	"github.com/gymstack/gymhub/internal/app/service/statistics"
	subsvc "github.com/gymstack/gymhub/internal/app/service/subscription"
	trainersvc "github.com/gymstack/gymhub/internal/app/service/trainer"
	cfgpkg "github.com/gymstack/gymhub/pkg/config"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Tracing and metrics cover everything; request logger & access log are
	// attached per group in registerRoutes.
	r.Use(mw.TraceMiddleware(), mw.MetricsMiddleware())
	return r
}

// Deps collects everything the route table needs, to keep the Fx invoke
// signature readable.
type Deps struct {
	fx.In

	Log   *zap.SugaredLogger
	Cfg   *cfgpkg.Config
	DB    *gorm.DB
	Auth  *mw.Auth
	RL    *mw.RateLimiter
	Reg   *registration.Service
	Sub   *subsvc.Service
	Stats *statistics.Service
	Att   *attsvc.Service
	Tr    *trainersvc.Service
	Ann   *annsvc.Service
	Br    *branchsvc.Service
}

func registerRoutes(r *gin.Engine, d Deps) {
	// Public group: health, swagger, auth
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())
	handlers.RegisterAuthRoutes(apiV1, d.DB, d.Auth, d.Reg, d.RL)

	// Staff surface: tenant-scoped management APIs
	staff := apiV1.Group("/")
	staff.Use(d.Auth.StaffAuth(), mw.RequireGymContext())
	handlers.RegisterDashboardRoutes(staff, d.Stats, d.Ann)
	handlers.RegisterMemberRoutes(staff, d.DB)
	handlers.RegisterTrainerRoutes(staff, d.DB, d.Tr)
	handlers.RegisterBranchRoutes(staff, d.DB, d.Br)
	handlers.RegisterPaymentRoutes(staff, d.DB)
	handlers.RegisterExpenseRoutes(staff, d.DB)
	handlers.RegisterCommissionRoutes(staff, d.DB, d.Tr)
	handlers.RegisterGymPlanRoutes(staff, d.DB)
	handlers.RegisterExerciseRoutes(staff, d.DB)
	handlers.RegisterWorkoutRoutes(staff, d.DB)
	handlers.RegisterRoleRoutes(staff, d.DB)
	handlers.RegisterStaffRoutes(staff, d.DB)
	handlers.RegisterAttendanceRoutes(staff, d.DB, d.Att)

	// Platform surface
	superAdmin := apiV1.Group("/super-admin")
	superAdmin.Use(d.Auth.StaffAuth(), mw.RequireSuperAdmin())
	handlers.RegisterSuperAdminRoutes(superAdmin, d.DB, d.Sub, d.Stats)

	// Member self-service portal
	member := apiV1.Group("/member")
	member.Use(d.Auth.MemberAuth())
	handlers.RegisterMemberPortalRoutes(member, d.DB, d.Ann)

	// Trainer self-service portal
	trainer := apiV1.Group("/trainer")
	trainer.Use(d.Auth.TrainerAuth())
	handlers.RegisterTrainerPortalRoutes(trainer, d.DB)
}

// runMetrics exposes /metrics on its own listener so the scrape endpoint
// never shares a port with the API.
func runMetrics(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config) {
	if cfg.MetricsAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("metrics started", "addr", cfg.MetricsAddr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("metrics server error: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runMetrics),
	fx.Invoke(runServer),
)
