package app

import (
	"time"

	"go.uber.org/fx"

	mw "github.com/gymstack/gymhub/internal/app/api/middleware"
	"github.com/gymstack/gymhub/internal/app/api/server"
	"github.com/gymstack/gymhub/internal/app/service/announcement"
	"github.com/gymstack/gymhub/internal/app/service/attendance"
	"github.com/gymstack/gymhub/internal/app/service/branch"
	"github.com/gymstack/gymhub/internal/app/service/registration"
	"github.com/gymstack/gymhub/internal/app/service/statistics"
	"github.com/gymstack/gymhub/internal/app/service/subscription"
	"github.com/gymstack/gymhub/internal/app/service/trainer"
	"github.com/gymstack/gymhub/internal/platform/db"
	"github.com/gymstack/gymhub/internal/platform/redis"
	"github.com/gymstack/gymhub/pkg/config"
	"github.com/gymstack/gymhub/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	redis.Module,
	fx.Provide(mw.NewAuth, mw.NewRateLimiter),
	server.Module,
	subscription.Module,
	statistics.Module,
	attendance.Module,
	trainer.Module,
	announcement.Module,
	branch.Module,
	registration.Module,
)
