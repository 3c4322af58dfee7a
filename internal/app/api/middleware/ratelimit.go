package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cfgpkg "github.com/gymstack/gymhub/pkg/config"
	"github.com/gymstack/gymhub/pkg/logctx"
)

// RateLimiter throttles credential endpoints per client IP using a fixed
// redis INCR/EXPIRE window. Redis being down fails open: login availability
// beats throttling.
type RateLimiter struct {
	rdb      *redis.Client
	log      *zap.SugaredLogger
	attempts int64
	window   time.Duration
}

func NewRateLimiter(rdb *redis.Client, log *zap.SugaredLogger, cfg *cfgpkg.Config) *RateLimiter {
	attempts := int64(cfg.RateLimit.LoginAttempts)
	if attempts <= 0 {
		attempts = 10
	}
	window := cfg.RateLimit.LoginWindow
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{rdb: rdb, log: log, attempts: attempts, window: window}
}

// PerIP returns a middleware throttling one named scope, e.g. "login".
func (rl *RateLimiter) PerIP(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())

		n, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			logctx.FromGin(c, rl.log).Warnw("rate limiter unavailable", "err", err)
			c.Next()
			return
		}
		if n == 1 {
			if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
				logctx.FromGin(c, rl.log).Warnw("rate limiter expire failed", "err", err)
			}
		}
		if n > rl.attempts {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, retry later"})
			return
		}
		c.Next()
	}
}
