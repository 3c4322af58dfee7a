package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	cfgpkg "github.com/gymstack/gymhub/pkg/config"
)

func newTestLimiter(t *testing.T) (*RateLimiter, redismock.ClientMock) {
	t.Helper()
	rdb, mock := redismock.NewClientMock()
	cfg := &cfgpkg.Config{RateLimit: cfgpkg.RateLimitConfig{LoginAttempts: 2, LoginWindow: time.Minute}}
	return NewRateLimiter(rdb, zap.NewNop().Sugar(), cfg), mock
}

func limiterRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.POST("/login", rl.PerIP("login"), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimiterAllowsWithinWindow(t *testing.T) {
	rl, mock := newTestLimiter(t)
	r := limiterRouter(rl)

	key := "ratelimit:login:192.0.2.1"
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	rl, mock := newTestLimiter(t)
	r := limiterRouter(rl)

	mock.ExpectIncr("ratelimit:login:192.0.2.1").SetVal(3)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiterFailsOpenWhenRedisDown(t *testing.T) {
	rl, mock := newTestLimiter(t)
	r := limiterRouter(rl)

	mock.ExpectIncr("ratelimit:login:192.0.2.1").SetErr(errors.New("connection refused"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
