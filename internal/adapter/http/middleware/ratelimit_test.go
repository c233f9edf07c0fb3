package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"church-cms/config"
	"church-cms/internal/adapter/http/middleware"
	"church-cms/internal/adapter/storage/memory"
	redisStore "church-cms/internal/adapter/storage/redis"
	"church-cms/internal/core/ports"
	"church-cms/internal/core/ports/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRateLimitRouter(store ports.RateLimitStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	rule := middleware.RateLimitRule{Limit: 3, Window: time.Minute}
	r.GET("/test", middleware.RateLimiter(store, "test", rule, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return r
}

func fire(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "/test", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func redisBackedStore(t *testing.T) *redisStore.RateLimitStore {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisStore.NewRateLimitStore(client)
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	router := setupRateLimitRouter(redisBackedStore(t))

	for i := 0; i < 3; i++ {
		w := fire(router, "10.0.0.1:1234")
		assert.Equal(t, 200, w.Code, "request %d should succeed", i+1)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	stores := map[string]ports.RateLimitStore{
		"redis":  redisBackedStore(t),
		"memory": memory.NewRateLimitStore(),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			router := setupRateLimitRouter(store)
			for i := 0; i < 3; i++ {
				assert.Equal(t, 200, fire(router, "10.0.0.2:1234").Code)
			}

			w := fire(router, "10.0.0.2:1234")
			assert.Equal(t, 429, w.Code)
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
			assert.Contains(t, w.Body.String(), "RATE_001")
		})
	}
}

func TestRateLimiter_KeyedByClientIP(t *testing.T) {
	router := setupRateLimitRouter(redisBackedStore(t))

	for i := 0; i < 3; i++ {
		fire(router, "10.0.0.3:1234")
	}
	assert.Equal(t, 429, fire(router, "10.0.0.3:1234").Code)
	assert.Equal(t, 200, fire(router, "10.0.0.4:1234").Code)
}

func TestRateLimiter_StoreFailureAllowsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRateLimitStore(ctrl)
	store.EXPECT().Allow(gomock.Any(), "10.0.0.5:test", int64(3), time.Minute).
		Return(nil, errors.New("connection refused")).Times(2)

	router := setupRateLimitRouter(store)
	assert.Equal(t, 200, fire(router, "10.0.0.5:1234").Code)
	w := fire(router, "10.0.0.5:1234")
	assert.Equal(t, 200, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimitRules_FromConfig(t *testing.T) {
	rules := middleware.RateLimitRules(config.RateLimitConfig{
		Window: 15 * time.Minute, Public: 100, Admin: 50, Donation: 10, Upload: 30,
	})

	assert.Equal(t, middleware.RateLimitRule{Limit: 100, Window: 15 * time.Minute}, rules[middleware.GroupPublic])
	assert.Equal(t, int64(50), rules[middleware.GroupAdmin].Limit)
	assert.Equal(t, int64(10), rules[middleware.GroupDonation].Limit)
	assert.Equal(t, int64(30), rules[middleware.GroupUpload].Limit)
}
