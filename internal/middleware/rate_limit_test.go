package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

func withUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(UserIDKey, id)
		c.Next()
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	client := testhelpers.StartRedis(t)
	gin.SetMode(gin.TestMode)

	rl := NewRecipeCreationRateLimiter(client, 2)
	router := gin.New()
	router.POST("/api/recipes/", withUser(1), rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/recipes/", nil))
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(1-i), w.Header().Get("X-RateLimit-Remaining"))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/recipes/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestPerRecipeRateLimitMiddleware(t *testing.T) {
	client := testhelpers.StartRedis(t)
	gin.SetMode(gin.TestMode)

	rl := NewRecipeModificationRateLimiter(client, 1)
	router := gin.New()
	router.PATCH("/api/recipes/update/:id/", withUser(1), rl.PerRecipeRateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/recipes/update/1/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/recipes/update/1/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// a different recipe has its own budget
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/recipes/update/2/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPerRecipeRateLimitSharesBudgetAcrossIDSpellings(t *testing.T) {
	client := testhelpers.StartRedis(t)
	gin.SetMode(gin.TestMode)

	rl := NewRecipeModificationRateLimiter(client, 1)
	router := gin.New()
	router.PATCH("/api/recipes/update/:id/", withUser(1), rl.PerRecipeRateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/recipes/update/7/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/recipes/update/007/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestPerRecipeRateLimitSkipsInvalidIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	// unreachable, so any counted request would report X-RateLimit-Error
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRecipeModificationRateLimiter(client, 1)
	router := gin.New()
	router.DELETE("/api/recipes/delete/:id/", withUser(1), rl.PerRecipeRateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	for _, id := range []string{"abc", "0", "-1", "1.5", "99999999999999999999999", "%2A"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/recipes/delete/"+id+"/", nil))
		assert.Equal(t, http.StatusNotFound, w.Code, id)
		assert.Empty(t, w.Header().Get("X-RateLimit-Error"), id)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"), id)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/recipes/delete/3/", nil))
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRecipeCreationRateLimiter(client, 1)
	router := gin.New()
	router.POST("/api/recipes/", withUser(1), rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/recipes/", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestRateLimitRequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRecipeCreationRateLimiter(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), 1)
	router := gin.New()
	router.POST("/api/recipes/", rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/recipes/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
