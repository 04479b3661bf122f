package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func setupIdempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, redisMock := redismock.NewClientMock()

	hits := 0
	router := gin.New()
	router.POST("/payroll/close", middleware.Idempotency(rdb), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, redisMock, &hits
}

func TestIdempotency(t *testing.T) {
	const (
		cacheKey = "idemp:/payroll/close::retry-1"
		lockKey  = cacheKey + ":lock"
	)

	t.Run("no key passes through", func(t *testing.T) {
		router, redisMock, hits := setupIdempotencyRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payroll/close", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, *hits)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("first request caches the response", func(t *testing.T) {
		router, redisMock, hits := setupIdempotencyRouter(t)

		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		redisMock.ExpectSet(cacheKey, []byte(`{"ok":true}`), 24*time.Hour).SetVal("OK")
		redisMock.ExpectDel(lockKey).SetVal(1)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payroll/close", nil)
		req.Header.Set("Idempotency-Key", "retry-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, *hits)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("replay serves cached body without handler", func(t *testing.T) {
		router, redisMock, hits := setupIdempotencyRouter(t)

		redisMock.ExpectGet(cacheKey).SetVal(`{"ok":true}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payroll/close", nil)
		req.Header.Set("Idempotency-Key", "retry-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get("X-Idempotent-Replay"))
		assert.True(t, strings.Contains(w.Body.String(), `"ok":true`))
		assert.Equal(t, 0, *hits)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		router, redisMock, hits := setupIdempotencyRouter(t)

		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payroll/close", nil)
		req.Header.Set("Idempotency-Key", "retry-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, *hits)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("failed response is not cached", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		rdb, redisMock := redismock.NewClientMock()

		router := gin.New()
		router.POST("/payroll/close", middleware.Idempotency(rdb), func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		})

		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		redisMock.ExpectDel(lockKey).SetVal(1)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payroll/close", nil)
		req.Header.Set("Idempotency-Key", "retry-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
