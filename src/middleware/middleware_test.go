package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	DB "Backend-Schoolhub/src/database"
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestLogger, Metrics)
	app.Get("/metrics", PrometheusHandler())
	app.Get("/me", AuthJWT, func(c *fiber.Ctx) error {
		p, _ := CurrentPrincipal(c)
		return c.JSON(p)
	})
	app.Get("/students-only", AuthJWT, RequireKinds(models.KindStudent), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func token(t *testing.T, kind models.Kind) string {
	t.Helper()
	utils.SetJWTSecret("test-secret")
	tok, err := utils.GenerateJWT(models.Principal{Kind: kind, ID: "65f000000000000000000001", SchoolID: "65f000000000000000000002"}, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthJWT(t *testing.T) {
	app := newApp()

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, models.KindTeacher))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var p models.Principal
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
		assert.Equal(t, models.KindTeacher, p.Kind)
		assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Cookie", "token="+token(t, models.KindStudent))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("missing or garbage token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("revoked token", func(t *testing.T) {
		mr := miniredis.RunT(t)
		DB.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer func() { DB.RedisClient = nil }()

		tok := token(t, models.KindTeacher)
		require.NoError(t, utils.BlacklistToken(t.Context(), tok, time.Hour))

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("redis outage lets valid tokens through", func(t *testing.T) {
		mr := miniredis.RunT(t)
		DB.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
		defer func() { DB.RedisClient = nil }()
		mr.Close()

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, models.KindTeacher))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRequireKinds(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest("GET", "/students-only", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, models.KindTeacher))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/students-only", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, models.KindStudent))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newApp()
	_, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "http_requests_total"))
	assert.Contains(t, string(body), `endpoint="/me"`)
}
