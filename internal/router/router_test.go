package router_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-activities/internal/config"
	"github.com/noah-isme/gema-activities/internal/handler"
	"github.com/noah-isme/gema-activities/internal/middleware"
	"github.com/noah-isme/gema-activities/internal/repository"
	"github.com/noah-isme/gema-activities/internal/router"
	"github.com/noah-isme/gema-activities/internal/seed"
	"github.com/noah-isme/gema-activities/internal/service"
)

func setupApp(t *testing.T, cfg config.Config, guard fiber.Handler) *fiber.App {
	t.Helper()

	logger := zerolog.New(io.Discard)
	repo := repository.NewMemoryActivityRepository()
	require.NoError(t, repo.Seed(context.Background(), seed.Defaults()))

	broadcaster := service.NewRosterBroadcaster(nil, nil, "", logger)
	svc := service.NewActivityService(repo, broadcaster, validator.New(), logger)

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ActivityHandler:     handler.NewActivityHandler(svc, logger),
		RosterStreamHandler: handler.NewRosterStreamHandler(broadcaster, logger),
		RosterGuard:         guard,
	})
	return app
}

func TestRegisterWiresActivityRoutes(t *testing.T) {
	app := setupApp(t, config.Config{AppName: "Mergington Activities API"}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/activities", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup?email=router%40example.com", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Mergington Activities API", resp.Header.Get("X-Application"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegisterAppliesRosterGuard(t *testing.T) {
	app := setupApp(t, config.Config{}, middleware.RateLimit("roster", 1, 0))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup?email=a%40example.com", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup?email=b%40example.com", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/activities", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegisterServesStaticPage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Activities</h1>"), 0o600))

	app := setupApp(t, config.Config{StaticDir: dir}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTemporaryRedirect, resp.StatusCode)
	require.Equal(t, "/static/index.html", resp.Header.Get("Location"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/static/index.html", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Activities")
}
