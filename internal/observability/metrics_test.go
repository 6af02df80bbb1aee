package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandlerExposesRosterCollectors(t *testing.T) {
	RosterOperations().WithLabelValues("signup", "success").Inc()
	RosterParticipants().WithLabelValues("Chess Club").Set(3)

	app := fiber.New()
	app.Get("/metrics", MetricsHandler())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	require.Contains(t, string(body), `activities_roster_operations_total{operation="signup",outcome="success"}`)
	require.Contains(t, string(body), `activities_roster_participants{activity="Chess Club"} 3`)
}
