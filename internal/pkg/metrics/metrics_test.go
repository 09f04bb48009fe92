package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMiddleware_CountsRequests(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/v1/places/map", func(c *fiber.Ctx) error {
		return c.SendString("[]")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/places/map?mode=regions", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := scrape(t)
	assert.Contains(t, body, `touristmap_http_requests_total{method="GET",path="/api/v1/places/map",status="200"}`)
	assert.Contains(t, body, "touristmap_http_request_duration_seconds")
}

func TestHandler_ExposesMapMetrics(t *testing.T) {
	MapQueries.WithLabelValues("regions").Inc()
	CacheHits.WithLabelValues("regions").Inc()

	body := scrape(t)
	assert.Contains(t, body, `touristmap_map_queries_total{mode="regions"}`)
	assert.Contains(t, body, `touristmap_cache_hits_total{operation="regions"}`)
}
