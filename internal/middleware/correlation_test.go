package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDPropagatesIncomingHeader(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(CorrelationIDFromContext(c.UserContext()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CorrelationHeader, "corr-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, "corr-123", resp.Header.Get(CorrelationHeader))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "corr-123", string(body))
}

func TestCorrelationIDGeneratesWhenMissing(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Len(t, resp.Header.Get(CorrelationHeader), 36)
}

func TestContextWithCorrelation(t *testing.T) {
	ctx := ContextWithCorrelation(context.Background(), " job-run ")
	require.Equal(t, "job-run", CorrelationIDFromContext(ctx))
	require.Empty(t, CorrelationIDFromContext(context.Background()))
}
