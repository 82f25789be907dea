package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newJWTApp() *fiber.App {
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   c.Locals("user_id"),
			"user_role": c.Locals("user_role"),
		})
	})
	return app
}

func TestJWTProtectedExposesSubjectAndRole(t *testing.T) {
	app := newJWTApp()
	token := signToken(t, jwt.MapClaims{
		"sub":  "9b2d3f6e-4c1a-4e59-8d0f-2a7b5c6d8e91",
		"role": "Animal_Manager",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload map[string]string
	decodeJSON(t, resp, &payload)
	require.Equal(t, "9b2d3f6e-4c1a-4e59-8d0f-2a7b5c6d8e91", payload["user_id"])
	require.Equal(t, "animal_manager", payload["user_role"])
}

func TestJWTProtectedAcceptsNumericSubject(t *testing.T) {
	require.Equal(t, "42", extractUserIDFromClaims(jwt.MapClaims{"user_id": float64(42)}))
	require.Empty(t, extractUserIDFromClaims(jwt.MapClaims{"user_id": float64(-1)}))
	require.Empty(t, extractUserIDFromClaims(jwt.MapClaims{"user_id": 1.5}))
}

func TestJWTProtectedRejectsInvalidTokens(t *testing.T) {
	app := newJWTApp()

	cases := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Basic abc",
		"bad signature":   "Bearer " + signToken(t, jwt.MapClaims{"sub": "user-1"}, "other-secret"),
		"expired":         "Bearer " + signToken(t, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(-time.Hour).Unix()}, testSecret),
		"missing subject": "Bearer " + signToken(t, jwt.MapClaims{"role": "admin"}, testSecret),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}
