package middleware

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/pkg/jwt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(jwtService jwt.JWTService) *fiber.App {
	m := NewMiddleware()
	app := fiber.New()
	app.Get("/restricted", m.AuthMiddleware(jwtService), m.OnlyAllow(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("admin_id").(string))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	jwtService, err := jwt.NewJWTServiceWithSecret("secret", time.Hour)
	require.NoError(t, err)
	app := newTestApp(jwtService)

	token, err := jwtService.GenerateTokenAdmin("admin-1", domain.RoleAdmin)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, fiber.StatusUnauthorized},
		{"garbage token", "Bearer nope", fiber.StatusUnauthorized},
		{"valid", "Bearer " + token, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/restricted", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestOnlyAllowRejectsOtherRoles(t *testing.T) {
	jwtService, err := jwt.NewJWTServiceWithSecret("secret", time.Hour)
	require.NoError(t, err)
	app := newTestApp(jwtService)

	token, err := jwtService.GenerateTokenAdmin("visitor", "guest")
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/restricted", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
