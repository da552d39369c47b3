package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worthy-waste/domain"
	"worthy-waste/pkg/jwt"
)

func newProtectedApp(svc jwt.JWTService) *fiber.App {
	app := fiber.New()
	m := NewMiddleware()
	app.Use(m.CORSMiddleware())
	app.Get("/me", m.AuthMiddleware(svc), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewJWTServiceWithSecret("secret", time.Hour)
	token := svc.GenerateTokenUser("user-42", domain.RoleUser)
	app := newProtectedApp(svc)

	tests := []struct {
		name   string
		header string
		value  string
		code   int
	}{
		{"bearer", fiber.HeaderAuthorization, "Bearer " + token, fiber.StatusOK},
		{"lowercase bearer", fiber.HeaderAuthorization, "bearer " + token, fiber.StatusOK},
		{"x-auth-token", "x-auth-token", token, fiber.StatusOK},
		{"missing", "", "", fiber.StatusUnauthorized},
		{"invalid", fiber.HeaderAuthorization, "Bearer nope", fiber.StatusUnauthorized},
		{"no scheme", fiber.HeaderAuthorization, token, fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken(""))
}
