package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripmate/internal/config"
	"tripmate/internal/service/auth"
)

func newApp(authService auth.Service) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(zap.NewNop())})
	app.Get("/me", AuthRequired(authService), func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": userID, "name": GetCurrentUserName(c)})
	})
	app.Get("/gone", func(c *fiber.Ctx) error { return Gone("Invite code has expired") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db exploded") })
	return app
}

func decodeError(t *testing.T, app *fiber.App, path, authHeader string) (int, ErrorResponse) {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestAuthRequired(t *testing.T) {
	authService := auth.NewService(&config.Config{JWTSecret: "secret"})
	app := newApp(authService)

	t.Run("Valid Token", func(t *testing.T) {
		token, err := authService.IssueAccessToken(7, "Ayu", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var body struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, int64(7), body.ID)
		assert.Equal(t, "Ayu", body.Name)
	})

	for name, header := range map[string]string{
		"Missing Header": "",
		"Wrong Scheme":   "Basic abc",
		"Bad Token":      "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			status, body := decodeError(t, app, "/me", header)
			assert.Equal(t, fiber.StatusUnauthorized, status)
			assert.Equal(t, "UNAUTHORIZED", body.Code)
			assert.NotEmpty(t, body.TraceID)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	app := newApp(auth.NewService(&config.Config{JWTSecret: "secret"}))

	status, body := decodeError(t, app, "/gone", "")
	assert.Equal(t, fiber.StatusGone, status)
	assert.Equal(t, "GONE", body.Code)
	assert.Equal(t, "Invite code has expired", body.Message)

	status, body = decodeError(t, app, "/boom", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Equal(t, "Internal server error", body.Message)
	assert.Len(t, body.TraceID, 8)
}
