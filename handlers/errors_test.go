package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dugun.link/models"
	"dugun.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"name": "zorunlu"}}, http.StatusUnprocessableEntity},
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("davetiye 5: %w", services.ErrNotFound), http.StatusNotFound},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"template in use", services.ErrTemplateInUse, http.StatusConflict},
		{"invalid state", services.ErrInvalidState, http.StatusConflict},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"fiber error", fiber.ErrUnauthorized, http.StatusUnauthorized},
		{"unexpected", errors.New("bağlantı koptu"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestCurrentUserAndParamID(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/anon/:id", func(c *fiber.Ctx) error {
		_, err := CurrentUser(c)
		return err
	})
	app.Get("/user/:id", func(c *fiber.Ctx) error {
		c.Locals(LocalsUserKey, &models.User{Name: "Ayşe"})
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}
		id, err := ParamID(c, "id")
		if err != nil {
			return err
		}
		return c.SendString(fmt.Sprintf("%s:%d", user.Name, id))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/anon/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	for _, bad := range []string{"0", "-3", "abc"} {
		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/user/"+bad, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, bad)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/user/42", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
