package handler_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/edugenius/edugenius-api/internal/dto"
)

func TestAuthEndpointsRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t, &testGenerator{})

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/register", dto.RegisterRequest{
		Name:     "Grace Hopper",
		Email:    "grace@example.com",
		Password: "compilers4ever",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var registered struct {
		Success bool             `json:"success"`
		Data    dto.AuthResponse `json:"data"`
	}
	decodeResponse(t, resp, &registered)
	require.True(t, registered.Success)
	require.NotEmpty(t, registered.Data.Token)
	require.Equal(t, "grace@example.com", registered.Data.User.Email)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/auth/login", dto.LoginRequest{
		Email:    "grace@example.com",
		Password: "compilers4ever",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthEndpointsBadCredentials(t *testing.T) {
	app, _ := setupApp(t, &testGenerator{})

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/login", dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthEndpointsDuplicateEmail(t *testing.T) {
	app, _ := setupApp(t, &testGenerator{})

	payload := dto.RegisterRequest{Name: "Grace", Email: "grace@example.com", Password: "compilers4ever"}
	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/register", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/auth/register", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthEndpointsValidation(t *testing.T) {
	app, _ := setupApp(t, &testGenerator{})

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/register", dto.RegisterRequest{
		Name:     "G",
		Email:    "not-an-email",
		Password: "short",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
