package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"taskly/application/serviceimpl"
	"taskly/domain/services"
	"taskly/infrastructure/memory"
	"taskly/interfaces/api/handlers"
	"taskly/interfaces/api/routes"
)

const testJWTSecret = "handler-test-secret"

// noopNotifier keeps the HTTP tests quiet; notification behavior has its own
// tests at the service level.
type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, services.NotificationKind, string, map[string]string) {}

// envelope mirrors the response wrapper for decoding in assertions.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	userRepo := memory.NewUserRepository()
	taskRepo := memory.NewTaskRepository()
	notifier := noopNotifier{}

	userService := serviceimpl.NewUserService(userRepo, memory.NewResetTokenStore(), notifier, testJWTSecret)
	taskService := serviceimpl.NewTaskService(taskRepo, userRepo, notifier)

	app := fiber.New()
	routes.SetupRoutes(app, handlers.NewHandlers(&handlers.Services{
		UserService: userService,
		TaskService: taskService,
		JWTSecret:   testJWTSecret,
	}))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp, env
}

// signup registers an account and returns a bearer token for it.
func signup(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/register", "", fiber.Map{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/login", "", fiber.Map{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}
