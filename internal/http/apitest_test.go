package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"

	"bookhaven/internal/config"
	"bookhaven/internal/http/handlers"
	"bookhaven/internal/repos"
)

// newApp wires the full route table against a seeded in-memory database,
// mirroring the server main minus rate limiters.
func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour, Env: "production"}
	deps := handlers.NewDeps(db, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
			return c.Status(status).JSON(fiber.Map{"success": false, "message": err.Error()})
		},
	})
	app.Use(requestid.New())
	app.Use(handlers.Authenticate(deps.Auth))

	api := app.Group("/api")

	books := api.Group("/books")
	books.Get("/", deps.BookHandler.List)
	books.Get("/search", deps.BookHandler.Search)
	books.Get("/:id", deps.BookHandler.Get)
	books.Post("/", handlers.RequireAdmin(), deps.BookHandler.Create)
	books.Put("/:id", handlers.RequireAdmin(), deps.BookHandler.Update)
	books.Delete("/:id", handlers.RequireAdmin(), deps.BookHandler.Delete)

	orders := api.Group("/orders")
	orders.Post("/", deps.OrderHandler.Place)
	orders.Get("/my-orders", handlers.RequireAuth(), deps.OrderHandler.Mine)
	orders.Get("/:id", deps.OrderHandler.Get)
	orders.Get("/", handlers.RequireAdmin(), deps.OrderHandler.ListAll)
	orders.Put("/:id/status", handlers.RequireAdmin(), deps.OrderHandler.UpdateStatus)

	users := api.Group("/users")
	users.Post("/register", deps.UserHandler.Register)
	users.Post("/login", deps.UserHandler.Login)
	users.Get("/profile", handlers.RequireAuth(), deps.UserHandler.Profile)
	users.Put("/profile", handlers.RequireAuth(), deps.UserHandler.UpdateProfile)
	users.Get("/", handlers.RequireAdmin(), deps.UserHandler.List)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK"})
	})
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Route not found"})
	})

	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Errors  []string        `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

func doReq(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	status, env := doReq(t, app, http.MethodPost, "/api/users/login", "",
		map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func register(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()
	status, env := doReq(t, app, http.MethodPost, "/api/users/register", "",
		map[string]string{"fullName": name, "email": email, "password": "secret123"})
	require.Equal(t, http.StatusCreated, status)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Token
}
