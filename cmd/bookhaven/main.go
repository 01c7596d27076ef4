package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"bookhaven/internal/config"
	"bookhaven/internal/http/handlers"
	applog "bookhaven/internal/log"
	"bookhaven/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	deps := handlers.NewDeps(db, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			status := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
			body := fiber.Map{"success": false, "message": err.Error()}
			if !cfg.Production() {
				body["error"] = err.Error()
			}
			return c.Status(status).JSON(body)
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(helmet.New())
	app.Use(handlers.Authenticate(deps.Auth))

	api := app.Group("/api")

	// ---------- Books ----------
	books := api.Group("/books")
	books.Get("/", deps.BookHandler.List)
	books.Get("/search", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), deps.BookHandler.Search)
	books.Get("/:id", deps.BookHandler.Get)
	books.Post("/", handlers.RequireAdmin(), deps.BookHandler.Create)
	books.Put("/:id", handlers.RequireAdmin(), deps.BookHandler.Update)
	books.Delete("/:id", handlers.RequireAdmin(), deps.BookHandler.Delete)

	// ---------- Orders ----------
	orders := api.Group("/orders")
	orders.Post("/", deps.OrderHandler.Place) // guest checkout allowed
	orders.Get("/my-orders", handlers.RequireAuth(), deps.OrderHandler.Mine)
	orders.Get("/:id", deps.OrderHandler.Get)
	orders.Get("/", handlers.RequireAdmin(), deps.OrderHandler.ListAll)
	orders.Put("/:id/status", handlers.RequireAdmin(), deps.OrderHandler.UpdateStatus)

	// ---------- Users ----------
	users := api.Group("/users")
	users.Post("/register", deps.UserHandler.Register)
	users.Post("/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "message": "Too many attempts, please try again later",
			})
		},
	}), deps.UserHandler.Login)
	users.Get("/profile", handlers.RequireAuth(), deps.UserHandler.Profile)
	users.Put("/profile", handlers.RequireAuth(), deps.UserHandler.UpdateProfile)
	users.Get("/", handlers.RequireAdmin(), deps.UserHandler.List)

	// ---------- Health & 404 ----------
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"message":   "Online Book Store API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Route not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
