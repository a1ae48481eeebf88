package main

import (
	"strings"

	"shinepos-backend/internal/apperr"
	"shinepos-backend/internal/audit"
	"shinepos-backend/internal/auth"
	"shinepos-backend/internal/commission"
	"shinepos-backend/internal/config"
	"shinepos-backend/internal/database"
	"shinepos-backend/internal/logger"
	"shinepos-backend/internal/models"
	"shinepos-backend/internal/sales"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogPretty)
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := database.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(database.DB))
	api.Post("/auth/login", auth.LoginHandler(database.DB, cfg.JWTSecret))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))

	protected.Get("/auth/me", auth.MeHandler(database.DB))

	adminOnly := auth.RequireRole(models.RoleAdmin)
	salesOrAdmin := auth.RequireRole(models.RoleAdmin, models.RoleSales)
	directoryRead := auth.RequireRole(models.RoleAdmin, models.RoleSales, models.RoleSupport)

	// Commission accounting
	svc := commission.NewService(
		commission.NewGormStore(database.DB),
		commission.WithRecorder(audit.NewGormRecorder(database.DB)),
	)
	commission.Register(protected, svc, salesOrAdmin, adminOnly)

	// Sales directory
	protected.Post("/sales-people", adminOnly, sales.CreateSalesPersonHandler(database.DB))
	protected.Get("/sales-people", directoryRead, sales.ListSalesPeopleHandler(database.DB))
	protected.Get("/sales-people/:id", directoryRead, sales.GetSalesPersonHandler(database.DB))
	protected.Put("/sales-people/:id", adminOnly, sales.UpdateSalesPersonHandler(database.DB))

	protected.Post("/restaurants", adminOnly, sales.CreateRestaurantHandler(database.DB))
	protected.Get("/restaurants", directoryRead, sales.ListRestaurantsHandler(database.DB))
	protected.Get("/restaurants/:id", directoryRead, sales.GetRestaurantHandler(database.DB))

	// Audit logs
	protected.Get("/audit-logs", adminOnly, audit.ListAuditLogsHandler(database.DB))

	log.Info().Str("port", cfg.HTTPPort).Msg("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
