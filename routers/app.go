// Package routers assembles the fiber application and mounts every route
// group under /api.
package routers

import (
	"dormaid/config"
	adminController "dormaid/controllers/admin"
	authController "dormaid/controllers/auth"
	maintenanceController "dormaid/controllers/maintenance"
	technicianController "dormaid/controllers/technician"
	"dormaid/middleware"
	"dormaid/routers/adminRoutes"
	"dormaid/routers/authRoutes"
	"dormaid/routers/maintenanceRoutes"
	"dormaid/routers/technicianRoutes"
	"dormaid/services/authService"
	"dormaid/services/maintenanceService"
	"dormaid/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewApp wires services, controllers and routes into a ready to listen app.
func NewApp(cfg *config.Config, db *gorm.DB, notifier utils.Notifier) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "DormAid",
		ErrorHandler: middleware.ErrorHandler(cfg.IsProduction()),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	tokens := middleware.NewTokenService(cfg.JWTKey, cfg.TokenTTL)
	jwt := middleware.JWTMiddleware(tokens)

	users := authService.New(db, tokens, cfg.SaltRound)
	tickets := maintenanceService.New(db, notifier)

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "DormAid API is running", fiber.Map{
			"time": time.Now().UTC(),
		})
	})

	authRoutes.SetupAuthRoutes(api, jwt, authController.New(users))
	maintenanceRoutes.SetupMaintenanceRoutes(api, db, jwt, maintenanceController.New(tickets))
	adminRoutes.SetupAdminRoutes(api, db, jwt, adminController.New(users, tickets))
	technicianRoutes.SetupTechnicianRoutes(api, db, jwt, technicianController.New(tickets))

	return app
}
