package maintenanceRoutes

import (
	maintenanceController "dormaid/controllers/maintenance"
	"dormaid/middleware"
	"dormaid/models"
	"dormaid/validators"
	maintenanceValidator "dormaid/validators/maintenance"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupMaintenanceRoutes(router fiber.Router, db *gorm.DB, jwt fiber.Handler, ctl *maintenanceController.Controller) {
	maintenance := router.Group("/maintenance", jwt, middleware.RequireRole(db, models.RoleStudent))

	maintenance.Post("/create", maintenanceValidator.Create(), ctl.Create)
	maintenance.Get("/my-requests", ctl.MyRequests)
	maintenance.Delete("/:id", validators.IDParam(), ctl.Delete)
}
