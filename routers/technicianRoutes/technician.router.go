package technicianRoutes

import (
	technicianController "dormaid/controllers/technician"
	"dormaid/middleware"
	"dormaid/models"
	"dormaid/validators"
	technicianValidator "dormaid/validators/technician"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupTechnicianRoutes(router fiber.Router, db *gorm.DB, jwt fiber.Handler, ctl *technicianController.Controller) {
	technician := router.Group("/technician", jwt, middleware.RequireRole(db, models.RoleTechnician))

	technician.Get("/tasks", technicianValidator.TaskList(), ctl.Tasks)
	technician.Put("/tasks/:id/status", validators.IDParam(), technicianValidator.UpdateStatus(), ctl.UpdateStatus)
}
