package adminRoutes

import (
	adminController "dormaid/controllers/admin"
	"dormaid/middleware"
	"dormaid/models"
	"dormaid/validators"
	adminValidator "dormaid/validators/admin"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAdminRoutes(router fiber.Router, db *gorm.DB, jwt fiber.Handler, ctl *adminController.Controller) {
	admin := router.Group("/admin", jwt, middleware.RequireRole(db, models.AdminRoles...))

	admin.Get("/complaints", adminValidator.ComplaintList(), ctl.Complaints)
	admin.Put("/complaints/:id/assign", validators.IDParam(), adminValidator.Assign(), ctl.Assign)
	admin.Get("/technicians", ctl.Technicians)
	admin.Get("/users", adminValidator.UserList(), ctl.Users)
	admin.Get("/stats", ctl.Stats)
}
