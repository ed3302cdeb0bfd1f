package authRoutes

import (
	authController "dormaid/controllers/auth"
	authValidator "dormaid/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(router fiber.Router, jwt fiber.Handler, ctl *authController.Controller) {
	authGroup := router.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), ctl.Register)
	authGroup.Post("/login", authValidator.Login(), ctl.Login)
	authGroup.Get("/profile", jwt, ctl.GetProfile)
	authGroup.Put("/profile", jwt, authValidator.UpdateProfile(), ctl.UpdateProfile)
	authGroup.Post("/change-password", jwt, authValidator.ChangePassword(), ctl.ChangePassword)
}

