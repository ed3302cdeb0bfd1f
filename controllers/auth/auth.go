package authController

import (
	"dormaid/middleware"
	"dormaid/services/authService"
	authValidator "dormaid/validators/auth"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	auth *authService.Service
}

func New(auth *authService.Service) *Controller {
	return &Controller{auth: auth}
}

func (ctl *Controller) Register(c *fiber.Ctx) error {
	req := c.Locals("validatedRegister").(*authValidator.RegisterRequest)

	res, err := ctl.auth.Register(c.UserContext(), authService.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		RoomNumber:     req.RoomNumber,
		BlockNumber:    req.BlockNumber,
		Phone:          req.Phone,
		WorkArea:       req.WorkArea,
		RegisterNumber: req.RegisterNumber,
	})
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully", res)
}

func (ctl *Controller) Login(c *fiber.Ctx) error {
	req := c.Locals("validatedLogin").(*authValidator.LoginRequest)

	res, err := ctl.auth.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful", res)
}

func (ctl *Controller) GetProfile(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	user, err := ctl.auth.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully", fiber.Map{"user": user})
}

func (ctl *Controller) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	req := c.Locals("validatedProfile").(*authValidator.UpdateProfileRequest)

	user, err := ctl.auth.UpdateProfile(c.UserContext(), userID, authService.ProfileInput{
		Username:       req.Username,
		Email:          req.Email,
		Phone:          req.Phone,
		RoomNumber:     req.RoomNumber,
		BlockNumber:    req.BlockNumber,
		WorkArea:       req.WorkArea,
		RegisterNumber: req.RegisterNumber,
	})
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully", fiber.Map{"user": user})
}

func (ctl *Controller) ChangePassword(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	req := c.Locals("validatedPassword").(*authValidator.ChangePasswordRequest)

	if err := ctl.auth.ChangePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully", nil)
}
