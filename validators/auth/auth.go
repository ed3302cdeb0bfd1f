package authValidator

import (
	"dormaid/validators"

	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	Username       string `json:"name" validate:"required,min=3,max=50"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Role           string `json:"role"`
	RoomNumber     string `json:"roomNumber" validate:"max=20"`
	BlockNumber    string `json:"blockNumber" validate:"max=20"`
	Phone          string `json:"phone" validate:"max=20"`
	WorkArea       string `json:"workArea" validate:"max=100"`
	RegisterNumber string `json:"registerNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest fields are optional; only the ones sent are changed.
type UpdateProfileRequest struct {
	Username       *string `json:"name" validate:"omitempty,min=3,max=50"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=20"`
	RoomNumber     *string `json:"roomNumber" validate:"omitempty,max=20"`
	BlockNumber    *string `json:"blockNumber" validate:"omitempty,max=20"`
	WorkArea       *string `json:"workArea" validate:"omitempty,max=100"`
	RegisterNumber *string `json:"registerNumber" validate:"omitempty,regno"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// Register validator middleware
func Register() fiber.Handler {
	return validators.Body[RegisterRequest]("validatedRegister")
}

// Login validator middleware
func Login() fiber.Handler {
	return validators.Body[LoginRequest]("validatedLogin")
}

func UpdateProfile() fiber.Handler {
	return validators.Body[UpdateProfileRequest]("validatedProfile")
}

func ChangePassword() fiber.Handler {
	return validators.Body[ChangePasswordRequest]("validatedPassword")
}
