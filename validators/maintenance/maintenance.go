package maintenanceValidator

import (
	"dormaid/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Description   string `json:"description" validate:"required"`
	ComplaintType string `json:"complaint_type" validate:"max=50"`
	Priority      string `json:"priority" validate:"omitempty,priority"`
	RoomNumber    string `json:"room_number" validate:"max=20"`
}

func Create() fiber.Handler {
	return validators.Body[CreateRequest]("validatedMaintenanceRequest")
}
