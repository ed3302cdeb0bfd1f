package technicianValidator

import (
	"dormaid/validators"

	"github.com/gofiber/fiber/v2"
)

type TaskListRequest struct {
	Status string `query:"status" validate:"omitempty,ticketstatus"`
}

// UpdateStatusRequest accepts "completed" as a spelling of resolved.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,ticketstatus"`
}

func TaskList() fiber.Handler {
	return validators.Query[TaskListRequest]("validatedTaskList")
}

func UpdateStatus() fiber.Handler {
	return validators.Body[UpdateStatusRequest]("validatedStatus")
}
