package technicianController

import (
	"dormaid/middleware"
	"dormaid/models"
	"dormaid/services/maintenanceService"
	technicianValidator "dormaid/validators/technician"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	tickets *maintenanceService.Service
}

func New(tickets *maintenanceService.Service) *Controller {
	return &Controller{tickets: tickets}
}

func (ctl *Controller) Tasks(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	req := c.Locals("validatedTaskList").(*technicianValidator.TaskListRequest)

	status := ""
	if req.Status != "" {
		status = models.NormalizeStatus(req.Status)
	}
	tasks, err := ctl.tickets.ListForTechnician(c.UserContext(), userID, status)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tasks fetched successfully", tasks)
}

func (ctl *Controller) UpdateStatus(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	ticketID := c.Locals("paramId").(uint)
	req := c.Locals("validatedStatus").(*technicianValidator.UpdateStatusRequest)

	ticket, err := ctl.tickets.UpdateStatus(c.UserContext(), userID, ticketID, req.Status)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Task status updated successfully", ticket)
}
