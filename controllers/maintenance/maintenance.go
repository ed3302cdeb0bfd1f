package maintenanceController

import (
	"dormaid/middleware"
	"dormaid/services/maintenanceService"
	maintenanceValidator "dormaid/validators/maintenance"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	tickets *maintenanceService.Service
}

func New(tickets *maintenanceService.Service) *Controller {
	return &Controller{tickets: tickets}
}

func (ctl *Controller) Create(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	req := c.Locals("validatedMaintenanceRequest").(*maintenanceValidator.CreateRequest)

	ticket, err := ctl.tickets.Create(c.UserContext(), userID, maintenanceService.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		ComplaintType: req.ComplaintType,
		Priority:      req.Priority,
		RoomNumber:    req.RoomNumber,
	})
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Maintenance request created successfully", ticket)
}

func (ctl *Controller) MyRequests(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	tickets, err := ctl.tickets.ListForStudent(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Maintenance requests fetched successfully", tickets)
}

func (ctl *Controller) Delete(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	ticketID := c.Locals("paramId").(uint)

	if err := ctl.tickets.Delete(c.UserContext(), userID, ticketID); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Maintenance request deleted successfully", nil)
}
