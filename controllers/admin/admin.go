package adminController

import (
	"dormaid/middleware"
	"dormaid/models"
	"dormaid/services/authService"
	"dormaid/services/maintenanceService"
	adminValidator "dormaid/validators/admin"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	users   *authService.Service
	tickets *maintenanceService.Service
}

func New(users *authService.Service, tickets *maintenanceService.Service) *Controller {
	return &Controller{users: users, tickets: tickets}
}

func (ctl *Controller) Complaints(c *fiber.Ctx) error {
	req := c.Locals("validatedComplaintList").(*adminValidator.ComplaintListRequest)

	status := ""
	if req.Status != "" {
		status = models.NormalizeStatus(req.Status)
	}
	tickets, err := ctl.tickets.ListAll(c.UserContext(), status)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaints fetched successfully", tickets)
}

func (ctl *Controller) Technicians(c *fiber.Ctx) error {
	technicians, err := ctl.users.ListTechnicians(c.UserContext())
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Technicians fetched successfully", technicians)
}

func (ctl *Controller) Users(c *fiber.Ctx) error {
	req := c.Locals("validatedUserList").(*adminValidator.UserListRequest)

	users, err := ctl.users.ListUsers(c.UserContext(), req.Role)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully", users)
}

func (ctl *Controller) Stats(c *fiber.Ctx) error {
	stats, err := ctl.tickets.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully", stats)
}

func (ctl *Controller) Assign(c *fiber.Ctx) error {
	admin, _ := middleware.CurrentUser(c)
	ticketID := c.Locals("paramId").(uint)
	req := c.Locals("validatedAssign").(*adminValidator.AssignRequest)

	ticket, err := ctl.tickets.Assign(c.UserContext(), admin.ID, ticketID, req.TechnicianID.Value)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Technician assigned successfully", ticket)
}
