package adminValidator

import (
	"dormaid/middleware"
	"dormaid/validators"

	"github.com/gofiber/fiber/v2"
)

type ComplaintListRequest struct {
	Status string `query:"status" validate:"omitempty,ticketstatus"`
}

type UserListRequest struct {
	Role string `query:"role" validate:"omitempty,oneof=student technician admin warden"`
}

// AssignRequest accepts technicianId as a number or a numeric string. A missing
// or empty id is left as zero and reported with the assignment's own message.
type AssignRequest struct {
	TechnicianID validators.FlexibleID `json:"technicianId"`
}

func ComplaintList() fiber.Handler {
	return validators.Query[ComplaintListRequest]("validatedComplaintList")
}

func UserList() fiber.Handler {
	return validators.Query[UserListRequest]("validatedUserList")
}

func Assign() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AssignRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.TechnicianID.Invalid {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"technicianId": "technicianId must be a positive number!",
			})
		}

		c.Locals("validatedAssign", reqData)
		return c.Next()
	}
}
