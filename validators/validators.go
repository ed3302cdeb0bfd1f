// Package validators holds the shared request validator used by the
// per-area validator middlewares.
package validators

import (
	"dormaid/middleware"
	"dormaid/models"
	"dormaid/services/authService"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by the name the client sent them under.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "params"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	// An empty register number is left for the service to judge by role.
	mustRegister(v, "regno", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s == "" || authService.ValidRegisterNumber(s)
	})
	mustRegister(v, "ticketstatus", func(fl validator.FieldLevel) bool {
		return models.IsValidStatus(models.NormalizeStatus(fl.Field().String()))
	})
	mustRegister(v, "priority", func(fl validator.FieldLevel) bool {
		return models.IsValidPriority(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Struct validates req and returns a field -> message map, or nil when req
// is valid.
func Struct(req interface{}) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"request": err.Error()}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required!"
	case "email":
		return "Invalid email!"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long!", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters!", fe.Field(), fe.Param())
	case "gt":
		return fe.Field() + " must be a positive number!"
	case "regno":
		return "Invalid register number format (e.g., 23MIS0145)"
	case "ticketstatus":
		return "Invalid status. Valid statuses: pending, in-progress, resolved"
	case "priority":
		return "Invalid priority. Valid priorities: low, medium, high"
	default:
		return fe.Field() + " is invalid!"
	}
}

// ParamID reads the :id route parameter. It reports false unless the
// parameter is a positive integer.
func ParamID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// Body parses the JSON body into a T, validates it and stores it in
// c.Locals under key for the controller.
func Body[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(key, reqData)
		return c.Next()
	}
}

// Query is Body for the query string.
func Query[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if errors := Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(key, reqData)
		return c.Next()
	}
}

// IDParam checks the :id route parameter and stores it in c.Locals as "paramId".
func IDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := ParamID(c)
		if !ok {
			return middleware.ValidationErrorResponse(c, map[string]string{"id": "id must be a positive number!"})
		}
		c.Locals("paramId", id)
		return c.Next()
	}
}

// FlexibleID is an id sent either as a JSON number or as a numeric string, the
// way HTML select values arrive. null, "" and a missing field decode to zero.
// Anything else that is not a non-negative integer sets Invalid.
type FlexibleID struct {
	Value   uint
	Invalid bool
}

func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = FlexibleID{}
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		*id = FlexibleID{}
		return nil
	}

	n, err := strconv.ParseUint(s, 10, strconv.IntSize)
	if err != nil {
		*id = FlexibleID{Invalid: true}
		return nil
	}
	*id = FlexibleID{Value: uint(n)}
	return nil
}
