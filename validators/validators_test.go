package validators

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string  `json:"name" validate:"required,min=3"`
	Email    string  `json:"email" validate:"omitempty,email"`
	RegNo    *string `json:"registerNumber" validate:"omitempty,regno"`
	Status   string  `query:"status" validate:"omitempty,ticketstatus"`
	Priority string  `json:"priority" validate:"omitempty,priority"`
}

func strPtr(s string) *string { return &s }

func TestStructValid(t *testing.T) {
	assert.Nil(t, Struct(&sample{Name: "alice", Email: "a@b.co", RegNo: strPtr("23MIS0145"), Status: "completed", Priority: "HIGH"}))
	assert.Nil(t, Struct(&sample{Name: "alice", RegNo: strPtr("")}))
}

func TestStructReportsClientFieldNames(t *testing.T) {
	errs := Struct(&sample{Name: "al", Email: "nope", RegNo: strPtr("23MI0145"), Status: "done", Priority: "urgent"})

	assert.Equal(t, map[string]string{
		"name":           "name must be at least 3 characters long!",
		"email":          "Invalid email!",
		"registerNumber": "Invalid register number format (e.g., 23MIS0145)",
		"status":         "Invalid status. Valid statuses: pending, in-progress, resolved",
		"priority":       "Invalid priority. Valid priorities: low, medium, high",
	}, errs)
}

func TestStructRequired(t *testing.T) {
	errs := Struct(&sample{})
	assert.Equal(t, map[string]string{"name": "name is required!"}, errs)
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data"`
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Post("/items/:id", IDParam(), Body[sample]("validatedSample"), func(c *fiber.Ctx) error {
		req := c.Locals("validatedSample").(*sample)
		return c.JSON(fiber.Map{"id": c.Locals("paramId"), "name": req.Name})
	})
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestBodyPassesValidRequest(t *testing.T) {
	status, raw := post(t, newApp(), "/items/7", `{"name":"alice"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"id":7,"name":"alice"}`, string(raw))
}

func TestBodyRejectsInvalidRequest(t *testing.T) {
	status, raw := post(t, newApp(), "/items/7", `{"name":"al"}`)
	require.Equal(t, fiber.StatusBadRequest, status)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.False(t, env.Success)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, env.Data, "name")
}

func TestBodyRejectsMalformedJSON(t *testing.T) {
	status, raw := post(t, newApp(), "/items/7", `{"name":`)
	require.Equal(t, fiber.StatusBadRequest, status)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, "Invalid request body!", env.Message)
}

func TestIDParam(t *testing.T) {
	for _, path := range []string{"/items/0", "/items/-3", "/items/abc"} {
		status, raw := post(t, newApp(), path, `{"name":"alice"}`)
		assert.Equal(t, fiber.StatusBadRequest, status, path)
		assert.Contains(t, string(raw), `"id"`, path)
	}
}

func TestFlexibleIDDecoding(t *testing.T) {
	cases := []struct {
		body    string
		want    uint
		invalid bool
	}{
		{`{"id":2}`, 2, false},
		{`{"id":"2"}`, 2, false},
		{`{"id":" 17 "}`, 17, false},
		{`{"id":""}`, 0, false},
		{`{"id":null}`, 0, false},
		{`{}`, 0, false},
		{`{"id":"abc"}`, 0, true},
		{`{"id":"-1"}`, 0, true},
		{`{"id":1.5}`, 0, true},
		{`{"id":true}`, 0, true},
	}
	for _, tc := range cases {
		var req struct {
			ID FlexibleID `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(tc.body), &req), tc.body)
		assert.Equal(t, tc.want, req.ID.Value, tc.body)
		assert.Equal(t, tc.invalid, req.ID.Invalid, tc.body)
	}
}
