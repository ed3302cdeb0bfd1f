package middleware

import (
	"dormaid/database"
	"dormaid/models"
	"dormaid/utils"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

func TestIssueAndVerifyToken(t *testing.T) {
	tokens := NewTokenService(testSecret, 7*24*time.Hour)

	signed, err := tokens.IssueToken(42)
	require.NoError(t, err)

	id, err := tokens.VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestTokenLifetimeIsConfigured(t *testing.T) {
	tokens := NewTokenService(testSecret, 7*24*time.Hour)
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issued }

	signed, err := tokens.IssueToken(1)
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(signed, claims)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	tokens := NewTokenService(testSecret, time.Hour)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, err := tokens.IssueToken(7)
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).VerifyToken(signed)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	signed, err := NewTokenService("other-secret", time.Hour).IssueToken(7)
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).VerifyToken(signed)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestVerifyTokenRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).VerifyToken(signed)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokenService(testSecret, time.Hour).VerifyToken("not.a.token")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func newProtectedApp(tokens *TokenService) *fiber.App {
	app := fiber.New()
	app.Get("/me", JWTMiddleware(tokens), func(c *fiber.Ctx) error {
		id, _ := UserID(c)
		return JsonResponse(c, fiber.StatusOK, true, "ok", id)
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	tokens := NewTokenService(testSecret, time.Hour)
	app := newProtectedApp(tokens)
	valid, err := tokens.IssueToken(9)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"bad token", "Bearer nope", fiber.StatusUnauthorized},
		{"valid", "Bearer " + valid, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			env := decode(t, resp)
			if tc.status == fiber.StatusOK {
				assert.True(t, env.Success)
				assert.JSONEq(t, "9", string(env.Data))
			} else {
				assert.False(t, env.Success)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	db := database.NewTestDB(t)
	tokens := NewTokenService(testSecret, time.Hour)

	admin := models.User{Username: "warden", Email: "w@example.com", PasswordHash: "x", Role: models.RoleWarden}
	student := models.User{Username: "alice", Email: "a@example.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&student).Error)

	app := fiber.New()
	app.Get("/admin", JWTMiddleware(tokens), RequireRole(db, models.AdminRoles...), func(c *fiber.Ctx) error {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		return JsonResponse(c, fiber.StatusOK, true, u.Username, nil)
	})

	call := func(userID uint) *http.Response {
		signed, err := tokens.IssueToken(userID)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := call(admin.ID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "warden", decode(t, resp).Message)

	assert.Equal(t, fiber.StatusForbidden, call(student.ID).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, call(9999).StatusCode, "deleted users are not authenticated")
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name       string
		production bool
		err        error
		status     int
		message    string
	}{
		{"validation", true, utils.ErrInvalidStatus, fiber.StatusBadRequest, utils.ErrInvalidStatus.Message},
		{"auth", true, utils.ErrInvalidCredentials, fiber.StatusUnauthorized, utils.ErrInvalidCredentials.Message},
		{"forbidden", true, utils.ErrForbidden, fiber.StatusForbidden, utils.ErrForbidden.Message},
		{"not found", true, utils.ErrTaskNotFound, fiber.StatusNotFound, utils.ErrTaskNotFound.Message},
		{"conflict", true, utils.ErrEmailTaken, fiber.StatusConflict, utils.ErrEmailTaken.Message},
		{"internal hidden", true, utils.Internal("list", errors.New("db down")), fiber.StatusInternalServerError, "Internal server error"},
		{"internal shown", false, utils.Internal("list", errors.New("db down")), fiber.StatusInternalServerError, "INTERNAL: list: db down"},
		{"plain error hidden", true, errors.New("boom"), fiber.StatusInternalServerError, "Internal server error"},
		{"fiber error", true, fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "Method Not Allowed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(tc.production)})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			env := decode(t, resp)
			assert.False(t, env.Success)
			assert.Equal(t, tc.message, env.Message)
		})
	}
}
