package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-service/internal/auth"
	"github.com/spec-kit/hospital-service/internal/domain"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

func newProtectedApp(t *testing.T, tm *auth.TokenManager, guards ...fiber.Handler) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		}
		return nil
	})

	middleware := auth.NewAuthMiddleware(tm, zap.NewNop())
	chain := append([]fiber.Handler{middleware.Handle}, guards...)
	chain = append(chain, func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return apperrors.NewInternalError(nil)
		}
		return c.JSON(fiber.Map{"subject": principal.SubjectID, "role": principal.Role})
	})
	app.Get("/protected", chain...)
	return app
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	app := newProtectedApp(t, tm)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareBadScheme(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	app := newProtectedApp(t, tm)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	app := newProtectedApp(t, tm)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	app := newProtectedApp(t, tm)

	token, _, err := tm.GenerateToken("patient-7", domain.RolePatient)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	app := newProtectedApp(t, tm, auth.RequireRole(domain.RoleDoctor))

	patientToken, _, err := tm.GenerateToken("patient-7", domain.RolePatient)
	assert.NoError(t, err)
	doctorToken, _, err := tm.GenerateToken("doctor-1", domain.RoleDoctor)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+doctorToken)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
