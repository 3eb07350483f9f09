package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-service/internal/api/http/handlers"
	"github.com/spec-kit/hospital-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Directory      *handlers.DirectoryHandler
	Appointments   *handlers.AppointmentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	app.Get("/doctors", cfg.Directory.ListDoctors)
	app.Get("/doctors/:id", cfg.Directory.GetDoctor)
	app.Get("/patients", cfg.Directory.ListPatients)
	app.Get("/patients/:id", cfg.Directory.GetPatient)

	appointments := app.Group("/appointments", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	appointments.Get("/", cfg.Appointments.List)
	appointments.Post("/", cfg.Appointments.Create)
	appointments.Get("/:id", cfg.Appointments.Get)
	appointments.Put("/:id", cfg.Appointments.Update)
	appointments.Delete("/:id", cfg.Appointments.Delete)
}
