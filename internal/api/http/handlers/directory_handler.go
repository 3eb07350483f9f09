package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-service/internal/service"
)

// DirectoryHandler exposes public doctor/patient listings.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directoryService *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directoryService}
}

// ListDoctors GET /doctors.
func (h *DirectoryHandler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.directory.ListDoctors(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": doctors})
}

// GetDoctor GET /doctors/:id.
func (h *DirectoryHandler) GetDoctor(c *fiber.Ctx) error {
	doctor, err := h.directory.GetDoctor(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": doctor})
}

// ListPatients GET /patients.
func (h *DirectoryHandler) ListPatients(c *fiber.Ctx) error {
	patients, err := h.directory.ListPatients(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": patients})
}

// GetPatient GET /patients/:id.
func (h *DirectoryHandler) GetPatient(c *fiber.Ctx) error {
	patient, err := h.directory.GetPatient(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": patient})
}
