package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ai-bridge/backend/internal/storage/sqlite"
	"github.com/ai-bridge/backend/pkg/logger"
)

type VendorHandler struct {
	catalog *sqlite.Client
}

func NewVendorHandler(catalog *sqlite.Client) *VendorHandler {
	return &VendorHandler{
		catalog: catalog,
	}
}

func (h *VendorHandler) ListVendors(c *fiber.Ctx) error {
	fingerprint, err := h.catalog.Fingerprint(c.Context())
	if err != nil {
		logger.Warn("Failed to fingerprint catalog", zap.Error(err))
	} else {
		etag := `"` + fingerprint + `"`
		c.Set(fiber.HeaderETag, etag)
		if c.Get(fiber.HeaderIfNoneMatch) == etag {
			return c.SendStatus(fiber.StatusNotModified)
		}
	}

	vendors, err := h.catalog.ListVendors(c.Context())
	if err != nil {
		logger.Error("Failed to list vendors", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list vendors",
		})
	}

	return c.JSON(fiber.Map{
		"vendors": vendors,
		"count":   len(vendors),
	})
}

func (h *VendorHandler) GetVendor(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Vendor id is required",
		})
	}

	vendor, err := h.catalog.GetVendor(c.Context(), id)
	if err != nil {
		if errors.Is(err, sqlite.ErrVendorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Vendor not found",
			})
		}
		logger.Error("Failed to get vendor", zap.String("vendor_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get vendor",
		})
	}

	return c.JSON(vendor)
}
