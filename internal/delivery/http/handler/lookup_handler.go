package handler

import (
	"github.com/gofiber/fiber/v2"
	apperrors "github.com/ivangsquared/poc-address-finder/internal/pkg/errors"
	"github.com/ivangsquared/poc-address-finder/internal/usecase"
	"go.uber.org/zap"
)

// LookupHandler serves the two mock lookup endpoints. Their wire shapes are
// flat and fixed (no data/meta envelope) because existing clients consume
// them as-is.
type LookupHandler struct {
	lookupUC *usecase.LookupUseCase
	logger   *zap.Logger
}

func NewLookupHandler(lookupUC *usecase.LookupUseCase, logger *zap.Logger) *LookupHandler {
	return &LookupHandler{
		lookupUC: lookupUC,
		logger:   logger,
	}
}

// GetAddress handles GET /api/addressfinder?nmi=<identifier>.
func (h *LookupHandler) GetAddress(c *fiber.Ctx) error {
	result, err := h.lookupUC.AddressFor(c.Query("nmi"))
	if err != nil {
		return sendFlatError(c, err)
	}

	return c.JSON(result)
}

// GetGeocode handles GET /api/geocode?nmi=<identifier>.
func (h *LookupHandler) GetGeocode(c *fiber.Ctx) error {
	result, err := h.lookupUC.GeocodeFor(c.Query("nmi"))
	if err != nil {
		return sendFlatError(c, err)
	}

	return c.JSON(result)
}

// sendFlatError writes the legacy {"error": "<message>"} body.
func sendFlatError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return c.Status(appErr.StatusCode).JSON(fiber.Map{"error": appErr.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": apperrors.ErrInternalServer.Message,
	})
}
