package handler

import (
	"github.com/gofiber/fiber/v2"
	apperrors "github.com/ivangsquared/poc-address-finder/internal/pkg/errors"
	"github.com/ivangsquared/poc-address-finder/internal/pkg/utils"
	"github.com/ivangsquared/poc-address-finder/internal/pkg/validator"
	"github.com/ivangsquared/poc-address-finder/internal/usecase"
	"github.com/ivangsquared/poc-address-finder/internal/usecase/dto"
	"go.uber.org/zap"
)

// SelectionHandler exposes the selection session API.
type SelectionHandler struct {
	selectionUC *usecase.SelectionUseCase
	logger      *zap.Logger
}

func NewSelectionHandler(selectionUC *usecase.SelectionUseCase, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{
		selectionUC: selectionUC,
		logger:      logger,
	}
}

// CreateSession handles POST /api/v1/sessions.
func (h *SelectionHandler) CreateSession(c *fiber.Ctx) error {
	session, err := h.selectionUC.CreateSession(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, dto.NewSelectionResponse(session), nil)
}

// GetSession handles GET /api/v1/sessions/:id.
func (h *SelectionHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.selectionUC.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewSelectionResponse(session), nil)
}

// DeleteSession handles DELETE /api/v1/sessions/:id.
func (h *SelectionHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.selectionUC.DeleteSession(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SelectPoint handles POST /api/v1/sessions/:id/select.
func (h *SelectionHandler) SelectPoint(c *fiber.Ctx) error {
	var req dto.SelectPointRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidCoordinates)
	}

	session, err := h.selectionUC.SelectPoint(c.Context(), c.Params("id"), req.Lat, req.Lng)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, dto.NewSelectionResponse(session), nil)
}

// UseCurrentLocation handles POST /api/v1/sessions/:id/locate.
func (h *SelectionHandler) UseCurrentLocation(c *fiber.Ctx) error {
	session, err := h.selectionUC.UseCurrentLocation(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewSelectionResponse(session), nil)
}

// EditAddress handles PUT /api/v1/sessions/:id/address.
func (h *SelectionHandler) EditAddress(c *fiber.Ctx) error {
	var req dto.EditAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	session, err := h.selectionUC.EditAddress(c.Context(), c.Params("id"), req.Address)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewSelectionResponse(session), nil)
}

// Confirm handles POST /api/v1/sessions/:id/confirm.
func (h *SelectionHandler) Confirm(c *fiber.Ctx) error {
	session, err := h.selectionUC.Confirm(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewSelectionResponse(session), nil)
}

// GetMarkers handles GET /api/v1/sessions/:id/markers.
func (h *SelectionHandler) GetMarkers(c *fiber.Ctx) error {
	result, err := h.selectionUC.Markers(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Markers),
	})
}
