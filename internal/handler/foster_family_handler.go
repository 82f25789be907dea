package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/animeaux-api/internal/dto"
	"github.com/noah-isme/animeaux-api/internal/service"
	"github.com/noah-isme/animeaux-api/internal/utils"
)

// FosterFamilyHandler wires foster family management endpoints.
type FosterFamilyHandler struct {
	service service.FosterFamilyService
	logger  zerolog.Logger
}

// NewFosterFamilyHandler constructs the handler.
func NewFosterFamilyHandler(service service.FosterFamilyService, logger zerolog.Logger) *FosterFamilyHandler {
	return &FosterFamilyHandler{
		service: service,
		logger:  logger.With().Str("component", "foster_family_handler").Logger(),
	}
}

// Register attaches foster family routes to the router group.
func (h *FosterFamilyHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *FosterFamilyHandler) list(c *fiber.Ctx) error {
	page, pageSize, err := pageParams(c, 20, 100)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	isAvailable, err := parseQueryBool(c, "is_available")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid is_available")
	}

	req := dto.FosterFamilyListRequest{
		Page:        page,
		PageSize:    pageSize,
		Search:      c.Query("search"),
		City:        c.Query("city"),
		IsAvailable: isAvailable,
	}

	response, err := h.service.List(requestContext(c), req)
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list foster families")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list foster families")
	}

	return utils.SendSuccess(c, "foster families retrieved", response)
}

func (h *FosterFamilyHandler) get(c *fiber.Ctx) error {
	family, err := h.service.Get(requestContext(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrFosterFamilyNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "foster family not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch foster family")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch foster family")
	}

	return utils.SendSuccess(c, "foster family retrieved", family)
}

func (h *FosterFamilyHandler) create(c *fiber.Ctx) error {
	var payload dto.FosterFamilyCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	family, err := h.service.Create(requestContext(c), payload, userActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create foster family")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create foster family")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "foster family created", family)
}

func (h *FosterFamilyHandler) update(c *fiber.Ctx) error {
	var payload dto.FosterFamilyUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	family, err := h.service.Update(requestContext(c), c.Params("id"), payload, userActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFosterFamilyNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "foster family not found")
		case isValidationError(err):
			return sendValidationError(c, err)
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update foster family")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update foster family")
		}
	}

	return utils.SendSuccess(c, "foster family updated", family)
}

func (h *FosterFamilyHandler) delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(requestContext(c), id, userActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrFosterFamilyNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "foster family not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete foster family")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete foster family")
	}

	return utils.SendSuccess(c, "foster family deleted", fiber.Map{"id": id})
}
