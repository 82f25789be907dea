package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/animeaux-api/internal/dto"
	"github.com/noah-isme/animeaux-api/internal/service"
	"github.com/noah-isme/animeaux-api/internal/utils"
)

// AnimalHandler wires animal management endpoints.
type AnimalHandler struct {
	service service.AnimalService
	logger  zerolog.Logger
}

// NewAnimalHandler constructs the handler.
func NewAnimalHandler(service service.AnimalService, logger zerolog.Logger) *AnimalHandler {
	return &AnimalHandler{
		service: service,
		logger:  logger.With().Str("component", "animal_handler").Logger(),
	}
}

// Register attaches animal routes to the router group.
func (h *AnimalHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *AnimalHandler) list(c *fiber.Ctx) error {
	page, pageSize, err := pageParams(c, 20, 100)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	req := dto.AnimalListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Species:  parseQueryList(c, "species"),
		Statuses: parseQueryList(c, "status"),
	}

	response, err := h.service.List(requestContext(c), req)
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list animals")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list animals")
	}

	return utils.SendSuccess(c, "animals retrieved", response)
}

func (h *AnimalHandler) get(c *fiber.Ctx) error {
	animal, err := h.service.Get(requestContext(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrAnimalNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "animal not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch animal")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch animal")
	}

	return utils.SendSuccess(c, "animal retrieved", animal)
}

func (h *AnimalHandler) create(c *fiber.Ctx) error {
	var payload dto.AnimalCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	animal, err := h.service.Create(requestContext(c), payload, userActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create animal")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create animal")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "animal created", animal)
}

func (h *AnimalHandler) update(c *fiber.Ctx) error {
	var payload dto.AnimalUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	animal, err := h.service.Update(requestContext(c), c.Params("id"), payload, userActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnimalNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "animal not found")
		case isValidationError(err):
			return sendValidationError(c, err)
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update animal")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update animal")
		}
	}

	return utils.SendSuccess(c, "animal updated", animal)
}

func (h *AnimalHandler) delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(requestContext(c), id, userActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrAnimalNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "animal not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete animal")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete animal")
	}

	return utils.SendSuccess(c, "animal deleted", fiber.Map{"id": id})
}
