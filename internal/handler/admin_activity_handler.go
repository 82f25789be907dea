package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/animeaux-api/internal/dto"
	"github.com/noah-isme/animeaux-api/internal/service"
	"github.com/noah-isme/animeaux-api/internal/utils"
)

// AdminActivityHandler exposes activity log endpoints.
type AdminActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewAdminActivityHandler constructs the handler.
func NewAdminActivityHandler(service service.ActivityService, logger zerolog.Logger) *AdminActivityHandler {
	return &AdminActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_activity_handler").Logger(),
	}
}

// Register attaches activity log routes to the router group. The log is
// append-only through the recorder, so no write route is exposed.
func (h *AdminActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *AdminActivityHandler) list(c *fiber.Ctx) error {
	page, pageSize, err := pageParams(c, 25, 200)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	dateStart, err := parseQueryDate(c, "date_start", false)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid date_start")
	}
	dateEnd, err := parseQueryDate(c, "date_end", true)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid date_end")
	}
	if dateStart != nil && dateEnd != nil && dateEnd.Before(*dateStart) {
		return utils.SendError(c, fiber.StatusBadRequest, "date_end must not precede date_start")
	}

	req := dto.ActivityListRequest{
		Page:       page,
		PageSize:   pageSize,
		Actions:    upperAll(parseQueryList(c, "actions")),
		Resources:  upperAll(parseQueryList(c, "resources")),
		ActorIDs:   parseQueryList(c, "actor_ids"),
		ResourceID: strings.TrimSpace(c.Query("resource_id")),
		DateStart:  dateStart,
		DateEnd:    dateEnd,
	}

	response, err := h.service.List(requestContext(c), req)
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activity logs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity logs")
	}

	return utils.SendSuccess(c, "activity logs", response)
}

func (h *AdminActivityHandler) get(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	entry, err := h.service.Get(requestContext(c), id, parseQueryList(c, "fields"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "activity log not found")
		case errors.Is(err, service.ErrInvalidActivityField):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch activity log")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch activity log")
		}
	}

	return utils.SendSuccess(c, "activity log retrieved", entry)
}

func upperAll(values []string) []string {
	for i := range values {
		values[i] = strings.ToUpper(values[i])
	}
	return values
}
