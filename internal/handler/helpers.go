package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/animeaux-api/internal/middleware"
	"github.com/noah-isme/animeaux-api/internal/service"
	"github.com/noah-isme/animeaux-api/internal/utils"
)

const dateOnlyLayout = "2006-01-02"

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseQueryList accepts both repeated keys (?a=x&a=y) and comma separated values (?a=x,y).
func parseQueryList(c *fiber.Ctx, key string) []string {
	var result []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		result = append(result, splitAndTrim(string(raw))...)
	}
	return result
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseQueryBool(c *fiber.Ctx, key string) (*bool, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseQueryDate reads an RFC 3339 instant or a calendar date. A calendar
// date used as an upper bound covers the whole day.
func parseQueryDate(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		utc := parsed.UTC()
		return &utc, nil
	}

	parsed, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Millisecond)
	}
	return &parsed, nil
}

func pageParams(c *fiber.Ctx, defaultSize, maxSize int) (int, int, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return 0, 0, errors.New("invalid page")
	}
	if page <= 0 {
		page = 1
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return 0, 0, errors.New("invalid page size")
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	} else if pageSize > maxSize {
		pageSize = maxSize
	}

	return page, pageSize, nil
}

func userIDFromContext(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return strings.TrimSpace(id)
	}
	return ""
}

func userActorFromContext(c *fiber.Ctx) service.ActivityActor {
	return service.UserActor{ID: userIDFromContext(c)}
}

// requestContext carries the correlation identifier set by the middleware.
func requestContext(c *fiber.Ctx) context.Context {
	return c.UserContext()
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func sendValidationError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return utils.Fail(c, fiber.StatusBadRequest, "validation failed", details)
}
