package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities/internal/dto"
	"github.com/noah-isme/gema-activities/internal/service"
	"github.com/noah-isme/gema-activities/internal/utils"
)

// ActivityHandler serves the activity listing and roster endpoints.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires the activity routes. Guards run in front of the roster mutations only.
func (h *ActivityHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("", h.list)
	router.Post("/:activity/signup", chain(guards, h.signup)...)
	router.Delete("/:activity/participants", chain(guards, h.unregister)...)
}

func chain(guards []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(guards)+1)
	handlers = append(handlers, guards...)
	return append(handlers, handler)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	activities, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activities")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activities")
	}

	c.Set(fiber.HeaderCacheControl, "no-cache")
	return utils.SendJSON(c, fiber.StatusOK, activities)
}

func (h *ActivityHandler) signup(c *fiber.Ctx) error {
	req := dto.SignupRequest{
		Activity: pathParam(c, "activity"),
		Email:    queryParam(c, "email"),
	}

	resp, err := h.service.Signup(c.UserContext(), req)
	if err != nil {
		return h.rosterError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, resp)
}

func (h *ActivityHandler) unregister(c *fiber.Ctx) error {
	req := dto.UnregisterRequest{
		Activity: pathParam(c, "activity"),
		Email:    queryParam(c, "email"),
	}

	resp, err := h.service.Unregister(c.UserContext(), req)
	if err != nil {
		return h.rosterError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, resp)
}

func (h *ActivityHandler) rosterError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, validationDetail(err))
	case errors.Is(err, service.ErrActivityNotFound):
		return utils.SendError(c, fiber.StatusBadRequest, "Activity not found")
	case errors.Is(err, service.ErrAlreadySignedUp):
		return utils.SendError(c, fiber.StatusBadRequest, "Student is already signed up")
	case errors.Is(err, service.ErrNotSignedUp):
		return utils.SendError(c, fiber.StatusBadRequest, "Student is not signed up for this activity")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("roster operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "roster operation failed")
	}
}
