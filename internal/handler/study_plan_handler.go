package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edugenius/edugenius-api/internal/dto"
	"github.com/edugenius/edugenius-api/internal/service"
	"github.com/edugenius/edugenius-api/internal/utils"
)

// StudyPlanHandler wires study plan HTTP routes.
type StudyPlanHandler struct {
	plans  service.StudyPlanService
	logger zerolog.Logger
}

// NewStudyPlanHandler constructs the handler.
func NewStudyPlanHandler(plans service.StudyPlanService, logger zerolog.Logger) *StudyPlanHandler {
	return &StudyPlanHandler{
		plans:  plans,
		logger: logger.With().Str("component", "study_plan_handler").Logger(),
	}
}

// Register attaches study plan endpoints to the router group.
func (h *StudyPlanHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("/generate", h.create)
	router.Patch("/:id/sessions/:sessionId", h.updateSession)
	router.Delete("/:id", h.delete)
}

func (h *StudyPlanHandler) list(c *fiber.Ctx) error {
	plans, err := h.plans.List(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "study plans retrieved", plans)
}

func (h *StudyPlanHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	plan, err := h.plans.Get(c.Context(), userIDFromContext(c), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "study plan retrieved", plan)
}

func (h *StudyPlanHandler) create(c *fiber.Ctx) error {
	var payload dto.StudyPlanCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	plan, err := h.plans.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "study plan generated", plan)
}

func (h *StudyPlanHandler) updateSession(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	sessionID := strings.TrimSpace(c.Params("sessionId"))
	if sessionID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid session identifier")
	}

	var payload dto.SessionUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	plan, err := h.plans.UpdateSession(c.Context(), userIDFromContext(c), id, sessionID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "session updated", plan)
}

func (h *StudyPlanHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.plans.Delete(c.Context(), userIDFromContext(c), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "study plan deleted", fiber.Map{"id": id})
}

func (h *StudyPlanHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "study plan not found")
	case errors.Is(err, service.ErrSessionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrMaterialNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "material not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
