package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edugenius/edugenius-api/internal/dto"
	"github.com/edugenius/edugenius-api/internal/service"
	"github.com/edugenius/edugenius-api/internal/utils"
)

// UserHandler wires profile, learning-style, dashboard and activity routes.
type UserHandler struct {
	users     service.UserService
	dashboard service.DashboardService
	activity  service.ActivityService
	logger    zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(users service.UserService, dashboard service.DashboardService, activity service.ActivityService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:     users,
		dashboard: dashboard,
		activity:  activity,
		logger:    logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches the user endpoints to the router group.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("/profile", h.profile)
	router.Put("/profile", h.updateProfile)
	router.Get("/learning-style/assessment", h.assessment)
	router.Post("/learning-style/submit", h.submitAssessment)
	router.Get("/dashboard", h.dashboardSummary)
	router.Get("/activity", h.activityList)
}

func (h *UserHandler) profile(c *fiber.Ctx) error {
	profile, err := h.users.GetProfile(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *UserHandler) updateProfile(c *fiber.Ctx) error {
	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	profile, err := h.users.UpdateProfile(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile updated", profile)
}

func (h *UserHandler) assessment(c *fiber.Ctx) error {
	questions, err := h.users.GenerateAssessment(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assessment generated", questions)
}

func (h *UserHandler) submitAssessment(c *fiber.Ctx) error {
	var payload dto.AssessmentSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.users.SubmitAssessment(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "learning style updated", result)
}

func (h *UserHandler) dashboardSummary(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetDashboard(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "dashboard retrieved", summary)
}

func (h *UserHandler) activityList(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}

	entries, err := h.activity.List(c.Context(), userIDFromContext(c), limit, offset)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "activity retrieved", entries)
}

func (h *UserHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
