package handlers

import (
	"github.com/gofiber/fiber/v2"

	"worthy-waste/domain"
	"worthy-waste/internal/api/presenters"
	"worthy-waste/pkg/analytics"
)

type (
	AnalyticsHandler interface {
		GetSummary(c *fiber.Ctx) error
		GetImpact(c *fiber.Ctx) error
		GetLeaderboard(c *fiber.Ctx) error
		GetGlobalStats(c *fiber.Ctx) error
	}

	analyticsHandler struct {
		analyticsService analytics.AnalyticsService
	}
)

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandler{analyticsService: analyticsService}
}

func (h *analyticsHandler) GetSummary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.analyticsService.GetUserSummary(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetSummary, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSummary)
}

func (h *analyticsHandler) GetImpact(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.analyticsService.GetMonthlyImpact(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetImpact, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetImpact)
}

func (h *analyticsHandler) GetLeaderboard(c *fiber.Ctx) error {
	metric := c.Query("metric", domain.LeaderboardMetricGreenCoins)
	limit := c.QueryInt("limit", domain.DefaultLeaderboardLimit)

	res, err := h.analyticsService.GetLeaderboard(c.Context(), metric, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetLeaderboard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLeaderboard)
}

func (h *analyticsHandler) GetGlobalStats(c *fiber.Ctx) error {
	res, err := h.analyticsService.GetGlobalStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetGlobalStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGlobalStats)
}
