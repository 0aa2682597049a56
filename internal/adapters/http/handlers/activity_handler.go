package handlers

import (
	"shopno-backend/internal/core/services"
	"shopno-backend/internal/pkg/pagination"
	"shopno-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ActivityHandler handles audit trail endpoints
type ActivityHandler struct {
	activityService *services.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ListActivities handles audit trail listing
// @Summary List activities
// @Description List the audit trail, most recent first, with rendered diffs
// @Tags Activities
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /activities [get]
func (h *ActivityHandler) ListActivities(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.activityService.ListActivities(c.Context(), &services.ListActivitiesInput{
		Page:  params.Page,
		Limit: params.Limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to list activities")
	}
	return response.Success(c, "Activities retrieved successfully", result)
}

// RecentActivities handles the dashboard feed
// @Summary Recent activities
// @Description Newest audit entries with login/logout filtered out
// @Tags Activities
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of entries"
// @Success 200 {object} response.Response
// @Router /activities/recent [get]
func (h *ActivityHandler) RecentActivities(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	activities, err := h.activityService.RecentActivities(c.Context(), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list recent activities")
	}
	return response.Success(c, "Recent activities retrieved successfully", activities)
}
