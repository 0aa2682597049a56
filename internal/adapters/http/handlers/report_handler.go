package handlers

import (
	"errors"

	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/core/services"
	"shopno-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles statement endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MemberStatement handles member statement generation
// @Summary Member statement
// @Description One member's full deposit and loan history
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reports/members/{id} [get]
func (h *ReportHandler) MemberStatement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	statement, err := h.reportService.GetMemberStatement(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to build member statement")
	}
	return response.Success(c, "Member statement retrieved successfully", statement)
}

// MonthlyStatement handles monthly statement generation
// @Summary Monthly statement
// @Description The society's cash movement for one month
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reports/monthly [get]
func (h *ReportHandler) MonthlyStatement(c *fiber.Ctx) error {
	month := c.QueryInt("month")
	year := c.QueryInt("year")

	statement, err := h.reportService.GetMonthlyStatement(c.Context(), month, year)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Valid month and year are required")
		}
		return response.InternalServerError(c, "Failed to build monthly statement")
	}
	return response.Success(c, "Monthly statement retrieved successfully", statement)
}
