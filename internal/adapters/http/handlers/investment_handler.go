package handlers

import (
	"errors"

	"shopno-backend/internal/adapters/http/middleware"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/core/services"
	"shopno-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// InvestmentHandler handles investment endpoints
type InvestmentHandler struct {
	investmentService *services.InvestmentService
}

// NewInvestmentHandler creates a new investment handler
func NewInvestmentHandler(investmentService *services.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// ListInvestments handles investment listing
// @Summary List investments
// @Description List investments with their returns and net figures
// @Tags Investments
// @Produce json
// @Security BearerAuth
// @Param status query string false "active or completed"
// @Success 200 {object} response.Response
// @Router /investments [get]
func (h *InvestmentHandler) ListInvestments(c *fiber.Ctx) error {
	investments, err := h.investmentService.ListInvestments(c.Context(), c.Query("status"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list investments")
	}
	return response.Success(c, "Investments retrieved successfully", investments)
}

// GetInvestment handles single investment retrieval
// @Summary Get investment
// @Description Get one investment with its return history
// @Tags Investments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Investment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid investment ID")
	}

	detail, err := h.investmentService.GetInvestment(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Investment not found")
		}
		return response.InternalServerError(c, "Failed to get investment")
	}
	return response.Success(c, "Investment retrieved successfully", detail)
}

// CreateInvestment handles new investment recording
// @Summary Create investment
// @Description Record a new deployment of society capital
// @Tags Investments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateInvestmentInput true "Investment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *fiber.Ctx) error {
	var input services.CreateInvestmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	investment, err := h.investmentService.CreateInvestment(c.Context(), middleware.GetSession(c), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Title and positive amount are required")
		}
		return response.InternalServerError(c, "Failed to create investment")
	}
	return response.Created(c, "Investment created successfully", investment)
}

// CompleteInvestment handles closing an investment
// @Summary Complete investment
// @Description Close an investment; its principal stops counting as deployed
// @Tags Investments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Investment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /investments/{id}/complete [patch]
func (h *InvestmentHandler) CompleteInvestment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid investment ID")
	}

	investment, err := h.investmentService.CompleteInvestment(c.Context(), middleware.GetSession(c), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Investment not found")
		}
		return response.InternalServerError(c, "Failed to complete investment")
	}
	return response.Success(c, "Investment completed successfully", investment)
}

// DeleteInvestment handles investment removal
// @Summary Delete investment
// @Description Remove an investment and its return history
// @Tags Investments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Investment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid investment ID")
	}

	if err := h.investmentService.DeleteInvestment(c.Context(), middleware.GetSession(c), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Investment not found")
		}
		return response.InternalServerError(c, "Failed to delete investment")
	}
	return response.Success(c, "Investment deleted successfully", nil)
}

// AddReturn handles return posting
// @Summary Add investment return
// @Description Post a profit or loss against an investment
// @Tags Investments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Investment ID"
// @Param body body services.AddReturnInput true "Return data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /investments/{id}/returns [post]
func (h *InvestmentHandler) AddReturn(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid investment ID")
	}

	var input services.AddReturnInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	ret, err := h.investmentService.AddReturn(c.Context(), middleware.GetSession(c), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Investment not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid return data")
		default:
			return response.InternalServerError(c, "Failed to record return")
		}
	}
	return response.Created(c, "Return recorded successfully", ret)
}

// DeleteReturn handles return removal
// @Summary Delete investment return
// @Description Remove a posted return
// @Tags Investments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Return ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /investments/returns/{id} [delete]
func (h *InvestmentHandler) DeleteReturn(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid return ID")
	}

	if err := h.investmentService.DeleteReturn(c.Context(), middleware.GetSession(c), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Return not found")
		}
		return response.InternalServerError(c, "Failed to delete return")
	}
	return response.Success(c, "Return deleted successfully", nil)
}
