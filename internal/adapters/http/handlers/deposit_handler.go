package handlers

import (
	"errors"

	"shopno-backend/internal/adapters/http/middleware"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/core/services"
	"shopno-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DepositHandler handles monthly deposit endpoints
type DepositHandler struct {
	depositService *services.DepositService
}

// NewDepositHandler creates a new deposit handler
func NewDepositHandler(depositService *services.DepositService) *DepositHandler {
	return &DepositHandler{depositService: depositService}
}

// ListDeposits handles deposit listing
// @Summary List deposits
// @Description List deposits, optionally filtered by member, month and year
// @Tags Deposits
// @Produce json
// @Security BearerAuth
// @Param member_id query int false "Member ID"
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {object} response.Response
// @Router /deposits [get]
func (h *DepositHandler) ListDeposits(c *fiber.Ctx) error {
	filter := &services.DepositFilter{
		MemberID: uint(c.QueryInt("member_id")),
		Month:    c.QueryInt("month"),
		Year:     c.QueryInt("year"),
	}

	deposits, err := h.depositService.ListDeposits(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list deposits")
	}
	return response.Success(c, "Deposits retrieved successfully", deposits)
}

// CreateDeposit handles deposit collection
// @Summary Create deposit
// @Description Record one member's deposit for a month; one per member per month
// @Tags Deposits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDepositInput true "Deposit data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /deposits [post]
func (h *DepositHandler) CreateDeposit(c *fiber.Ctx) error {
	var input services.CreateDepositInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	deposit, err := h.depositService.CreateDeposit(c.Context(), middleware.GetSession(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateDeposit):
			return response.Conflict(c, "Deposit already recorded for this member and month")
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid deposit data")
		default:
			return response.InternalServerError(c, "Failed to create deposit")
		}
	}
	return response.Created(c, "Deposit recorded successfully", deposit)
}

// DeleteDeposit handles deposit removal
// @Summary Delete deposit
// @Description Remove a deposit record
// @Tags Deposits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Deposit ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /deposits/{id} [delete]
func (h *DepositHandler) DeleteDeposit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid deposit ID")
	}

	if err := h.depositService.DeleteDeposit(c.Context(), middleware.GetSession(c), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Deposit not found")
		}
		return response.InternalServerError(c, "Failed to delete deposit")
	}
	return response.Success(c, "Deposit deleted successfully", nil)
}

// TotalDeposits handles the deposit capital total
// @Summary Total deposits
// @Description The society's total deposit capital including opening balances
// @Tags Deposits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /deposits/total [get]
func (h *DepositHandler) TotalDeposits(c *fiber.Ctx) error {
	total, err := h.depositService.TotalDeposits(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute total deposits")
	}
	return response.Success(c, "Total deposits retrieved successfully", fiber.Map{
		"total": total,
	})
}
