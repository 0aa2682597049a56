package handlers

import (
	"errors"

	"shopno-backend/internal/adapters/http/middleware"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/core/services"
	"shopno-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CashbookHandler handles income, expense and donation endpoints
type CashbookHandler struct {
	cashbookService *services.CashbookService
}

// NewCashbookHandler creates a new cashbook handler
func NewCashbookHandler(cashbookService *services.CashbookService) *CashbookHandler {
	return &CashbookHandler{cashbookService: cashbookService}
}

// ============================================================
// Income
// ============================================================

// ListIncome handles income listing
// @Summary List income
// @Tags Income
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /income [get]
func (h *CashbookHandler) ListIncome(c *fiber.Ctx) error {
	records, err := h.cashbookService.ListIncome(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list income")
	}
	return response.Success(c, "Income retrieved successfully", records)
}

// CreateIncome handles income recording
// @Summary Create income
// @Tags Income
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CashEntryInput true "Income data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /income [post]
func (h *CashbookHandler) CreateIncome(c *fiber.Ctx) error {
	var input services.CashEntryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.cashbookService.CreateIncome(c.Context(), middleware.GetSession(c), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Title and positive amount are required")
		}
		return response.InternalServerError(c, "Failed to create income")
	}
	return response.Created(c, "Income recorded successfully", record)
}

// UpdateIncome handles income edits
// @Summary Update income
// @Tags Income
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Income ID"
// @Param body body services.CashEntryInput true "Income data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /income/{id} [put]
func (h *CashbookHandler) UpdateIncome(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid income ID")
	}

	var input services.CashEntryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.cashbookService.UpdateIncome(c.Context(), middleware.GetSession(c), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Income record not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid income data")
		default:
			return response.InternalServerError(c, "Failed to update income")
		}
	}
	return response.Success(c, "Income updated successfully", record)
}

// DeleteIncome handles income removal
// @Summary Delete income
// @Tags Income
// @Produce json
// @Security BearerAuth
// @Param id path int true "Income ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /income/{id} [delete]
func (h *CashbookHandler) DeleteIncome(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid income ID")
	}

	if err := h.cashbookService.DeleteIncome(c.Context(), middleware.GetSession(c), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Income record not found")
		}
		return response.InternalServerError(c, "Failed to delete income")
	}
	return response.Success(c, "Income deleted successfully", nil)
}

// ============================================================
// Expenses
// ============================================================

// ListExpenses handles expense listing
// @Summary List expenses
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /expenses [get]
func (h *CashbookHandler) ListExpenses(c *fiber.Ctx) error {
	records, err := h.cashbookService.ListExpenses(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list expenses")
	}
	return response.Success(c, "Expenses retrieved successfully", records)
}

// CreateExpense handles expense recording
// @Summary Create expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CashEntryInput true "Expense data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /expenses [post]
func (h *CashbookHandler) CreateExpense(c *fiber.Ctx) error {
	var input services.CashEntryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.cashbookService.CreateExpense(c.Context(), middleware.GetSession(c), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Title and positive amount are required")
		}
		return response.InternalServerError(c, "Failed to create expense")
	}
	return response.Created(c, "Expense recorded successfully", record)
}

// UpdateExpense handles expense edits
// @Summary Update expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Param body body services.CashEntryInput true "Expense data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /expenses/{id} [put]
func (h *CashbookHandler) UpdateExpense(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid expense ID")
	}

	var input services.CashEntryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.cashbookService.UpdateExpense(c.Context(), middleware.GetSession(c), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Expense record not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid expense data")
		default:
			return response.InternalServerError(c, "Failed to update expense")
		}
	}
	return response.Success(c, "Expense updated successfully", record)
}

// DeleteExpense handles expense removal
// @Summary Delete expense
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /expenses/{id} [delete]
func (h *CashbookHandler) DeleteExpense(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid expense ID")
	}

	if err := h.cashbookService.DeleteExpense(c.Context(), middleware.GetSession(c), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Expense record not found")
		}
		return response.InternalServerError(c, "Failed to delete expense")
	}
	return response.Success(c, "Expense deleted successfully", nil)
}

// ============================================================
// Donations
// ============================================================

// ListDonations handles donation listing
// @Summary List donations
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /donations [get]
func (h *CashbookHandler) ListDonations(c *fiber.Ctx) error {
	records, err := h.cashbookService.ListDonations(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list donations")
	}
	return response.Success(c, "Donations retrieved successfully", records)
}

// CreateDonation handles donation recording
// @Summary Create donation
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.DonationInput true "Donation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /donations [post]
func (h *CashbookHandler) CreateDonation(c *fiber.Ctx) error {
	var input services.DonationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.cashbookService.CreateDonation(c.Context(), middleware.GetSession(c), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Recipient, purpose and positive amount are required")
		}
		return response.InternalServerError(c, "Failed to create donation")
	}
	return response.Created(c, "Donation recorded successfully", record)
}

// UpdateDonation handles donation edits
// @Summary Update donation
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Param body body services.DonationInput true "Donation data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donations/{id} [put]
func (h *CashbookHandler) UpdateDonation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	var input services.DonationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.cashbookService.UpdateDonation(c.Context(), middleware.GetSession(c), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Donation not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid donation data")
		default:
			return response.InternalServerError(c, "Failed to update donation")
		}
	}
	return response.Success(c, "Donation updated successfully", record)
}

// DeleteDonation handles donation removal
// @Summary Delete donation
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donations/{id} [delete]
func (h *CashbookHandler) DeleteDonation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	if err := h.cashbookService.DeleteDonation(c.Context(), middleware.GetSession(c), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Donation not found")
		}
		return response.InternalServerError(c, "Failed to delete donation")
	}
	return response.Success(c, "Donation deleted successfully", nil)
}
