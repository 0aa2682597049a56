package handlers

import (
	"errors"

	"shopno-backend/internal/adapters/http/middleware"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/core/services"
	"shopno-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan lifecycle endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// StatusRequest represents a loan status change body
type StatusRequest struct {
	Status string `json:"status"`
}

// ListLoans handles loan listing
// @Summary List loans
// @Description List loans with repayment progress, optionally filtered by status
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param status query string false "active, completed or defaulted"
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) ListLoans(c *fiber.Ctx) error {
	loans, err := h.loanService.ListLoans(c.Context(), c.Query("status"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}
	return response.Success(c, "Loans retrieved successfully", loans)
}

// GetLoan handles single loan retrieval
// @Summary Get loan
// @Description Get one loan with its full payment history
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) GetLoan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan ID")
	}

	detail, err := h.loanService.GetLoan(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get loan")
	}
	return response.Success(c, "Loan retrieved successfully", detail)
}

// CreateLoan handles loan disbursement
// @Summary Create loan
// @Description Disburse a loan; monthly payment and end date are derived here
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateLoanInput true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) CreateLoan(c *fiber.Ctx) error {
	var input services.CreateLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.CreateLoan(c.Context(), middleware.GetSession(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, services.ErrInvalidLoanTerm):
			return response.BadRequest(c, "Loan term must be at least one month")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid loan data")
		default:
			return response.InternalServerError(c, "Failed to create loan")
		}
	}
	return response.Created(c, "Loan created successfully", loan)
}

// UpdateLoan handles loan term edits
// @Summary Update loan
// @Description Edit loan terms; the schedule is re-derived
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body services.UpdateLoanInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [put]
func (h *LoanHandler) UpdateLoan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var input services.UpdateLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.UpdateLoan(c.Context(), middleware.GetSession(c), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, services.ErrInvalidLoanTerm):
			return response.BadRequest(c, "Loan term must be at least one month")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid loan data")
		default:
			return response.InternalServerError(c, "Failed to update loan")
		}
	}
	return response.Success(c, "Loan updated successfully", loan)
}

// AddPayment handles repayment collection
// @Summary Add loan payment
// @Description Record a repayment; a fully repaid loan completes automatically
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body services.AddPaymentInput true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/payments [post]
func (h *LoanHandler) AddPayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var input services.AddPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payment, err := h.loanService.AddPayment(c.Context(), middleware.GetSession(c), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, services.ErrLoanNotActive):
			return response.Conflict(c, "Loan is not active")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid payment data")
		default:
			return response.InternalServerError(c, "Failed to record payment")
		}
	}
	return response.Created(c, "Payment recorded successfully", payment)
}

// UpdateStatus handles operator status changes
// @Summary Update loan status
// @Description Mark an active loan completed or defaulted; closed loans stay closed
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/status [patch]
func (h *LoanHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.UpdateStatus(c.Context(), middleware.GetSession(c), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, services.ErrLoanNotActive):
			return response.Conflict(c, "Loan is already closed")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid loan status")
		default:
			return response.InternalServerError(c, "Failed to update loan status")
		}
	}
	return response.Success(c, "Loan status updated successfully", loan)
}

// DeleteLoan handles loan removal
// @Summary Delete loan
// @Description Remove a loan and its payment history
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan ID")
	}

	if err := h.loanService.DeleteLoan(c.Context(), middleware.GetSession(c), uint(id)); err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to delete loan")
	}
	return response.Success(c, "Loan deleted successfully", nil)
}
