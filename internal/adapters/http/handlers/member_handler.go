package handlers

import (
	"errors"

	"shopno-backend/internal/adapters/http/middleware"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/core/services"
	"shopno-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member registry endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// ListMembers handles member listing
// @Summary List members
// @Description List members, optionally filtered by search text and status
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or phone search"
// @Param status query string false "active or inactive"
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) ListMembers(c *fiber.Ctx) error {
	members, err := h.memberService.ListMembers(c.Context(), c.Query("search"), c.Query("status"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}
	return response.Success(c, "Members retrieved successfully", members)
}

// GetMember handles single member retrieval
// @Summary Get member
// @Description Get one member with their deposit and loan standing
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) GetMember(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	detail, err := h.memberService.GetMember(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}
	return response.Success(c, "Member retrieved successfully", detail)
}

// CreateMember handles member registration
// @Summary Create member
// @Description Register a new member, optionally with an opening balance
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMemberInput true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) CreateMember(c *fiber.Ctx) error {
	var input services.CreateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.CreateMember(c.Context(), middleware.GetSession(c), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Name and phone are required")
		}
		return response.InternalServerError(c, "Failed to create member")
	}
	return response.Created(c, "Member created successfully", member)
}

// UpdateMember handles member profile updates
// @Summary Update member
// @Description Edit a member's profile; the opening balance cannot change
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body services.UpdateMemberInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) UpdateMember(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.UpdateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.UpdateMember(c.Context(), middleware.GetSession(c), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid member data")
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}
	return response.Success(c, "Member updated successfully", member)
}

// DeleteMember handles member removal
// @Summary Delete member
// @Description Remove a member; refused while an active loan exists
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members/{id} [delete]
func (h *MemberHandler) DeleteMember(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.memberService.DeleteMember(c.Context(), middleware.GetSession(c), uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, services.ErrMemberHasActiveLoan):
			return response.Conflict(c, "Member has an active loan")
		default:
			return response.InternalServerError(c, "Failed to delete member")
		}
	}
	return response.Success(c, "Member deleted successfully", nil)
}
