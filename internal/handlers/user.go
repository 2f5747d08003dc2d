package handlers

import (
	"tkbet/internal/services/user"
	"tkbet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input user.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	created, err := h.userService.Register(input)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return utils.Created(c, fiber.Map{"user": created})
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	u, err := h.userService.Get(claims.UserID)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.Map{"user": u})
}

func (h *UserHandler) Balance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	snapshot, err := h.userService.Balance(claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to get balance")
	}

	return utils.Success(c, snapshot)
}

// List is the admin user listing.
func (h *UserHandler) List(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)

	users, total, err := h.userService.List(p.Limit, p.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list users")
	}

	return utils.Success(c, fiber.Map{
		"users": users,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	})
}

// AdminGet returns one user for the admin panel.
func (h *UserHandler) AdminGet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	u, err := h.userService.Get(id)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.Map{"user": u})
}

// AdminBalance returns one user's balance snapshot for resync.
func (h *UserHandler) AdminBalance(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	snapshot, err := h.userService.Balance(id)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, snapshot)
}

// AdminUpdate applies admin panel edits, including balance adjustments.
func (h *UserHandler) AdminUpdate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var input user.AdminUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	updated, err := h.userService.AdminUpdate(id, input)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return utils.Success(c, fiber.Map{"user": updated})
}
