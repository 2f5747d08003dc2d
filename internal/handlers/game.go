package handlers

import (
	"errors"

	"tkbet/internal/models"
	"tkbet/internal/services/game"
	"tkbet/internal/services/user"
	"tkbet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type GameHandler struct {
	gameService game.Service
	userService user.Service
}

func NewGameHandler(gameService game.Service, userService user.Service) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		userService: userService,
	}
}

// Play launches a game session for the authenticated player. The provider
// receives the player's current balance as the session stake.
func (h *GameHandler) Play(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var body struct {
		GameID string `json:"gameId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if body.GameID == "" {
		return utils.BadRequest(c, "gameId is required")
	}

	player, err := h.userService.Get(claims.UserID)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	launchURL, err := h.gameService.Launch(c.Context(), body.GameID, player.PlayerID, player.Balance)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrGameNotFound):
			return utils.NotFound(c, "Game not found")
		case errors.Is(err, game.ErrMissingGameKey):
			return utils.BadGateway(c, "Game provider not configured")
		default:
			return utils.BadGateway(c, "Game launch failed")
		}
	}

	// The storefront reads gameUrl off the top level, not the data envelope.
	return c.JSON(fiber.Map{
		"success": true,
		"gameUrl": launchURL,
	})
}

// HotGames lists the games highlighted on the storefront home page.
func (h *GameHandler) HotGames(c *fiber.Ctx) error {
	games, err := h.gameService.ListHot()
	if err != nil {
		return utils.InternalError(c, "Failed to list games")
	}
	return utils.Success(c, games)
}

// Admin: game catalog CRUD.

func (h *GameHandler) AdminList(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)

	games, total, err := h.gameService.List(p.Limit, p.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list games")
	}

	return utils.Success(c, fiber.Map{
		"games": games,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	})
}

func (h *GameHandler) AdminCreate(c *fiber.Ctx) error {
	var g models.Game
	if err := c.BodyParser(&g); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if g.GameAPIID == "" || g.Name == "" {
		return utils.BadRequest(c, "gameApiId and name are required")
	}

	if err := h.gameService.Create(&g); err != nil {
		return utils.BadRequest(c, err.Error())
	}
	return utils.Created(c, g)
}

func (h *GameHandler) AdminUpdate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var g models.Game
	if err := c.BodyParser(&g); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	g.ID = id

	if err := h.gameService.Update(&g); err != nil {
		return utils.BadRequest(c, err.Error())
	}
	return utils.Success(c, g)
}

func (h *GameHandler) AdminDelete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if err := h.gameService.Delete(id); err != nil {
		return utils.InternalError(c, "Failed to delete game")
	}
	return utils.Success(c, fiber.Map{"message": "Game deleted"})
}
