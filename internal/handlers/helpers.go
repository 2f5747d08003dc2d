package handlers

import (
	"errors"

	"tkbet/internal/models"
	"tkbet/internal/utils"
	"tkbet/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// extractUserClaims is a helper function to reduce duplication
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

// localizedBadRequest surfaces bilingual validation errors in the caller's
// language; everything else falls through with the plain message.
func localizedBadRequest(c *fiber.Ctx, err error) error {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return utils.BadRequest(c, vErr.Localized(utils.Lang(c)))
	}
	return utils.BadRequest(c, err.Error())
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
