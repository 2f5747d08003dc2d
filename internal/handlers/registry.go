package handlers

import (
	"tkbet/internal/models"
	"tkbet/internal/services/registry"
	"tkbet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type RegistryHandler struct {
	registryService registry.Service
}

func NewRegistryHandler(registryService registry.Service) *RegistryHandler {
	return &RegistryHandler{
		registryService: registryService,
	}
}

// DepositTabs serves the storefront deposit page: active deposit methods
// with promotions joined, localized, one tab per method.
func (h *RegistryHandler) DepositTabs(c *fiber.Ctx) error {
	tabs, err := h.registryService.DepositTabs(c.Context(), utils.Lang(c))
	if err != nil {
		return utils.InternalError(c, "Failed to load deposit methods")
	}
	return utils.Success(c, tabs)
}

// Methods lists active methods of the requested kind for the storefront.
func (h *RegistryHandler) Methods(c *fiber.Ctx) error {
	kind := c.Query("kind")
	if kind != "" && kind != models.MethodKindDeposit && kind != models.MethodKindWithdraw {
		return utils.BadRequest(c, "Unknown method kind")
	}

	methods, err := h.registryService.ListActiveMethods(c.Context(), kind)
	if err != nil {
		return utils.InternalError(c, "Failed to load payment methods")
	}
	return utils.Success(c, methods)
}

// Promotions lists active promotions for the storefront.
func (h *RegistryHandler) Promotions(c *fiber.Ctx) error {
	promos, err := h.registryService.ListActivePromotions()
	if err != nil {
		return utils.InternalError(c, "Failed to load promotions")
	}
	return utils.Success(c, promos)
}

// Admin: payment method CRUD.

func (h *RegistryHandler) AdminListMethods(c *fiber.Ctx) error {
	methods, err := h.registryService.ListMethods()
	if err != nil {
		return utils.InternalError(c, "Failed to list payment methods")
	}
	return utils.Success(c, methods)
}

func (h *RegistryHandler) AdminCreateMethod(c *fiber.Ctx) error {
	var method models.PaymentMethod
	if err := c.BodyParser(&method); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.registryService.CreateMethod(&method); err != nil {
		return utils.BadRequest(c, err.Error())
	}
	return utils.Created(c, method)
}

func (h *RegistryHandler) AdminUpdateMethod(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	existing, err := h.registryService.GetMethod(id)
	if err != nil {
		return utils.NotFound(c, "Payment method not found")
	}

	if err := c.BodyParser(existing); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	existing.ID = id

	if err := h.registryService.UpdateMethod(existing); err != nil {
		return utils.BadRequest(c, err.Error())
	}
	return utils.Success(c, existing)
}

func (h *RegistryHandler) AdminDeleteMethod(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if err := h.registryService.DeleteMethod(id); err != nil {
		return utils.InternalError(c, "Failed to delete payment method")
	}
	return utils.Success(c, fiber.Map{"message": "Payment method deleted"})
}

// Admin: promotion CRUD.

func (h *RegistryHandler) AdminListPromotions(c *fiber.Ctx) error {
	promos, err := h.registryService.ListPromotions()
	if err != nil {
		return utils.InternalError(c, "Failed to list promotions")
	}
	return utils.Success(c, promos)
}

func (h *RegistryHandler) AdminCreatePromotion(c *fiber.Ctx) error {
	var promo models.Promotion
	if err := c.BodyParser(&promo); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.registryService.CreatePromotion(&promo); err != nil {
		return utils.BadRequest(c, err.Error())
	}
	return utils.Created(c, promo)
}

func (h *RegistryHandler) AdminUpdatePromotion(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	existing, err := h.registryService.GetPromotion(id)
	if err != nil {
		return utils.NotFound(c, "Promotion not found")
	}

	if err := c.BodyParser(existing); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	existing.ID = id

	if err := h.registryService.UpdatePromotion(existing); err != nil {
		return utils.BadRequest(c, err.Error())
	}
	return utils.Success(c, existing)
}

func (h *RegistryHandler) AdminDeletePromotion(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if err := h.registryService.DeletePromotion(id); err != nil {
		return utils.InternalError(c, "Failed to delete promotion")
	}
	return utils.Success(c, fiber.Map{"message": "Promotion deleted"})
}
