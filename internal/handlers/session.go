package handlers

import (
	"context"
	"time"

	"tkbet/internal/config"
	"tkbet/internal/models"
	"tkbet/internal/services/registry"
	"tkbet/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionTTL bounds how long a deposit popup reference stays valid.
const SessionTTL = 20 * time.Minute

// SessionStore is the slice of the cache service the session handler needs.
type SessionStore interface {
	SaveDepositSession(ctx context.Context, ref string, session *models.DepositSession, ttl time.Duration) error
	GetDepositSession(ctx context.Context, ref string) (*models.DepositSession, error)
}

// SessionHandler hands the deposit popup an opaque reference instead of
// putting user context in the URL.
type SessionHandler struct {
	store    SessionStore
	registry registry.Service
}

func NewSessionHandler(store SessionStore, registryService registry.Service) *SessionHandler {
	return &SessionHandler{
		store:    store,
		registry: registryService,
	}
}

// Create opens a deposit session. Channels routed to an external gateway
// return a redirect URL instead of a popup reference.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var body struct {
		PaymentMethodID uint    `json:"paymentMethodId"`
		Channel         string  `json:"channel"`
		Amount          float64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	method, err := h.registry.GetMethod(body.PaymentMethodID)
	if err != nil {
		return utils.NotFound(c, "Payment method not found")
	}
	if method.Status != "active" || method.Kind != models.MethodKindDeposit {
		return utils.BadRequest(c, "Payment method unavailable")
	}
	if !method.HasGateway(body.Channel) {
		return utils.BadRequest(c, "Unknown payment channel")
	}
	if body.Amount < method.MinAmount || body.Amount > method.MaxAmount {
		return utils.BadRequest(c, "Amount out of range")
	}

	// Instant channels skip the manual popup entirely.
	if instant := config.GetEnv("INSTANT_CHANNEL", ""); instant != "" && instant == body.Channel {
		gateway := config.GetEnv("INSTANT_GENERATOR_URL", "")
		if gateway == "" {
			return utils.BadGateway(c, "Instant channel not configured")
		}
		return utils.Success(c, fiber.Map{"redirectUrl": gateway})
	}

	ref := uuid.New().String()
	session := &models.DepositSession{
		UserID:            claims.UserID,
		PaymentMethodID:   method.ID,
		Channel:           body.Channel,
		Amount:            body.Amount,
		MethodName:        method.MethodName,
		MethodNameBD:      method.MethodNameBD,
		MethodImage:       method.MethodImage,
		AgentWalletNumber: method.AgentWalletNumber,
		UserInputs:        method.UserInputs,
		CreatedAt:         time.Now(),
	}
	if err := h.store.SaveDepositSession(c.Context(), ref, session, SessionTTL); err != nil {
		return utils.InternalError(c, "Failed to open deposit session")
	}

	return utils.Created(c, fiber.Map{"reference": ref})
}

// Get exchanges the reference for the session context. Only the user who
// opened the session may read it.
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	ref := c.Params("reference")
	if ref == "" {
		return utils.BadRequest(c, "Missing session reference")
	}

	session, err := h.store.GetDepositSession(c.Context(), ref)
	if err != nil {
		return utils.NotFound(c, "Deposit session not found or expired")
	}
	if session.UserID != claims.UserID {
		return utils.Forbidden(c, "Session belongs to another user")
	}

	return utils.Success(c, session)
}
