package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"tkbet/internal/models"
	"tkbet/internal/services/game"
	"tkbet/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGameService struct {
	game.Service
	launchURL string
	launchErr error
	gotGameID string
}

func (s *stubGameService) Launch(ctx context.Context, gameAPIID, username string, money float64) (string, error) {
	s.gotGameID = gameAPIID
	return s.launchURL, s.launchErr
}

type stubUserService struct {
	user.Service
	u *models.User
}

func (s *stubUserService) Get(userID uint) (*models.User, error) {
	return s.u, nil
}

func playApp(h *GameHandler) *fiber.App {
	app := fiber.New()
	app.Post("/playgame", func(c *fiber.Ctx) error {
		c.Locals("claims", &models.UserClaims{UserID: 1})
		return h.Play(c)
	})
	return app
}

func TestPlayRespondsWithTopLevelGameURL(t *testing.T) {
	player := &models.User{PlayerID: "P12345678", Balance: 250}
	player.ID = 1
	games := &stubGameService{launchURL: "https://provider.example/session/abc"}
	h := NewGameHandler(games, &stubUserService{u: player})

	req := httptest.NewRequest(fiber.MethodPost, "/playgame", strings.NewReader(`{"gameId":"JL-42"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := playApp(h).Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The storefront reads gameUrl at the top level, not under data.
	var body struct {
		Success bool   `json:"success"`
		GameURL string `json:"gameUrl"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "https://provider.example/session/abc", body.GameURL)
	assert.Equal(t, "JL-42", games.gotGameID)
}

func TestPlayUnknownGame(t *testing.T) {
	player := &models.User{PlayerID: "P12345678"}
	player.ID = 1
	games := &stubGameService{launchErr: game.ErrGameNotFound}
	h := NewGameHandler(games, &stubUserService{u: player})

	req := httptest.NewRequest(fiber.MethodPost, "/playgame", strings.NewReader(`{"gameId":"nope"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := playApp(h).Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
