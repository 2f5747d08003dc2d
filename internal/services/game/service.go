// Package game proxies game launches to the upstream provider so the
// provider API keys never reach the browser.
package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tkbet/internal/models"
	"tkbet/internal/repositories"
)

// The provider requires a fixed numeric suffix on launch usernames to
// namespace this operator's players.
const usernameSuffix = "45"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrLaunchFailed   = errors.New("game launch failed")
	ErrMissingGameKey = errors.New("game provider not configured")
)

// Config carries the provider endpoints and credentials.
type Config struct {
	CatalogURL string // provider game catalog base URL
	CatalogKey string // x-api-key for the catalog
	LaunchURL  string // launch endpoint
	LaunchKey  string // x-dstgame-key for launches
	Token      string // operator token sent with every launch
	HomeURL    string // where the provider sends the player back to
}

type Service interface {
	// Launch resolves the game and requests a session URL from the provider.
	Launch(ctx context.Context, gameAPIID, username string, money float64) (string, error)
	ListHot() ([]models.Game, error)
	List(limit, offset int) ([]models.Game, int64, error)
	Create(g *models.Game) error
	Update(g *models.Game) error
	Delete(id uint) error
}

type service struct {
	gameRepo repositories.GameRepository
	cfg      Config
	client   *http.Client
}

func NewService(gameRepo repositories.GameRepository, cfg Config) Service {
	return &service{
		gameRepo: gameRepo,
		cfg:      cfg,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *service) Launch(ctx context.Context, gameAPIID, username string, money float64) (string, error) {
	if s.cfg.LaunchURL == "" || s.cfg.CatalogURL == "" {
		return "", ErrMissingGameKey
	}

	// The internal catalog gates which provider games are exposed.
	if _, err := s.gameRepo.GetByAPIID(gameAPIID); err != nil {
		return "", ErrGameNotFound
	}

	gameUUID, err := s.fetchGameUUID(ctx, gameAPIID)
	if err != nil {
		return "", err
	}

	return s.requestLaunchURL(ctx, gameUUID, username, money)
}

func (s *service) fetchGameUUID(ctx context.Context, gameAPIID string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/games/%s", strings.TrimRight(s.cfg.CatalogURL, "/"), gameAPIID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", s.cfg.CatalogKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var body struct {
		GameUUID string `json:"game_uuid"`
		Data     struct {
			GameUUID string `json:"game_uuid"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}

	uuid := body.GameUUID
	if uuid == "" {
		uuid = body.Data.GameUUID
	}
	if uuid == "" {
		return "", fmt.Errorf("catalog response missing game_uuid")
	}
	return uuid, nil
}

func (s *service) requestLaunchURL(ctx context.Context, gameUUID, username string, money float64) (string, error) {
	form := url.Values{}
	form.Set("home_url", s.cfg.HomeURL)
	form.Set("token", s.cfg.Token)
	form.Set("username", username+usernameSuffix)
	form.Set("money", fmt.Sprintf("%v", money))
	form.Set("gameid", gameUUID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.LaunchURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("x-dstgame-key", s.cfg.LaunchKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("launch request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("launch returned status %d", resp.StatusCode)
	}

	var body struct {
		URL     string `json:"url"`
		GameURL string `json:"game_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}

	launchURL := body.URL
	if launchURL == "" {
		launchURL = body.GameURL
	}
	if launchURL == "" {
		return "", ErrLaunchFailed
	}
	return launchURL, nil
}

func (s *service) ListHot() ([]models.Game, error) {
	return s.gameRepo.ListHot()
}

func (s *service) List(limit, offset int) ([]models.Game, int64, error) {
	return s.gameRepo.List(limit, offset)
}

func (s *service) Create(g *models.Game) error {
	return s.gameRepo.Create(g)
}

func (s *service) Update(g *models.Game) error {
	return s.gameRepo.Update(g)
}

func (s *service) Delete(id uint) error {
	return s.gameRepo.Delete(id)
}
