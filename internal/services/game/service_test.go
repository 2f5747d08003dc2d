package game

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tkbet/internal/models"
	"tkbet/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGameRepo struct {
	games map[string]*models.Game
}

func (f *fakeGameRepo) Create(g *models.Game) error { return nil }
func (f *fakeGameRepo) Update(g *models.Game) error { return nil }
func (f *fakeGameRepo) Delete(id uint) error        { return nil }
func (f *fakeGameRepo) GetByID(id uint) (*models.Game, error) {
	return nil, repositories.ErrGameNotFound
}
func (f *fakeGameRepo) GetByAPIID(apiID string) (*models.Game, error) {
	g, ok := f.games[apiID]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	return g, nil
}
func (f *fakeGameRepo) ListHot() ([]models.Game, error) { return nil, nil }
func (f *fakeGameRepo) List(limit, offset int) ([]models.Game, int64, error) {
	return nil, 0, nil
}

func TestLaunch(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/games/slot-777", r.URL.Path)
		assert.Equal(t, "catalog-key", r.Header.Get("x-api-key"))
		json.NewEncoder(w).Encode(map[string]string{"game_uuid": "uuid-abc"})
	}))
	defer catalog.Close()

	launch := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "launch-key", r.Header.Get("x-dstgame-key"))
		assert.Equal(t, "P12345678945", r.Form.Get("username"))
		assert.Equal(t, "uuid-abc", r.Form.Get("gameid"))
		assert.Equal(t, "250", r.Form.Get("money"))
		assert.Equal(t, "https://play.example.com", r.Form.Get("home_url"))
		json.NewEncoder(w).Encode(map[string]string{"url": "https://provider.example.com/session/xyz"})
	}))
	defer launch.Close()

	repo := &fakeGameRepo{games: map[string]*models.Game{
		"slot-777": {GameAPIID: "slot-777", Name: "Slot 777"},
	}}
	svc := NewService(repo, Config{
		CatalogURL: catalog.URL,
		CatalogKey: "catalog-key",
		LaunchURL:  launch.URL,
		LaunchKey:  "launch-key",
		Token:      "op-token",
		HomeURL:    "https://play.example.com",
	})

	url, err := svc.Launch(context.Background(), "slot-777", "P123456789", 250)
	require.NoError(t, err)
	assert.Equal(t, "https://provider.example.com/session/xyz", url)
}

func TestLaunchFallsBackToGameURLField(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"game_uuid": "uuid-def"},
		})
	}))
	defer catalog.Close()

	launch := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"game_url": "https://provider.example.com/alt"})
	}))
	defer launch.Close()

	repo := &fakeGameRepo{games: map[string]*models.Game{
		"crash-1": {GameAPIID: "crash-1"},
	}}
	svc := NewService(repo, Config{
		CatalogURL: catalog.URL,
		LaunchURL:  launch.URL,
		HomeURL:    "https://play.example.com",
	})

	url, err := svc.Launch(context.Background(), "crash-1", "P1", 100)
	require.NoError(t, err)
	assert.Equal(t, "https://provider.example.com/alt", url)
}

func TestLaunchUnknownGame(t *testing.T) {
	repo := &fakeGameRepo{games: map[string]*models.Game{}}
	svc := NewService(repo, Config{
		CatalogURL: "http://localhost",
		LaunchURL:  "http://localhost",
	})

	_, err := svc.Launch(context.Background(), "missing", "P1", 100)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestLaunchUnconfiguredProvider(t *testing.T) {
	repo := &fakeGameRepo{games: map[string]*models.Game{}}
	svc := NewService(repo, Config{})

	_, err := svc.Launch(context.Background(), "slot-777", "P1", 100)
	assert.ErrorIs(t, err, ErrMissingGameKey)
}

func TestLaunchProviderError(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer catalog.Close()

	repo := &fakeGameRepo{games: map[string]*models.Game{
		"slot-777": {GameAPIID: "slot-777"},
	}}
	svc := NewService(repo, Config{
		CatalogURL: catalog.URL,
		LaunchURL:  "http://localhost",
	})

	_, err := svc.Launch(context.Background(), "slot-777", "P1", 100)
	assert.Error(t, err)
}
