package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/scoreboard/internal/models"
	"github.com/courtside/scoreboard/internal/store"
)

// fakeTeamStore is an in-memory store.RecordStore[models.Team].
type fakeTeamStore struct {
	teams  map[uint]models.Team
	nextID uint
}

func newFakeTeamStore(teams ...models.Team) *fakeTeamStore {
	f := &fakeTeamStore{teams: make(map[uint]models.Team)}
	for _, team := range teams {
		if team.ID > f.nextID {
			f.nextID = team.ID
		}
		f.teams[team.ID] = team
	}
	return f
}

func (f *fakeTeamStore) Get(ctx context.Context, id uint) (*models.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &team, nil
}

func (f *fakeTeamStore) List(ctx context.Context, conds ...interface{}) ([]models.Team, error) {
	out := make([]models.Team, 0, len(f.teams))
	for _, team := range f.teams {
		out = append(out, team)
	}
	return out, nil
}

func (f *fakeTeamStore) Add(ctx context.Context, rec *models.Team) error {
	f.nextID++
	rec.ID = f.nextID
	f.teams[rec.ID] = *rec
	return nil
}

func (f *fakeTeamStore) Update(ctx context.Context, rec *models.Team) error {
	f.teams[rec.ID] = *rec
	return nil
}

func (f *fakeTeamStore) Remove(ctx context.Context, rec *models.Team) error {
	delete(f.teams, rec.ID)
	return nil
}

func newTeamApp(teams store.RecordStore[models.Team]) *fiber.App {
	app := fiber.New()
	app.Get("/teams", GetTeams(teams))
	app.Get("/teams/:id", GetTeam(teams))
	app.Post("/teams", CreateTeam(teams))
	app.Put("/teams/:id", UpdateTeam(teams))
	app.Delete("/teams/:id", DeleteTeam(teams))
	return app
}

func TestTeamsCRUD(t *testing.T) {
	st := newFakeTeamStore(models.Team{ID: 1, Name: "Home", City: "Azul"})
	app := newTeamApp(st)

	// List.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teams", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var list []models.Team
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	// Create.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/teams", fiber.Map{"name": "Lions", "city": "Verde"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, st.teams, 2)

	// Create without a name is rejected.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/teams", fiber.Map{"city": "Verde"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Update.
	resp, err = app.Test(jsonRequest(http.MethodPut, "/teams/1", fiber.Map{"name": "Home Renamed", "city": "Azul"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "Home Renamed", st.teams[1].Name)

	// Update of a missing team.
	resp, err = app.Test(jsonRequest(http.MethodPut, "/teams/99", fiber.Map{"name": "Ghost"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Delete.
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/teams/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotContains(t, st.teams, uint(1))

	// Get after delete.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/teams/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetTeam(t *testing.T) {
	st := newFakeTeamStore(models.Team{ID: 3, Name: "Visitor", City: "Rojo"})
	app := newTeamApp(st)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teams/3", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var team models.Team
	require.NoError(t, json.Unmarshal(body, &team))
	assert.Equal(t, "Visitor", team.Name)
}
