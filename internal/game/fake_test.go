package game

import (
	"context"
	"fmt"

	"github.com/courtside/scoreboard/internal/models"
	"github.com/courtside/scoreboard/internal/store"
)

// fakeStore is an in-memory store.Storage mirroring the semantics the real
// GORM-backed store gets from SQL: insert-if-teams-free, clamped foul upserts,
// and reads that hand back copies so only UpdateGame makes a mutation stick.
type fakeStore struct {
	games       map[uint]*models.Game
	teamFouls   map[string]*models.TeamFoul
	playerFouls map[string]*models.PlayerFoul
	nextGameID  uint

	// failWith, when set, is returned by every method — for error-path tests.
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		games:       make(map[uint]*models.Game),
		teamFouls:   make(map[string]*models.TeamFoul),
		playerFouls: make(map[string]*models.PlayerFoul),
	}
}

func foulKey(gameID, subjectID uint, period int) string {
	return fmt.Sprintf("%d/%d/%d", gameID, subjectID, period)
}

func (f *fakeStore) GetGame(ctx context.Context, id uint) (*models.Game, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	g, ok := f.games[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeStore) GetGameDetails(ctx context.Context, id uint) (*models.Game, error) {
	return f.GetGame(ctx, id)
}

func (f *fakeStore) CreateGameIfTeamsFree(ctx context.Context, g *models.Game) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, existing := range f.games {
		if !existing.Status.Active() {
			continue
		}
		for _, teamID := range []uint{g.HomeTeamID, g.AwayTeamID} {
			if existing.HomeTeamID == teamID || existing.AwayTeamID == teamID {
				return store.ErrTeamBusy
			}
		}
	}
	f.nextGameID++
	g.ID = f.nextGameID
	cp := *g
	f.games[g.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateGame(ctx context.Context, g *models.Game) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.games[g.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *g
	f.games[g.ID] = &cp
	return nil
}

func (f *fakeStore) UpsertTeamFoul(ctx context.Context, gameID, teamID uint, period, delta int) (*models.TeamFoul, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	key := foulKey(gameID, teamID, period)
	tf, ok := f.teamFouls[key]
	if !ok {
		tf = &models.TeamFoul{GameID: gameID, TeamID: teamID, Period: period}
		f.teamFouls[key] = tf
	}
	tf.TotalFouls += delta
	if tf.TotalFouls < 0 {
		tf.TotalFouls = 0
	}
	cp := *tf
	return &cp, nil
}

func (f *fakeStore) UpsertPlayerFoul(ctx context.Context, gameID, playerID uint, period, delta int) (*models.PlayerFoul, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	key := foulKey(gameID, playerID, period)
	pf, ok := f.playerFouls[key]
	if !ok {
		pf = &models.PlayerFoul{GameID: gameID, PlayerID: playerID, Period: period}
		f.playerFouls[key] = pf
	}
	pf.FoulCount += delta
	if pf.FoulCount < 0 {
		pf.FoulCount = 0
	}
	cp := *pf
	return &cp, nil
}

func (f *fakeStore) PurgeFoulsForGame(ctx context.Context, gameID uint) error {
	if f.failWith != nil {
		return f.failWith
	}
	for key, tf := range f.teamFouls {
		if tf.GameID == gameID {
			delete(f.teamFouls, key)
		}
	}
	for key, pf := range f.playerFouls {
		if pf.GameID == gameID {
			delete(f.playerFouls, key)
		}
	}
	return nil
}

func (f *fakeStore) Transaction(ctx context.Context, fn func(store.Storage) error) error {
	// No rollback in the fake; the tests only assert the committed outcome.
	return fn(f)
}
