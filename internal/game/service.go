// Package game implements the game lifecycle service: the orchestration layer
// between the HTTP handlers and persistence. Every mutating operation follows the
// same shape — fetch the game or fail, apply a pure transformation from the clock
// package, persist, return the updated game. Missing games always surface as
// store.ErrNotFound; the only other domain error is store.ErrTeamBusy on create.
package game

import (
	"context"
	"errors"
	"time"

	"github.com/courtside/scoreboard/internal/clock"
	"github.com/courtside/scoreboard/internal/models"
	"github.com/courtside/scoreboard/internal/store"
)

// Service orchestrates game state changes. The current time is a field so tests
// can pin it; production code leaves it as time.Now.
type Service struct {
	store store.Storage
	fouls *FoulLedger
	now   func() time.Time
}

// NewService builds a Service over the given storage.
func NewService(st store.Storage) *Service {
	return &Service{
		store: st,
		fouls: NewFoulLedger(st),
		now:   time.Now,
	}
}

// CreateGame schedules a new game between two teams. It fails with
// store.ErrTeamBusy when either team is already booked into a game that is
// NOT_STARTED, RUNNING, or PAUSED — the conflict check and the insert happen in
// one statement inside the store, so concurrent creates can't double-book.
// periodSeconds defaults to clock.DefaultPeriodSeconds when nil.
func (s *Service) CreateGame(ctx context.Context, gameDate time.Time, homeTeamID, awayTeamID uint, periodSeconds *int) (*models.Game, error) {
	remaining := clock.DefaultPeriodSeconds
	if periodSeconds != nil {
		remaining = *periodSeconds
	}

	g := &models.Game{
		GameDate:         gameDate.UTC(),
		HomeTeamID:       homeTeamID,
		AwayTeamID:       awayTeamID,
		CurrentPeriod:    1,
		Status:           models.StatusNotStarted,
		RemainingSeconds: &remaining,
	}
	if err := s.store.CreateGameIfTeamsFree(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Get fetches a game with its teams and foul rows attached. An unknown id is not
// an error on the read path: it returns (nil, nil) and the transport decides.
func (s *Service) Get(ctx context.Context, id uint) (*models.Game, error) {
	g, err := s.store.GetGameDetails(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return g, nil
}

// AddPoints adds points to the home or away score. The score is clamped at zero
// so a negative points value can never drive it below.
func (s *Service) AddPoints(ctx context.Context, id uint, home bool, points int) (*models.Game, error) {
	g, err := s.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if home {
		g.HomeScore = clampScore(g.HomeScore + points)
	} else {
		g.AwayScore = clampScore(g.AwayScore + points)
	}
	return s.save(ctx, g)
}

// SubtractPoint removes one point from the given side, never going below zero.
func (s *Service) SubtractPoint(ctx context.Context, id uint, home bool) (*models.Game, error) {
	return s.AddPoints(ctx, id, home, -1)
}

// TeamFoul adjusts the team's foul counter for the period and returns the game.
// Foul rows live outside the game row, so the returned game is the fetched one.
func (s *Service) TeamFoul(ctx context.Context, id, teamID uint, period, delta int) (*models.Game, error) {
	g, err := s.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.fouls.AdjustTeamFoul(ctx, id, teamID, period, delta); err != nil {
		return nil, err
	}
	return g, nil
}

// PlayerFoul adjusts the player's foul counter for the period and returns the game.
func (s *Service) PlayerFoul(ctx context.Context, id, playerID uint, period, delta int) (*models.Game, error) {
	g, err := s.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.fouls.AdjustPlayerFoul(ctx, id, playerID, period, delta); err != nil {
		return nil, err
	}
	return g, nil
}

// Start begins the clock for the current period with a full periodSeconds.
func (s *Service) Start(ctx context.Context, id uint, periodSeconds int) (*models.Game, error) {
	return s.transition(ctx, id, func(g *models.Game) {
		clock.Start(g, periodSeconds, s.now())
	})
}

// Pause stops the clock, banking the elapsed time into RemainingSeconds.
func (s *Service) Pause(ctx context.Context, id uint) (*models.Game, error) {
	return s.transition(ctx, id, func(g *models.Game) {
		clock.Pause(g, s.now())
	})
}

// Resume restarts the clock from the current RemainingSeconds.
func (s *Service) Resume(ctx context.Context, id uint) (*models.Game, error) {
	return s.transition(ctx, id, func(g *models.Game) {
		clock.Resume(g, s.now())
	})
}

// ResetPeriod reloads the current period's clock to periodSeconds, paused.
func (s *Service) ResetPeriod(ctx context.Context, id uint, periodSeconds int) (*models.Game, error) {
	return s.transition(ctx, id, func(g *models.Game) {
		clock.ResetPeriod(g, periodSeconds)
	})
}

// NextPeriod advances to the following period.
func (s *Service) NextPeriod(ctx context.Context, id uint) (*models.Game, error) {
	return s.transition(ctx, id, clock.NextPeriod)
}

// PreviousPeriod steps back one period, floored at the first.
func (s *Service) PreviousPeriod(ctx context.Context, id uint) (*models.Game, error) {
	return s.transition(ctx, id, clock.PreviousPeriod)
}

// ResetGame wipes the game back to its created state and purges its foul rows.
// Both writes run in one store transaction so a reset can't half-apply.
func (s *Service) ResetGame(ctx context.Context, id uint) (*models.Game, error) {
	var g *models.Game
	err := s.store.Transaction(ctx, func(tx store.Storage) error {
		var err error
		g, err = tx.GetGame(ctx, id)
		if err != nil {
			return err
		}
		clock.Reset(g)
		if err := tx.UpdateGame(ctx, g); err != nil {
			return err
		}
		return NewFoulLedger(tx).PurgeForGame(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Suspend freezes the game, leaving the remaining time untouched.
func (s *Service) Suspend(ctx context.Context, id uint) (*models.Game, error) {
	return s.transition(ctx, id, clock.Suspend)
}

// Finish ends the game with zero time on the clock.
func (s *Service) Finish(ctx context.Context, id uint) (*models.Game, error) {
	return s.transition(ctx, id, clock.Finish)
}

// transition is the shared fetch → transform → persist path for clock operations.
func (s *Service) transition(ctx context.Context, id uint, apply func(*models.Game)) (*models.Game, error) {
	g, err := s.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(g)
	return s.save(ctx, g)
}

func (s *Service) save(ctx context.Context, g *models.Game) (*models.Game, error) {
	if err := s.store.UpdateGame(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
