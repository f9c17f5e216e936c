// Package handlers contains the HTTP route handler functions for the scoreboard API.
// This file covers the /api/v1/games routes: creating a game, reading its full state,
// and the score / foul / clock mutations a courtside console drives during play.
//
// Each exported function follows the handler factory pattern: it takes the game
// service (or a slice of it) and returns a fiber.Handler. This lets us inject
// dependencies without global variables, and lets tests substitute a fake service.
//
// Error contract, mirrored from the service layer:
//   - store.ErrTeamBusy  → 409 Conflict  (double-booking a team on create)
//   - store.ErrNotFound  → 404 Not Found (mutating a game id that doesn't exist)
//   - malformed payloads → 400 before the service is ever called
//   - anything else      → 500 with a generic message; details go to the server log
package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/courtside/scoreboard/internal/models"
	"github.com/courtside/scoreboard/internal/store"
)

// GameService is what the game routes need from the lifecycle service.
// internal/game.Service implements it; tests use a fake.
type GameService interface {
	CreateGame(ctx context.Context, gameDate time.Time, homeTeamID, awayTeamID uint, periodSeconds *int) (*models.Game, error)
	Get(ctx context.Context, id uint) (*models.Game, error)
	AddPoints(ctx context.Context, id uint, home bool, points int) (*models.Game, error)
	SubtractPoint(ctx context.Context, id uint, home bool) (*models.Game, error)
	TeamFoul(ctx context.Context, id, teamID uint, period, delta int) (*models.Game, error)
	PlayerFoul(ctx context.Context, id, playerID uint, period, delta int) (*models.Game, error)
	Start(ctx context.Context, id uint, periodSeconds int) (*models.Game, error)
	Pause(ctx context.Context, id uint) (*models.Game, error)
	Resume(ctx context.Context, id uint) (*models.Game, error)
	ResetPeriod(ctx context.Context, id uint, periodSeconds int) (*models.Game, error)
	NextPeriod(ctx context.Context, id uint) (*models.Game, error)
	PreviousPeriod(ctx context.Context, id uint) (*models.Game, error)
	ResetGame(ctx context.Context, id uint) (*models.Game, error)
	Suspend(ctx context.Context, id uint) (*models.Game, error)
	Finish(ctx context.Context, id uint) (*models.Game, error)
}

// CreateGameRequest is the JSON body expected on POST /api/v1/games.
type CreateGameRequest struct {
	GameDate      time.Time `json:"gameDate"`      // Required: scheduled tip-off
	HomeTeamID    uint      `json:"homeTeamId"`    // Required
	AwayTeamID    uint      `json:"awayTeamId"`    // Required
	PeriodSeconds *int      `json:"periodSeconds"` // Optional: defaults to 600 (10-minute quarter)
}

// PointsRequest is the body for the score increment routes.
type PointsRequest struct {
	Points int `json:"points"` // 1, 2, or 3 in practice; the API doesn't care which
}

// PeriodTimeRequest is the body for /start and /reset-period.
type PeriodTimeRequest struct {
	PeriodSeconds int `json:"periodSeconds"`
}

// CreateGame returns the handler for POST /api/v1/games.
// Responds 409 when either team already has a game in progress.
func CreateGame(svc GameService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateGameRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if req.HomeTeamID == 0 || req.AwayTeamID == 0 {
			return badRequest(c, "homeTeamId and awayTeamId are required")
		}
		if req.GameDate.IsZero() {
			return badRequest(c, "gameDate is required")
		}

		g, err := svc.CreateGame(c.Context(), req.GameDate, req.HomeTeamID, req.AwayTeamID, req.PeriodSeconds)
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(g)
	}
}

// GetGame returns the handler for GET /api/v1/games/:id.
// The response carries the full record: both teams and all foul aggregates.
func GetGame(svc GameService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid game id")
		}

		g, err := svc.Get(c.Context(), id)
		if err != nil {
			return gameError(c, err)
		}
		if g == nil {
			return notFound(c, "game not found")
		}
		return c.JSON(g)
	}
}

// SaveGame returns the handler for POST /api/v1/games/:id/save.
// Every mutation is already persisted when it happens, so "save" is a refetch —
// the endpoint exists so consoles with an explicit save button get a 200 back.
func SaveGame(svc GameService) fiber.Handler {
	return GetGame(svc)
}

// AddPoints returns the handler for POST /api/v1/games/:id/score/home or /visitor.
// The home flag is fixed per route when the handler is registered.
func AddPoints(svc GameService, home bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid game id")
		}
		var req PointsRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}

		g, err := svc.AddPoints(c.Context(), id, home, req.Points)
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(g)
	}
}

// SubtractPoint returns the handler for the /score/.../decrement routes.
// Always one point; the score never drops below zero.
func SubtractPoint(svc GameService, home bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid game id")
		}

		g, err := svc.SubtractPoint(c.Context(), id, home)
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(g)
	}
}

// TeamFoul returns the handler for POST /api/v1/games/:id/fouls/team/:teamId/inc
// and /dec. The delta (+1 or -1) is fixed per route; the period comes from the
// ?period=N query parameter.
func TeamFoul(svc GameService, delta int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid game id")
		}
		teamID, err := parseID(c, "teamId")
		if err != nil {
			return badRequest(c, "invalid team id")
		}
		period := c.QueryInt("period")
		if period < 1 {
			return badRequest(c, "period query parameter is required")
		}

		g, err := svc.TeamFoul(c.Context(), id, teamID, period, delta)
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(g)
	}
}

// PlayerFoul returns the handler for POST /api/v1/games/:id/fouls/player/:playerId/inc
// and /dec.
func PlayerFoul(svc GameService, delta int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid game id")
		}
		playerID, err := parseID(c, "playerId")
		if err != nil {
			return badRequest(c, "invalid player id")
		}
		period := c.QueryInt("period")
		if period < 1 {
			return badRequest(c, "period query parameter is required")
		}

		g, err := svc.PlayerFoul(c.Context(), id, playerID, period, delta)
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(g)
	}
}

// StartClock returns the handler for POST /api/v1/games/:id/start.
// The body's periodSeconds becomes the full period time.
func StartClock(svc GameService) fiber.Handler {
	return timedAction(svc.Start)
}

// ResetPeriod returns the handler for POST /api/v1/games/:id/reset-period.
func ResetPeriod(svc GameService) fiber.Handler {
	return timedAction(svc.ResetPeriod)
}

// GameAction wraps the bodyless lifecycle operations (pause, resume, next-period,
// previous-period, reset-game, suspend, finish) into one handler shape. Register it
// with a method value, e.g. handlers.GameAction(svc.Pause).
func GameAction(action func(ctx context.Context, id uint) (*models.Game, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid game id")
		}

		g, err := action(c.Context(), id)
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(g)
	}
}

// timedAction is GameAction for the two operations that take {periodSeconds}.
func timedAction(action func(ctx context.Context, id uint, periodSeconds int) (*models.Game, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid game id")
		}
		var req PeriodTimeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if req.PeriodSeconds < 1 {
			return badRequest(c, "periodSeconds is required")
		}

		g, err := action(c.Context(), id, req.PeriodSeconds)
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(g)
	}
}

// parseID reads a positive integer route parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || v == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(v), nil
}

// gameError translates service errors into HTTP responses.
func gameError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrTeamBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		return notFound(c, "game not found")
	default:
		// Persistence failures stay opaque to the caller; the log has the detail.
		log.Printf("game handler error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}
