// This file handles the /api/v1/players routes: roster CRUD over the generic
// record store. Unlike teams, player reads don't preload anything by default;
// a player's team is an optional association the caller can follow by id.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/courtside/scoreboard/internal/models"
	"github.com/courtside/scoreboard/internal/store"
)

// GetPlayers returns the handler for GET /api/v1/players.
// Supports ?teamId=N to list a single team's roster.
func GetPlayers(players store.RecordStore[models.Player]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID := c.QueryInt("teamId")

		var (
			list []models.Player
			err  error
		)
		if teamID > 0 {
			list, err = players.List(c.Context(), "team_id = ?", teamID)
		} else {
			list, err = players.List(c.Context())
		}
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(list)
	}
}

// GetPlayer returns the handler for GET /api/v1/players/:id.
func GetPlayer(players store.RecordStore[models.Player]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid player id")
		}
		player, err := players.Get(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound(c, "player not found")
			}
			return gameError(c, err)
		}
		return c.JSON(player)
	}
}

// CreatePlayer returns the handler for POST /api/v1/players.
func CreatePlayer(players store.RecordStore[models.Player]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var player models.Player
		if err := c.BodyParser(&player); err != nil {
			return badRequest(c, "invalid request body")
		}
		if player.FullName == "" {
			return badRequest(c, "fullName is required")
		}
		if player.TeamID == 0 {
			return badRequest(c, "teamId is required")
		}
		player.ID = 0

		if err := players.Add(c.Context(), &player); err != nil {
			return gameError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(player)
	}
}

// UpdatePlayer returns the handler for PUT /api/v1/players/:id.
func UpdatePlayer(players store.RecordStore[models.Player]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid player id")
		}
		var updated models.Player
		if err := c.BodyParser(&updated); err != nil {
			return badRequest(c, "invalid request body")
		}

		existing, err := players.Get(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound(c, "player not found")
			}
			return gameError(c, err)
		}

		existing.TeamID = updated.TeamID
		existing.JerseyNumber = updated.JerseyNumber
		existing.FullName = updated.FullName
		existing.Position = updated.Position
		if err := players.Update(c.Context(), existing); err != nil {
			return gameError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeletePlayer returns the handler for DELETE /api/v1/players/:id.
func DeletePlayer(players store.RecordStore[models.Player]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid player id")
		}
		existing, err := players.Get(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound(c, "player not found")
			}
			return gameError(c, err)
		}
		if err := players.Remove(c.Context(), existing); err != nil {
			return gameError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
