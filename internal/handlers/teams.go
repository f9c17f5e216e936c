// This file handles the /api/v1/teams routes: plain CRUD over the generic record
// store. The store passed in is built with the "Players" preload, so team reads
// always include the roster — the capability is chosen at wiring time, not by
// type-switching inside the store.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/courtside/scoreboard/internal/models"
	"github.com/courtside/scoreboard/internal/store"
)

// GetTeams returns the handler for GET /api/v1/teams.
func GetTeams(teams store.RecordStore[models.Team]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := teams.List(c.Context())
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(list)
	}
}

// GetTeam returns the handler for GET /api/v1/teams/:id.
func GetTeam(teams store.RecordStore[models.Team]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid team id")
		}
		team, err := teams.Get(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound(c, "team not found")
			}
			return gameError(c, err)
		}
		return c.JSON(team)
	}
}

// CreateTeam returns the handler for POST /api/v1/teams.
func CreateTeam(teams store.RecordStore[models.Team]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var team models.Team
		if err := c.BodyParser(&team); err != nil {
			return badRequest(c, "invalid request body")
		}
		if team.Name == "" {
			return badRequest(c, "name is required")
		}
		team.ID = 0 // id is assigned by the database, never by the caller

		if err := teams.Add(c.Context(), &team); err != nil {
			return gameError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(team)
	}
}

// UpdateTeam returns the handler for PUT /api/v1/teams/:id.
// Only the editable fields are copied onto the stored record.
func UpdateTeam(teams store.RecordStore[models.Team]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid team id")
		}
		var updated models.Team
		if err := c.BodyParser(&updated); err != nil {
			return badRequest(c, "invalid request body")
		}

		existing, err := teams.Get(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound(c, "team not found")
			}
			return gameError(c, err)
		}

		existing.Name = updated.Name
		existing.City = updated.City
		existing.LogoURL = updated.LogoURL
		if err := teams.Update(c.Context(), existing); err != nil {
			return gameError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteTeam returns the handler for DELETE /api/v1/teams/:id.
func DeleteTeam(teams store.RecordStore[models.Team]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, "invalid team id")
		}
		existing, err := teams.Get(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound(c, "team not found")
			}
			return gameError(c, err)
		}
		if err := teams.Remove(c.Context(), existing); err != nil {
			return gameError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
