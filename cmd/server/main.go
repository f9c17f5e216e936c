// cmd/server/main.go
// Entry point for the scoreboard API server: load config, connect to Postgres,
// run migrations and the first-boot seed, then wire every route onto a Fiber app.
// The cmd/ folder holds executable binaries; internal/ holds the packages they use.
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/courtside/scoreboard/internal/config"
	"github.com/courtside/scoreboard/internal/database"
	"github.com/courtside/scoreboard/internal/game"
	"github.com/courtside/scoreboard/internal/handlers"
	"github.com/courtside/scoreboard/internal/middleware"
	"github.com/courtside/scoreboard/internal/models"
	"github.com/courtside/scoreboard/internal/store"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Running migrations on startup keeps the schema in sync wherever the binary runs.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// First boot against an empty database gets two placeholder teams so a game
	// can be created straight away.
	if err := database.Seed(db); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	// Wiring: generic record stores for the CRUD surfaces, the game store for the
	// lifecycle service. Team reads carry their roster — that's a capability of the
	// store instance, chosen here rather than special-cased inside the store.
	teams := store.NewRecords[models.Team](db, "Players")
	players := store.NewRecords[models.Player](db)
	svc := game.NewService(store.New(db))

	app := fiber.New(fiber.Config{
		AppName: "Courtside Scoreboard API",
	})

	// --- Global middleware ---
	// Request IDs make it possible to follow one console action through the logs.
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	// Allow any origin: the scoreboard console and displays are served elsewhere.
	// Lock this down per deployment if the API ever faces the open internet.
	app.Use(cors.New())

	// --- Public routes ---
	app.Get("/health", handlers.HealthCheck)

	// --- API routes ---
	// Auth is a pass-through granting admin until JWT_SECRET is configured.
	api := app.Group("/api/v1", middleware.Auth(cfg))
	keeper := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleScorekeeper)
	admin := middleware.RequireRole(middleware.RoleAdmin)

	// Games: lifecycle and live mutations. Reads are open to any authenticated
	// caller; everything that changes state needs the scorekeeper role.
	api.Post("/games", keeper, handlers.CreateGame(svc))
	api.Get("/games/:id", handlers.GetGame(svc))
	api.Post("/games/:id/save", keeper, handlers.SaveGame(svc))

	api.Post("/games/:id/score/home", keeper, handlers.AddPoints(svc, true))
	api.Post("/games/:id/score/visitor", keeper, handlers.AddPoints(svc, false))
	api.Post("/games/:id/score/home/decrement", keeper, handlers.SubtractPoint(svc, true))
	api.Post("/games/:id/score/visitor/decrement", keeper, handlers.SubtractPoint(svc, false))

	api.Post("/games/:id/fouls/team/:teamId/inc", keeper, handlers.TeamFoul(svc, +1))
	api.Post("/games/:id/fouls/team/:teamId/dec", keeper, handlers.TeamFoul(svc, -1))
	api.Post("/games/:id/fouls/player/:playerId/inc", keeper, handlers.PlayerFoul(svc, +1))
	api.Post("/games/:id/fouls/player/:playerId/dec", keeper, handlers.PlayerFoul(svc, -1))

	api.Post("/games/:id/start", keeper, handlers.StartClock(svc))
	api.Post("/games/:id/pause", keeper, handlers.GameAction(svc.Pause))
	api.Post("/games/:id/resume", keeper, handlers.GameAction(svc.Resume))
	api.Post("/games/:id/reset-period", keeper, handlers.ResetPeriod(svc))
	api.Post("/games/:id/next-period", keeper, handlers.GameAction(svc.NextPeriod))
	api.Post("/games/:id/previous-period", keeper, handlers.GameAction(svc.PreviousPeriod))
	api.Post("/games/:id/reset-game", keeper, handlers.GameAction(svc.ResetGame))
	api.Post("/games/:id/suspend", keeper, handlers.GameAction(svc.Suspend))
	api.Post("/games/:id/finish", keeper, handlers.GameAction(svc.Finish))

	// Teams and players: plain CRUD. Roster management is an admin concern.
	api.Get("/teams", handlers.GetTeams(teams))
	api.Get("/teams/:id", handlers.GetTeam(teams))
	api.Post("/teams", admin, handlers.CreateTeam(teams))
	api.Put("/teams/:id", admin, handlers.UpdateTeam(teams))
	api.Delete("/teams/:id", admin, handlers.DeleteTeam(teams))

	api.Get("/players", handlers.GetPlayers(players))
	api.Get("/players/:id", handlers.GetPlayer(players))
	api.Post("/players", admin, handlers.CreatePlayer(players))
	api.Put("/players/:id", admin, handlers.UpdatePlayer(players))
	api.Delete("/players/:id", admin, handlers.DeletePlayer(players))

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
