// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, default values, and relationships.
//
// The data model represents a live basketball scoreboard backend where:
//   - Teams have rosters of Players
//   - A Game pits a home Team against an away Team and tracks score, period, and clock
//   - TeamFoul and PlayerFoul rows accumulate foul counts per period of a game
//
// The game clock is not a ticking timer on the server. RemainingSeconds stores how much
// period time was left the last time the clock stopped, and PeriodStartedAt records when
// the clock last began running. The remaining time at any instant is derived from those
// two fields on demand, so the server needs no background tasks.
package models

import "time"

// GameStatus tracks where a game is in its lifecycle.
// Stored as text in the database so the values stay readable in raw SQL.
type GameStatus string

const (
	StatusNotStarted GameStatus = "NOT_STARTED" // Created but the clock has never run
	StatusRunning    GameStatus = "RUNNING"     // Clock is running; PeriodStartedAt is set
	StatusPaused     GameStatus = "PAUSED"      // Clock stopped; RemainingSeconds holds the frozen time
	StatusSuspended  GameStatus = "SUSPENDED"   // Game interrupted (weather, protest, ...); time frozen
	StatusFinished   GameStatus = "FINISHED"    // Game over; remaining time is zeroed
)

// Active reports whether the status still ties up the two teams.
// A team can only be booked into one game at a time while that game is
// NOT_STARTED, RUNNING, or PAUSED. Finished and suspended games release the teams.
func (s GameStatus) Active() bool {
	return s == StatusNotStarted || s == StatusRunning || s == StatusPaused
}

// Team represents a club that can be booked into games.
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	City      string    `gorm:"not null;default:''" json:"city"`
	LogoURL   *string   `json:"logoUrl"` // Optional crest/logo; pointer = nullable in the DB
	Players   []Player  `gorm:"foreignKey:TeamID" json:"players,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Player is a roster entry belonging to exactly one team.
type Player struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TeamID       uint      `gorm:"not null;index" json:"teamId"`
	Team         *Team     `json:"team,omitempty"` // Loaded on demand; nil inside Team.Players, which avoids cycles
	JerseyNumber int       `gorm:"not null" json:"jerseyNumber"`
	FullName     string    `gorm:"not null" json:"fullName"`
	Position     *string   `json:"position"` // e.g. "PG", "C"; optional
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Game is the central entity: one scheduled match between two teams, carrying
// the live score, the current period, and the clock state.
//
// Clock invariants maintained by the internal/clock package:
//   - RemainingSeconds is nil only before the first start, afterwards always set
//   - PeriodStartedAt is non-nil exactly while Status is RUNNING
//   - Scores never go negative; CurrentPeriod never drops below 1
type Game struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	GameDate      time.Time  `gorm:"not null" json:"gameDate"`
	HomeTeamID    uint       `gorm:"not null;index" json:"homeTeamId"`
	HomeTeam      *Team      `gorm:"foreignKey:HomeTeamID" json:"homeTeam,omitempty"`
	AwayTeamID    uint       `gorm:"not null;index" json:"awayTeamId"`
	AwayTeam      *Team      `gorm:"foreignKey:AwayTeamID" json:"awayTeam,omitempty"`
	HomeScore     int        `gorm:"not null;default:0" json:"homeScore"`
	AwayScore     int        `gorm:"not null;default:0" json:"awayScore"`
	CurrentPeriod int        `gorm:"not null;default:1" json:"currentPeriod"`
	Status        GameStatus `gorm:"not null;default:'NOT_STARTED'" json:"status"`

	// RemainingSeconds is the period time left as of the last clock stop (whole seconds).
	// PeriodStartedAt is when the clock last started running, stored in UTC.
	RemainingSeconds *int       `json:"remainingSeconds"`
	PeriodStartedAt  *time.Time `json:"periodStartedAt"`

	// Foul aggregates are associative rows keyed by game id, not an owned collection.
	// They are preloaded for detail reads and purged when the game is reset.
	TeamFouls   []TeamFoul   `gorm:"foreignKey:GameID" json:"teamFouls,omitempty"`
	PlayerFouls []PlayerFoul `gorm:"foreignKey:GameID" json:"playerFouls,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TeamFoul accumulates fouls for one team in one period of one game.
// The unique index (idx_team_foul_key) makes (game, team, period) the logical identity,
// which lets the store upsert increments atomically instead of read-then-write.
type TeamFoul struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	GameID     uint `gorm:"not null;uniqueIndex:idx_team_foul_key" json:"gameId"`
	TeamID     uint `gorm:"not null;uniqueIndex:idx_team_foul_key" json:"teamId"`
	Period     int  `gorm:"not null;uniqueIndex:idx_team_foul_key" json:"period"`
	TotalFouls int  `gorm:"not null;default:0" json:"totalFouls"` // Never negative; clamped in SQL
}

// PlayerFoul accumulates fouls for one player in one period of one game.
// Same shape as TeamFoul, keyed by player instead of team.
type PlayerFoul struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	GameID    uint `gorm:"not null;uniqueIndex:idx_player_foul_key" json:"gameId"`
	PlayerID  uint `gorm:"not null;uniqueIndex:idx_player_foul_key" json:"playerId"`
	Period    int  `gorm:"not null;uniqueIndex:idx_player_foul_key" json:"period"`
	FoulCount int  `gorm:"not null;default:0" json:"foulCount"` // Never negative; clamped in SQL
}
