package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/courtside/scoreboard/internal/models"
)

// ErrTeamBusy is returned by CreateGameIfTeamsFree when one of the two teams is
// already booked into a game that hasn't finished or been suspended.
// Handlers map it to 409 Conflict.
var ErrTeamBusy = errors.New("team already has a game in progress")

// Storage is what the game lifecycle service needs from persistence.
// The GORM-backed Store below implements it; tests substitute fakes.
type Storage interface {
	// GetGame fetches the bare game row, ErrNotFound if absent.
	GetGame(ctx context.Context, id uint) (*models.Game, error)
	// GetGameDetails fetches the game with both teams and all foul rows attached.
	GetGameDetails(ctx context.Context, id uint) (*models.Game, error)
	// CreateGameIfTeamsFree inserts the game only if neither team is in an active
	// game, in a single statement so two concurrent creates can't both slip through
	// the check. Returns ErrTeamBusy when the insert is refused.
	CreateGameIfTeamsFree(ctx context.Context, g *models.Game) error
	// UpdateGame writes every field of the game back, including cleared pointers.
	UpdateGame(ctx context.Context, g *models.Game) error

	// UpsertTeamFoul atomically applies count = max(0, count+delta) to the
	// (game, team, period) row, creating it first if needed, and returns the row.
	UpsertTeamFoul(ctx context.Context, gameID, teamID uint, period, delta int) (*models.TeamFoul, error)
	// UpsertPlayerFoul is the player-keyed counterpart of UpsertTeamFoul.
	UpsertPlayerFoul(ctx context.Context, gameID, playerID uint, period, delta int) (*models.PlayerFoul, error)
	// PurgeFoulsForGame deletes every team and player foul row for the game.
	PurgeFoulsForGame(ctx context.Context, gameID uint) error

	// Transaction runs fn against a Storage bound to one database transaction;
	// fn returning nil commits, an error rolls everything back.
	Transaction(ctx context.Context, fn func(Storage) error) error
}

// Store implements Storage on top of a *gorm.DB.
type Store struct {
	db      *gorm.DB
	games   *Records[models.Game]
	details *Records[models.Game]
}

// New builds a Store. The details view preloads the associations a scoreboard
// display needs in one read: both teams and the per-period foul aggregates.
func New(db *gorm.DB) *Store {
	return &Store{
		db:      db,
		games:   NewRecords[models.Game](db),
		details: NewRecords[models.Game](db, "HomeTeam", "AwayTeam", "TeamFouls", "PlayerFouls"),
	}
}

func (s *Store) GetGame(ctx context.Context, id uint) (*models.Game, error) {
	return s.games.Get(ctx, id)
}

func (s *Store) GetGameDetails(ctx context.Context, id uint) (*models.Game, error) {
	return s.details.Get(ctx, id)
}

// createGameSQL inserts the new game only when no conflicting booking exists.
// Check and insert happen in one statement, which closes the window two plain
// check-then-act requests would race through.
const createGameSQL = `
INSERT INTO games
	(game_date, home_team_id, away_team_id, home_score, away_score,
	 current_period, status, remaining_seconds, created_at, updated_at)
SELECT ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW()
WHERE NOT EXISTS (
	SELECT 1 FROM games
	WHERE (home_team_id IN (?, ?) OR away_team_id IN (?, ?))
	  AND status IN ('NOT_STARTED', 'RUNNING', 'PAUSED')
)
RETURNING id, created_at, updated_at`

func (s *Store) CreateGameIfTeamsFree(ctx context.Context, g *models.Game) error {
	res := s.db.WithContext(ctx).Raw(createGameSQL,
		g.GameDate, g.HomeTeamID, g.AwayTeamID, g.HomeScore, g.AwayScore,
		g.CurrentPeriod, g.Status, g.RemainingSeconds,
		g.HomeTeamID, g.AwayTeamID, g.HomeTeamID, g.AwayTeamID,
	).Scan(g)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTeamBusy
	}
	return nil
}

func (s *Store) UpdateGame(ctx context.Context, g *models.Game) error {
	// Save writes all fields, which matters here: pausing must NULL out
	// period_started_at, and a partial update would silently keep it.
	return s.db.WithContext(ctx).Save(g).Error
}

func (s *Store) UpsertTeamFoul(ctx context.Context, gameID, teamID uint, period, delta int) (*models.TeamFoul, error) {
	tf := models.TeamFoul{
		GameID:     gameID,
		TeamID:     teamID,
		Period:     period,
		TotalFouls: clampNonNegative(delta),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "game_id"}, {Name: "team_id"}, {Name: "period"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_fouls": gorm.Expr("GREATEST(0, team_fouls.total_fouls + ?)", delta),
		}),
	}).Create(&tf).Error
	if err != nil {
		return nil, err
	}

	// The upsert doesn't return the post-conflict counter, so read the row back.
	var out models.TeamFoul
	err = s.db.WithContext(ctx).
		Where("game_id = ? AND team_id = ? AND period = ?", gameID, teamID, period).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) UpsertPlayerFoul(ctx context.Context, gameID, playerID uint, period, delta int) (*models.PlayerFoul, error) {
	pf := models.PlayerFoul{
		GameID:    gameID,
		PlayerID:  playerID,
		Period:    period,
		FoulCount: clampNonNegative(delta),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "game_id"}, {Name: "player_id"}, {Name: "period"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"foul_count": gorm.Expr("GREATEST(0, player_fouls.foul_count + ?)", delta),
		}),
	}).Create(&pf).Error
	if err != nil {
		return nil, err
	}

	var out models.PlayerFoul
	err = s.db.WithContext(ctx).
		Where("game_id = ? AND player_id = ? AND period = ?", gameID, playerID, period).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) PurgeFoulsForGame(ctx context.Context, gameID uint) error {
	if err := s.db.WithContext(ctx).Where("game_id = ?", gameID).Delete(&models.TeamFoul{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("game_id = ?", gameID).Delete(&models.PlayerFoul{}).Error
}

func (s *Store) Transaction(ctx context.Context, fn func(Storage) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
