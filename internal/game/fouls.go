package game

import (
	"context"

	"github.com/courtside/scoreboard/internal/models"
)

// FoulStore is the slice of persistence the foul ledger needs. The increment is
// pushed down into the store as an upsert so that two courtside consoles tapping
// "+1 foul" at the same moment both land, instead of racing a read-then-write.
type FoulStore interface {
	UpsertTeamFoul(ctx context.Context, gameID, teamID uint, period, delta int) (*models.TeamFoul, error)
	UpsertPlayerFoul(ctx context.Context, gameID, playerID uint, period, delta int) (*models.PlayerFoul, error)
	PurgeFoulsForGame(ctx context.Context, gameID uint) error
}

// FoulLedger maintains the per-period foul counters for a game. Rows are created
// lazily on the first adjustment of a (game, team/player, period) key and the count
// is clamped at zero from below. No upper bound: foul-out and bonus rules are
// scoreboard-display concerns, not the ledger's.
type FoulLedger struct {
	store FoulStore
}

// NewFoulLedger builds a ledger over the given store.
func NewFoulLedger(store FoulStore) *FoulLedger {
	return &FoulLedger{store: store}
}

// AdjustTeamFoul applies delta to the team's foul count for the period and returns
// the resulting row.
func (l *FoulLedger) AdjustTeamFoul(ctx context.Context, gameID, teamID uint, period, delta int) (*models.TeamFoul, error) {
	return l.store.UpsertTeamFoul(ctx, gameID, teamID, period, delta)
}

// AdjustPlayerFoul applies delta to the player's foul count for the period and
// returns the resulting row.
func (l *FoulLedger) AdjustPlayerFoul(ctx context.Context, gameID, playerID uint, period, delta int) (*models.PlayerFoul, error) {
	return l.store.UpsertPlayerFoul(ctx, gameID, playerID, period, delta)
}

// PurgeForGame deletes every foul row for the game. Called when a game is reset.
func (l *FoulLedger) PurgeForGame(ctx context.Context, gameID uint) error {
	return l.store.PurgeFoulsForGame(ctx, gameID)
}
