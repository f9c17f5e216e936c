// Package clock implements the game clock and status engine: pure functions that
// rewrite a Game's time and status fields. Nothing here touches the database —
// callers apply one of these transitions and then persist the game themselves.
//
// There is no ticking timer. Starting the clock records the wall-clock instant in
// PeriodStartedAt; pausing it subtracts the elapsed whole seconds from
// RemainingSeconds. Between those two events the stored remaining time is simply
// stale, which is fine: every operation receives the current instant explicitly,
// so time only has to be right at the moments someone touches the game.
//
// All instants are normalized to UTC before they are stored or compared, so elapsed
// time stays correct across daylight-saving boundaries.
//
// None of these transitions validate the game's current status. Pausing a finished
// game, resuming a game that was never paused — every call is an unconditional
// overwrite. The scoreboard console is the operator's source of truth and the
// backend deliberately does not second-guess it.
package clock

import (
	"time"

	"github.com/courtside/scoreboard/internal/models"
)

// DefaultPeriodSeconds is the period length used when a game is created or reset
// without an explicit one: 10 minutes, a standard FIBA quarter.
const DefaultPeriodSeconds = 600

// Start begins the clock for the current period: the game becomes RUNNING with a
// fresh RemainingSeconds, discarding any time left over from a previous pause.
// The period is floored at 1 so a row that somehow carries 0 is repaired here.
func Start(g *models.Game, periodSeconds int, now time.Time) {
	g.Status = models.StatusRunning
	if g.CurrentPeriod < 1 {
		g.CurrentPeriod = 1
	}
	g.RemainingSeconds = intPtr(periodSeconds)
	g.PeriodStartedAt = timePtr(now)
}

// Pause stops the clock. If the game was actually running, the whole seconds elapsed
// since PeriodStartedAt are deducted from RemainingSeconds, clamped at zero on both
// sides. Whatever the prior state, the game ends up PAUSED with no start instant —
// pausing twice is harmless.
func Pause(g *models.Game, now time.Time) {
	if g.Status == models.StatusRunning && g.PeriodStartedAt != nil && g.RemainingSeconds != nil {
		elapsed := int(now.UTC().Sub(g.PeriodStartedAt.UTC()).Seconds())
		if elapsed < 0 {
			elapsed = 0
		}
		remaining := *g.RemainingSeconds - elapsed
		if remaining < 0 {
			remaining = 0
		}
		g.RemainingSeconds = intPtr(remaining)
	}
	g.PeriodStartedAt = nil
	g.Status = models.StatusPaused
}

// Resume restarts the clock from whatever RemainingSeconds currently holds.
// It does not check that the game was paused first.
func Resume(g *models.Game, now time.Time) {
	g.Status = models.StatusRunning
	g.PeriodStartedAt = timePtr(now)
}

// ResetPeriod reloads the current period's clock to a full periodSeconds and
// leaves the game paused, ready to be resumed.
func ResetPeriod(g *models.Game, periodSeconds int) {
	g.RemainingSeconds = intPtr(periodSeconds)
	g.PeriodStartedAt = nil
	g.Status = models.StatusPaused
}

// NextPeriod advances to the following period and stops the clock. The remaining
// time is intentionally left alone — the operator resets or starts it explicitly.
// No maximum period is enforced; overtime periods just keep counting up.
func NextPeriod(g *models.Game) {
	g.CurrentPeriod++
	g.PeriodStartedAt = nil
	g.Status = models.StatusPaused
}

// PreviousPeriod steps back one period (floored at 1) and stops the clock.
func PreviousPeriod(g *models.Game) {
	if g.CurrentPeriod > 1 {
		g.CurrentPeriod--
	}
	g.PeriodStartedAt = nil
	g.Status = models.StatusPaused
}

// Reset returns the game to its freshly created state: scores zeroed, period 1,
// NOT_STARTED, default period time loaded. The caller must also purge the game's
// foul ledger rows — that is persistence work, outside this package's reach.
func Reset(g *models.Game) {
	g.HomeScore = 0
	g.AwayScore = 0
	g.CurrentPeriod = 1
	g.Status = models.StatusNotStarted
	g.RemainingSeconds = intPtr(DefaultPeriodSeconds)
	g.PeriodStartedAt = nil
}

// Suspend freezes the game without touching the remaining time, so a suspended
// game can later be resumed from exactly where it stopped.
func Suspend(g *models.Game) {
	g.Status = models.StatusSuspended
	g.PeriodStartedAt = nil
}

// Finish ends the game: FINISHED with zero time on the clock.
func Finish(g *models.Game) {
	g.Status = models.StatusFinished
	g.RemainingSeconds = intPtr(0)
	g.PeriodStartedAt = nil
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}
