package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAdjustTeamFoul(t *testing.T) {
	ctx := context.Background()
	ledger := NewFoulLedger(newFakeStore())

	tf, err := ledger.AdjustTeamFoul(ctx, 1, 10, 1, +1)
	require.NoError(t, err)
	assert.Equal(t, 1, tf.TotalFouls)

	tf, err = ledger.AdjustTeamFoul(ctx, 1, 10, 1, +1)
	require.NoError(t, err)
	assert.Equal(t, 2, tf.TotalFouls)

	// Over-decrementing clamps at zero instead of going negative.
	tf, err = ledger.AdjustTeamFoul(ctx, 1, 10, 1, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, tf.TotalFouls)
}

func TestLedgerKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	ledger := NewFoulLedger(newFakeStore())

	_, err := ledger.AdjustTeamFoul(ctx, 1, 10, 1, +1)
	require.NoError(t, err)

	// Same team, different period — fresh counter.
	tf, err := ledger.AdjustTeamFoul(ctx, 1, 10, 2, +1)
	require.NoError(t, err)
	assert.Equal(t, 1, tf.TotalFouls)

	// Different game entirely — fresh counter.
	tf, err = ledger.AdjustTeamFoul(ctx, 2, 10, 1, +1)
	require.NoError(t, err)
	assert.Equal(t, 1, tf.TotalFouls)
}

func TestLedgerAdjustPlayerFoul(t *testing.T) {
	ctx := context.Background()
	ledger := NewFoulLedger(newFakeStore())

	pf, err := ledger.AdjustPlayerFoul(ctx, 1, 23, 4, +1)
	require.NoError(t, err)
	assert.Equal(t, 1, pf.FoulCount)

	pf, err = ledger.AdjustPlayerFoul(ctx, 1, 23, 4, -2)
	require.NoError(t, err)
	assert.Equal(t, 0, pf.FoulCount)
}

func TestLedgerPurgeForGame(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	ledger := NewFoulLedger(st)

	_, err := ledger.AdjustTeamFoul(ctx, 1, 10, 1, +1)
	require.NoError(t, err)
	_, err = ledger.AdjustPlayerFoul(ctx, 1, 23, 1, +1)
	require.NoError(t, err)
	_, err = ledger.AdjustTeamFoul(ctx, 2, 10, 1, +1)
	require.NoError(t, err)

	require.NoError(t, ledger.PurgeForGame(ctx, 1))

	// Only game 1's rows are gone.
	assert.Len(t, st.teamFouls, 1)
	assert.Empty(t, st.playerFouls)
	assert.Contains(t, st.teamFouls, foulKey(2, 10, 1))
}
