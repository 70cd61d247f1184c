package board_test

import (
	"testing"

	"github.com/87flowers/chesscore/pkg/board"
	"github.com/stretchr/testify/require"
)

func TestRepetitionDetectedAfterKingShuffle(t *testing.T) {
	var pos board.Position
	var root board.StateInfo
	require.NoError(t, pos.Set("4k3/8/8/8/8/8/8/4K3 w - - 0 1", false, &root))

	startKey := pos.Key()

	plays := []board.Move{
		board.NewMove(board.E1, board.D1),
		board.NewMove(board.E8, board.D8),
		board.NewMove(board.D1, board.E1),
		board.NewMove(board.D8, board.E8),
	}
	var plySts [4]board.StateInfo
	for i, m := range plays {
		pos.DoMove(m, &plySts[i], pos.GivesCheck(m))
	}

	require.Equal(t, startKey, pos.Key())
	require.True(t, pos.IsRepetition(5))
	require.False(t, pos.IsRepetition(3))
}

func TestUpcomingRepetitionDetectsReversibleCycle(t *testing.T) {
	var pos board.Position
	var root board.StateInfo
	require.NoError(t, pos.Set("4k3/8/8/8/8/8/8/4K3 w - - 0 1", false, &root))

	var sts [3]board.StateInfo
	m1 := board.NewMove(board.E1, board.D1)
	pos.DoMove(m1, &sts[0], pos.GivesCheck(m1))
	m2 := board.NewMove(board.E8, board.D8)
	pos.DoMove(m2, &sts[1], pos.GivesCheck(m2))
	m3 := board.NewMove(board.D1, board.E1)
	pos.DoMove(m3, &sts[2], pos.GivesCheck(m3))

	// Black to move, 3 plies of reversible king shuffling behind: Kd8-e8 would recreate the
	// root position, a cycle one ply beyond the current search ply.
	require.True(t, pos.UpcomingRepetition(4))
	require.False(t, pos.UpcomingRepetition(3))
}
