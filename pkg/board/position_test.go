package board_test

import (
	"testing"

	"github.com/87flowers/chesscore/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func perft(t *testing.T, pos *board.Position, depth int) int64 {
	t.Helper()
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range pos.LegalMoves() {
		var st board.StateInfo
		gc := pos.GivesCheck(m)
		pos.DoMove(m, &st, gc)

		// Incremental keys must always agree with a from-scratch recomputation.
		var fresh board.Position
		var freshSt board.StateInfo
		require.NoError(t, fresh.Set(pos.Fen(), false, &freshSt))
		assert.Equal(t, fresh.Key(), pos.Key(), "incremental key diverged after %v", m)

		nodes += perft(t, pos, depth-1)
		pos.UndoMove(m)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	var pos board.Position
	var st board.StateInfo
	require.NoError(t, pos.Set(board.StartFEN, false, &st))

	expected := []int64{1, 20, 400, 8902, 197281}
	for depth, want := range expected {
		assert.Equal(t, want, perft(t, &pos, depth), "perft(%d) from starting position", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	var pos board.Position
	var st board.StateInfo
	require.NoError(t, pos.Set(kiwipeteFEN, false, &st))

	expected := []int64{1, 48, 2039, 97862}
	for depth, want := range expected {
		assert.Equal(t, want, perft(t, &pos, depth), "perft(%d) from Kiwipete", depth)
	}
}

func TestFenRoundTrip(t *testing.T) {
	tests := []string{
		board.StartFEN,
		kiwipeteFEN,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	}

	for _, fen := range tests {
		var pos board.Position
		var st board.StateInfo
		require.NoError(t, pos.Set(fen, false, &st))
		assert.Equal(t, fen, pos.Fen())
	}
}

func TestDoMoveUndoMoveRestoresPosition(t *testing.T) {
	var pos board.Position
	var st board.StateInfo
	require.NoError(t, pos.Set(kiwipeteFEN, false, &st))

	before := pos.Fen()
	for _, m := range pos.LegalMoves() {
		var childSt board.StateInfo
		pos.DoMove(m, &childSt, pos.GivesCheck(m))
		pos.UndoMove(m)
		assert.Equal(t, before, pos.Fen(), "undo of %v did not restore position", m)
	}
}

func TestChess960CastlingFenRoundTrip(t *testing.T) {
	fen := "1rkr4/8/8/8/8/8/8/1RKR4 w DBdb - 0 1"

	var pos board.Position
	var st board.StateInfo
	require.NoError(t, pos.Set(fen, true, &st))
	assert.Equal(t, fen, pos.Fen())
}
