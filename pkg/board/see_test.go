package board_test

import (
	"testing"

	"github.com/87flowers/chesscore/pkg/board"
	"github.com/stretchr/testify/require"
)

func TestSeeGeRookTakesUndefendedPawn(t *testing.T) {
	// Classic SEE test position: no black piece defends e5, so Re1xe5 simply wins a pawn and
	// the exchange is good for a threshold of 0 but not for a threshold above a pawn's value.
	var pos board.Position
	var st board.StateInfo
	require.NoError(t, pos.Set("1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1", false, &st))

	m := board.NewMove(board.E1, board.E5)
	require.True(t, pos.PseudoLegal(m))

	if !pos.SeeGe(m, 0) {
		t.Errorf("SeeGe(Rxe5, 0) = false, want true")
	}
	if pos.SeeGe(m, 200) {
		t.Errorf("SeeGe(Rxe5, 200) = true, want false")
	}
}

func TestSeeGeUndefendedCapture(t *testing.T) {
	var pos board.Position
	var st board.StateInfo
	require.NoError(t, pos.Set("4k3/8/8/8/4p3/3P4/8/4K3 w - - 0 1", false, &st))

	m := board.NewMove(board.D3, board.E4)
	require.True(t, pos.PseudoLegal(m))

	if !pos.SeeGe(m, 100) {
		t.Errorf("SeeGe(dxe4, 100) = false, want true (undefended pawn capture)")
	}
	if !pos.SeeGe(m, board.PieceValue[board.Pawn]) {
		t.Errorf("SeeGe(dxe4, pawn value) = false, want true")
	}
	if pos.SeeGe(m, board.PieceValue[board.Pawn]+1) {
		t.Errorf("SeeGe(dxe4, pawn value + 1) = true, want false")
	}
}

func TestSeeGeEnPassantShortCircuitsThreshold(t *testing.T) {
	// Non-normal moves never run the exchange loop: an EnPassant capture reports threshold <= 0
	// regardless of what actually sits on the board, unlike a Normal capture of the same pawn.
	var pos board.Position
	var st board.StateInfo
	require.NoError(t, pos.Set("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", false, &st))

	m := board.NewEnPassantMove(board.E5, board.D6)
	require.True(t, pos.PseudoLegal(m))

	if !pos.SeeGe(m, 0) {
		t.Errorf("SeeGe(exd6 e.p., 0) = false, want true")
	}
	if pos.SeeGe(m, 1) {
		t.Errorf("SeeGe(exd6 e.p., 1) = true, want false")
	}
}

func TestSeeGePromotionShortCircuitsThreshold(t *testing.T) {
	// A queening push is also non-Normal: it short-circuits on threshold alone even though the
	// material swing (a pawn becoming a queen) would pass any threshold under the exchange loop.
	var pos board.Position
	var st board.StateInfo
	require.NoError(t, pos.Set("k7/4P3/8/8/8/8/8/4K3 w - - 0 1", false, &st))

	m := board.NewPromotionMove(board.E7, board.E8, board.Queen)
	require.True(t, pos.PseudoLegal(m))

	if !pos.SeeGe(m, 0) {
		t.Errorf("SeeGe(e8=Q, 0) = false, want true")
	}
	if pos.SeeGe(m, 1) {
		t.Errorf("SeeGe(e8=Q, 1) = true, want false")
	}
}
