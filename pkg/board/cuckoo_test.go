package board_test

import (
	"testing"

	"github.com/87flowers/chesscore/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestCuckooTableSize(t *testing.T) {
	// The perfect-hash construction over every reversible non-pawn move must terminate with
	// exactly this many entries for standard chess; a different count means the insertion loop
	// silently dropped or double-counted a move.
	assert.Equal(t, 3668, board.Cuckoo.Size())
}
