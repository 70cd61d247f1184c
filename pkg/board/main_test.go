package board_test

import (
	"testing"

	"github.com/87flowers/chesscore/pkg/board"
)

func TestMain(m *testing.M) {
	board.Init()
	m.Run()
}
