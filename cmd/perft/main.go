// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/87flowers/chesscore/pkg/board"
	"github.com/87flowers/chesscore/pkg/tt"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

var version = build.NewVersion(0, 1, 0)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	chess960 = flag.Bool("chess960", false, "Interpret fen as Shredder-FEN/X-FEN")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
	hash     = flag.Int("hash", 16, "Transposition table size in MB, used only to prefetch cluster lines during the walk")
	threads  = flag.Int("threads", 1, "Goroutines used to clear the transposition table")
	showVers = flag.Bool("version", false, "Print version and exit")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *showVers {
		fmt.Println(version)
		os.Exit(0)
	}

	if *position == "" {
		*position = board.StartFEN
	}

	board.Init()

	var pos board.Position
	var st board.StateInfo
	if err := pos.Set(*position, *chess960, &st); err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	table := tt.NewTable()
	table.Resize(ctx, *hash, *threads)

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := search(ctx, &pos, table, i, *divide && i == *depth)
		duration := time.Since(start)

		println(fmt.Sprintf("perft,%v,%v,%v,%v", *position, i, nodes, duration.Microseconds()))
	}
}

// search walks the legal move tree to the given depth, returning the leaf count. It
// prefetches the transposition table cluster for each resulting position -- the only
// relationship this core specifies between Position and Table -- even though perft itself
// has no use for cached search results. Cancellation is checked between moves so a long
// -depth run can be interrupted without leaving the process uninterruptible.
func search(ctx context.Context, pos *board.Position, table *tt.Table, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range pos.GenerateMoves() {
		if contextx.IsCancelled(ctx) {
			return nodes
		}
		if !pos.Legal(m) {
			continue
		}

		var st board.StateInfo
		gc := pos.GivesCheck(m)
		pos.DoMove(m, &st, gc)
		tt.Prefetch(table.FirstEntry(pos.Key()))
		count := search(ctx, pos, table, depth-1, false)
		pos.UndoMove(m)

		if d {
			println(fmt.Sprintf("%v: %v", m, count))
		}
		nodes += count
	}
	return nodes
}
