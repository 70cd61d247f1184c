// Package tt implements the process-wide, lock-free transposition table: a fixed-capacity,
// cache-line-aligned array of clusters addressed by Zobrist key, concurrently probed and
// written by every search thread without synchronization. See Table.Probe and Writer.Write.
package tt
