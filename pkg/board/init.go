package board

import "sync"

var initOnce sync.Once

// Init installs the fixed Zobrist constants and builds the cuckoo tables. Idempotent --
// safe to call from multiple call sites (e.g. engine startup and tests) since only the
// first call does any work.
func Init() {
	initOnce.Do(func() {
		Zobrist = newZobristTable()
		Cuckoo = newCuckooTable(Zobrist)
	})
}
