package tt

import "github.com/87flowers/chesscore/pkg/board"

// Writer is bound to one slot found by Probe and commits a single follow-up write to it.
// Reusing the slot Probe already located avoids re-hashing the key and re-scanning the
// cluster on the write side of a probe/search/write cycle.
type Writer struct {
	cluster *Cluster
	index   int

	// tableGen is the table's generation8 as observed at Probe time, used to evaluate the
	// replacement policy's "is the old entry from a prior generation" test consistently
	// with whatever the scan already computed it against.
	tableGen uint8
}

// Write applies the replacement policy to the bound slot. pv marks the entry as having been
// reached via a principal-variation node. An empty move keeps the stored move when the key
// matches the slot's. The entry is replaced when the bound is Exact, the key differs, the new
// depth plus 2 for pv exceeds the stored depth minus 4, or the stored entry is from an older
// generation; otherwise a stored non-Exact entry of depth 5 or more loses one ply of depth.
func (w Writer) Write(key board.Key, value board.Value, pv bool, bound Bound, depth int, move board.Move, eval board.Value) {
	key16 := uint16(key)
	old := w.cluster.entry(w.index)
	oldKey16 := w.cluster.key(w.index)

	if move == board.MoveNone && key16 == oldKey16 {
		move = old.move()
	}

	depth8 := uint8(depth - depthEntryOffset)
	pvBit := uint8(0)
	if pv {
		pvBit = 1 << 2
	}
	genBound8 := w.tableGen | pvBit | uint8(bound)

	replace := bound == BoundExact ||
		key16 != oldKey16 ||
		int(depth8)+2*int(boolToInt(pv)) > int(old.depth8())-4 ||
		relativeAge(old.genBound8(), w.tableGen) != 0

	if replace {
		w.cluster.data[w.index].Store(uint64(packEntry(move, value, eval, genBound8, depth8)))
		w.cluster.setKey(w.index, key16)
		return
	}

	if old.depth() >= 5 && old.bound() != BoundExact {
		decayed := packEntry(old.move(), old.value(), old.eval(), old.genBound8(), old.depth8()-1)
		w.cluster.data[w.index].Store(uint64(decayed))
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
