package tt

import (
	"sync/atomic"

	"github.com/87flowers/chesscore/pkg/board"
)

// ClusterSize is the number of entries sharing one verification-key array and cache line.
const ClusterSize = 6

// depthEntryOffset lets depth8 stay unsigned while still representing the small negative
// depths used inside quiescence search (e.g. depth -4): every depth is biased by this much
// before being packed, and unbiased by the same amount on the way out.
const depthEntryOffset = -7

// GenerationDelta is added to generation8 once per new_search call. Generation occupies the
// top 5 bits of genBound8 (pv and bound occupy the low 3), so the delta must be a multiple
// of 8 for relative-age arithmetic to work.
const GenerationDelta = 8

// generationCycle and generationMask implement the relative-age computation used by the
// replacement policy: age wraps every 256/GenerationDelta generations.
const (
	generationCycle = 255 + GenerationDelta
	generationMask  = 0xF8
)

// packedEntry is the 64-bit payload of one TT slot: move16 | value16 | eval16 | genBound8 | depth8.
type packedEntry uint64

const (
	moveShift     = 0
	valueShift    = 16
	evalShift     = 32
	genBoundShift = 48
	depthShift    = 56
)

func packEntry(move board.Move, value, eval board.Value, genBound8, depth8 uint8) packedEntry {
	return packedEntry(uint64(move)<<moveShift) |
		packedEntry(uint64(uint16(value))<<valueShift) |
		packedEntry(uint64(uint16(eval))<<evalShift) |
		packedEntry(uint64(genBound8)<<genBoundShift) |
		packedEntry(uint64(depth8)<<depthShift)
}

func (e packedEntry) move() board.Move   { return board.Move(uint16(e >> moveShift)) }
func (e packedEntry) value() board.Value { return board.Value(int16(uint16(e >> valueShift))) }
func (e packedEntry) eval() board.Value  { return board.Value(int16(uint16(e >> evalShift))) }
func (e packedEntry) genBound8() uint8   { return uint8(e >> genBoundShift) }
func (e packedEntry) depth8() uint8      { return uint8(e >> depthShift) }

func (e packedEntry) bound() Bound { return Bound(e.genBound8() & 0x3) }
func (e packedEntry) pv() bool     { return e.genBound8()&0x4 != 0 }

// depth returns the unbiased search depth, meaningful only when occupied() is true.
func (e packedEntry) depth() int {
	return int(e.depth8()) + depthEntryOffset
}

// occupied reports whether this slot has ever been written: depth8 is only ever zero on a
// freshly cleared slot, since every real write biases depth by depthEntryOffset (-7) and no
// legal search depth is low enough to produce exactly zero after biasing down to qsearch.
func (e packedEntry) occupied() bool {
	return e.depth8() != 0
}

// relativeAge measures how many generations old an entry is relative to the table's current
// generation, saturating/wrapping the way a byte naturally does.
func relativeAge(entryGenBound8, tableGeneration8 uint8) uint8 {
	return uint8((generationCycle + int(tableGeneration8) - int(entryGenBound8)) & generationMask)
}

// Data is a point-in-time, non-atomic snapshot of one TT slot, returned by Probe.
type Data struct {
	Move  board.Move
	Value board.Value
	Eval  board.Value
	Bound Bound
	PV    bool
	Depth int
}

func (e packedEntry) snapshot() Data {
	return Data{
		Move:  e.move(),
		Value: e.value(),
		Eval:  e.eval(),
		Bound: e.bound(),
		PV:    e.pv(),
		Depth: e.depth(),
	}
}

// Cluster is the unit of allocation and cache locality: six slots, each backed by an atomic
// 64-bit payload and a 16-bit verification key held in a separate array so a torn read of
// one slot's key never straddles another slot's payload. sync/atomic has no 16-bit type, so
// the keys are packed two per atomic 32-bit word. 64 bytes: fits one cache line.
type Cluster struct {
	data [ClusterSize]atomic.Uint64
	keys [ClusterSize / 2]atomic.Uint32
	_    [4]byte
}

func (c *Cluster) entry(i int) packedEntry { return packedEntry(c.data[i].Load()) }
func (c *Cluster) key(i int) uint16        { return uint16(c.keys[i/2].Load() >> (16 * (i % 2))) }

// setKey stores slot i's verification key, leaving the other key in the same word intact.
func (c *Cluster) setKey(i int, k uint16) {
	w, shift := &c.keys[i/2], 16*(i%2)
	for {
		old := w.Load()
		if w.CompareAndSwap(old, old&^(0xffff<<shift)|uint32(k)<<shift) {
			return
		}
	}
}
