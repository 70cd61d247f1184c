package tt

import (
	"context"
	"fmt"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/87flowers/chesscore/pkg/board"
	"github.com/seekerror/logw"
)

const mb = 1 << 20

// Table is the process-wide transposition table: a flat array of Clusters, concurrently
// probed and written by every search thread without locks. See Probe and Writer.Write for
// the concurrency contract -- entries are read and written racily by design.
type Table struct {
	clusters     []Cluster
	clusterCount uint64
	generation8  atomic.Uint32
}

// NewTable returns an empty, unallocated table. Call Resize before using it.
func NewTable() *Table {
	return &Table{}
}

// Resize releases any existing allocation and allocates a table sized to hold
// floor(mb * 2^20 / 64) clusters (at least one), then clears it. Blocks until the clear
// striped across threads completes.
func (t *Table) Resize(ctx context.Context, megabytes int, threads int) {
	t.clusters = nil

	count := uint64(megabytes) * mb / uint64(unsafeSizeofCluster)
	if count == 0 {
		count = 1
	}
	t.clusterCount = count

	defer func() {
		if r := recover(); r != nil {
			logw.Exitf(ctx, "failed to allocate %v MB transposition table: %v", megabytes, r)
		}
	}()
	t.clusters = make([]Cluster, count)

	logw.Infof(ctx, "Allocated %v MB transposition table, %v clusters", megabytes, count)
	t.Clear(ctx, threads)
}

// unsafeSizeofCluster is 64 -- kept as a named constant rather than unsafe.Sizeof so the
// layout assumption is visible at a glance next to Resize's arithmetic.
const unsafeSizeofCluster = 64

// Clear zeroes the whole table, striped across threads goroutines so each handles a
// contiguous range of clusters (the last absorbing any remainder), and resets generation8
// to 0. Does not return until every stripe has finished.
func (t *Table) Clear(ctx context.Context, threads int) {
	if threads < 1 {
		threads = 1
	}
	t.generation8.Store(0)

	count := uint64(len(t.clusters))
	if count == 0 {
		return
	}
	stripe := count / uint64(threads)
	if stripe == 0 {
		stripe = count
		threads = 1
	}

	var wg sync.WaitGroup
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		start := uint64(i) * stripe
		end := start + stripe
		if i == threads-1 {
			end = count
		}
		go func(start, end uint64) {
			defer wg.Done()
			for c := start; c < end; c++ {
				t.clusters[c] = Cluster{}
			}
		}(start, end)
	}
	wg.Wait()

	logw.Infof(ctx, "Cleared transposition table (%v clusters, %v threads)", count, threads)
}

// NewSearch bumps generation8 so the replacement policy treats every entry written before
// this call as aged. Intended to be called once per search, from the coordinating thread.
func (t *Table) NewSearch() {
	next := uint8(t.generation8.Load()) + GenerationDelta
	t.generation8.Store(uint32(next))
}

func (t *Table) generation() uint8 {
	return uint8(t.generation8.Load())
}

// clusterIndex maps a key to a cluster uniformly over [0, clusterCount) via the high half
// of a 128-bit multiply, avoiding a modulo and avoiding the power-of-2-only restriction a
// mask-based index would impose.
func (t *Table) clusterIndex(key board.Key) uint64 {
	hi, _ := bits.Mul64(uint64(key), t.clusterCount)
	return hi
}

// Probe looks up key. On a hit, data is a snapshot of the matching slot and writer targets
// that same slot for a subsequent write-back (e.g. after the caller explores the node
// further). On a miss, data is the zero value and writer targets the slot the replacement
// policy selected as the least valuable currently in the cluster.
func (t *Table) Probe(key board.Key) (hit bool, data Data, writer Writer) {
	cluster := &t.clusters[t.clusterIndex(key)]
	key16 := uint16(key)

	for i := 0; i < ClusterSize; i++ {
		if cluster.key(i) == key16 {
			e := cluster.entry(i)
			if e.occupied() {
				return true, e.snapshot(), Writer{cluster: cluster, index: i, tableGen: t.generation()}
			}
			return false, Data{}, Writer{cluster: cluster, index: i, tableGen: t.generation()}
		}
	}

	worst := 0
	worstScore := replaceScore(cluster.entry(0), t.generation())
	for i := 1; i < ClusterSize; i++ {
		score := replaceScore(cluster.entry(i), t.generation())
		if score < worstScore {
			worstScore = score
			worst = i
		}
	}
	return false, Data{}, Writer{cluster: cluster, index: worst, tableGen: t.generation()}
}

// replaceScore is depth8 - relativeAge(generation): the slot with the lowest score is the
// best candidate to evict, since it is either already shallow or from an old generation.
func replaceScore(e packedEntry, tableGeneration8 uint8) int {
	return int(e.depth8()) - int(relativeAge(e.genBound8(), tableGeneration8))
}

// Hashfull samples up to the first 1000 clusters and reports, in per-mille, how many of
// their slots are occupied by an entry no older than maxAge generations.
func (t *Table) Hashfull(maxAge int) int {
	sample := uint64(1000)
	if uint64(len(t.clusters)) < sample {
		sample = uint64(len(t.clusters))
	}
	if sample == 0 {
		return 0
	}

	gen := t.generation()
	maxAgeRelative := maxAge * GenerationDelta

	var occupied int
	for c := uint64(0); c < sample; c++ {
		cluster := &t.clusters[c]
		for i := 0; i < ClusterSize; i++ {
			e := cluster.entry(i)
			if e.occupied() && int(relativeAge(e.genBound8(), gen)) <= maxAgeRelative {
				occupied++
			}
		}
	}
	return int(uint64(occupied) * 1000 / (sample * ClusterSize))
}

// FirstEntry returns the cluster key maps to, as an opaque handle for Prefetch. Mirrors the
// raw-pointer API real engines expose for software prefetch; Go has no portable prefetch
// intrinsic, so Prefetch is a best-effort touch rather than an actual cache hint.
func (t *Table) FirstEntry(key board.Key) *Cluster {
	return &t.clusters[t.clusterIndex(key)]
}

// Prefetch is a best-effort hint that the caller is about to Probe cluster. On platforms
// without a prefetch intrinsic exposed to Go, this just touches the first word, which is
// enough to pull the cache line in on most architectures during the time it takes the
// caller to finish computing the rest of do_move.
func Prefetch(cluster *Cluster) {
	_ = cluster.data[0].Load()
}

func (t *Table) String() string {
	return fmt.Sprintf("TT[%v clusters, gen=%v]", len(t.clusters), t.generation())
}
