package tt_test

import (
	"context"
	"testing"

	"github.com/87flowers/chesscore/pkg/board"
	"github.com/87flowers/chesscore/pkg/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T) *tt.Table {
	t.Helper()
	table := tt.NewTable()
	table.Resize(context.Background(), 1, 2)
	return table
}

func TestProbeMissThenWriteThenHit(t *testing.T) {
	table := newTestTable(t)
	key := board.Key(0x1122334455667788)

	hit, data, writer := table.Probe(key)
	require.False(t, hit)
	require.Equal(t, tt.Data{}, data)

	move := board.NewMove(board.E2, board.E4)
	writer.Write(key, 123, true, tt.BoundExact, 7, move, 100)

	hit, data, _ = table.Probe(key)
	require.True(t, hit)
	assert.Equal(t, move, data.Move)
	assert.Equal(t, board.Value(123), data.Value)
	assert.Equal(t, board.Value(100), data.Eval)
	assert.Equal(t, tt.BoundExact, data.Bound)
	assert.True(t, data.PV)
	assert.Equal(t, 7, data.Depth)
}

func TestWritePreservesMoveWhenCallerOmitsIt(t *testing.T) {
	table := newTestTable(t)
	key := board.Key(0xdeadbeefcafef00d)

	move := board.NewMove(board.G1, board.F3)
	_, _, writer := table.Probe(key)
	writer.Write(key, 10, false, tt.BoundLower, 3, move, 5)

	_, _, writer2 := table.Probe(key)
	writer2.Write(key, 20, false, tt.BoundLower, 4, board.MoveNone, 6)

	_, data, _ := table.Probe(key)
	assert.Equal(t, move, data.Move, "write with MoveNone should preserve the previously stored move")
}

func TestHashfullIsZeroOnFreshTable(t *testing.T) {
	table := newTestTable(t)
	assert.Equal(t, 0, table.Hashfull(1000))
}

func TestNewSearchAgesOutStaleEntries(t *testing.T) {
	table := newTestTable(t)
	key := board.Key(0x0102030405060708)

	// Fill one whole cluster: a single entry is 1 of the 6000 sampled slots and rounds down to
	// 0 per mille, while six entries make Hashfull exactly 1 before aging.
	for i := 0; i < tt.ClusterSize; i++ {
		k := key + board.Key(i)
		_, _, writer := table.Probe(k)
		writer.Write(k, 1, false, tt.BoundUpper, 2, board.MoveNone, 0)
	}

	hit, _, _ := table.Probe(key)
	require.True(t, hit)
	require.Equal(t, 1, table.Hashfull(1))

	table.NewSearch()
	table.NewSearch()
	table.NewSearch()
	table.NewSearch()

	// The entries are still present (Probe matches by verification key regardless of age), but
	// four generations old they no longer count within a maxAge window of one generation.
	assert.Equal(t, 0, table.Hashfull(1))
}

func TestProbeSelectsMinimumReplaceScoreSlotOnCollision(t *testing.T) {
	table := newTestTable(t)

	// All seven keys below share the same high bits (and so the same cluster, clusterIndex
	// being the high 14 bits of a 1 MB table's 16384 clusters) but distinct low 16 bits (the
	// per-slot verification key), forcing a real same-cluster collision instead of relying on
	// Hashfull's indirect gauge.
	const sameCluster = board.Key(1) << 50
	keys := make([]board.Key, tt.ClusterSize+1)
	for i := range keys {
		keys[i] = sameCluster | board.Key(i+1)
	}

	// Fill every slot in the cluster, making the last one deliberately shallow: it alone has
	// the minimum replace score (depth8 - relativeAge) once all entries share one generation.
	for i, k := range keys[:tt.ClusterSize] {
		depth := 10
		if i == tt.ClusterSize-1 {
			depth = 2
		}
		_, _, writer := table.Probe(k)
		writer.Write(k, 0, false, tt.BoundUpper, depth, board.MoveNone, 0)
	}

	victim := keys[tt.ClusterSize-1]
	hit, _, _ := table.Probe(victim)
	require.True(t, hit, "shallow entry should still be present before the collision")

	newKey := keys[tt.ClusterSize]
	_, _, writer := table.Probe(newKey)
	writer.Write(newKey, 1, false, tt.BoundUpper, 10, board.MoveNone, 0)

	hit, _, _ = table.Probe(victim)
	assert.False(t, hit, "the shallowest entry in the cluster should have been evicted")

	hit, data, _ := table.Probe(keys[0])
	require.True(t, hit, "a deeper entry sharing the cluster should survive the collision")
	assert.Equal(t, 10, data.Depth)
}

func TestClearResetsGenerationAndOccupancy(t *testing.T) {
	table := newTestTable(t)
	key := board.Key(0xfeedfacecafebeef)

	_, _, writer := table.Probe(key)
	writer.Write(key, 1, false, tt.BoundExact, 5, board.MoveNone, 0)

	hit, _, _ := table.Probe(key)
	require.True(t, hit)

	table.NewSearch()
	table.Clear(context.Background(), 4)

	hit, _, _ = table.Probe(key)
	assert.False(t, hit)
	assert.Contains(t, table.String(), "gen=0")
}
