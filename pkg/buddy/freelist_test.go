package buddy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsFreeTracksMallocAndFree(t *testing.T) {
	a, err := New(128, 64*1024)
	require.NoError(t, err)
	defer a.Release()

	bucket := a.bucketOf(a.sizeOf(0))
	addr, ok := a.allocBlock(bucket)
	require.True(t, ok, "expected bucket %d to be satisfiable right after init", bucket)
	assert.False(t, a.containsFree(bucket, addr), "a block just allocated must not be reported as free")

	a.appendFree(bucket, addr)
	assert.True(t, a.containsFree(bucket, addr), "a block just appended back must be reported as free")

	taken, ok := a.takeLast(bucket)
	require.True(t, ok)
	assert.Equal(t, addr, taken)
	assert.False(t, a.containsFree(bucket, addr), "a block just taken off the free list must not still be reported as free")
}

func TestRemoveFreePromotesHeadSlot(t *testing.T) {
	a, err := New(128, 64*1024)
	require.NoError(t, err)
	defer a.Release()

	bucket := a.bucketOf(a.sizeOf(0))
	first, ok := a.allocBlock(bucket)
	require.True(t, ok)
	second, ok := a.allocBlock(bucket)
	require.True(t, ok)

	// first becomes the head slot's own block, second is chained after it
	// with its own in-place record.
	a.appendFree(bucket, first)
	a.appendFree(bucket, second)

	require.True(t, a.containsFree(bucket, first))
	require.True(t, a.containsFree(bucket, second))

	require.True(t, a.removeFree(bucket, first))
	assert.False(t, a.containsFree(bucket, first))
	assert.True(t, a.containsFree(bucket, second), "removing the head's own block must promote the next node rather than dropping it")
}
