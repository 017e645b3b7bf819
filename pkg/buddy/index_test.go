package buddy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog2Ceil(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, log2Ceil(c.n), "log2Ceil(%d)", c.n)
	}
}

func TestFloorLog2(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 2},
		{7, 2},
		{8, 3},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, floorLog2(c.n), "floorLog2(%d)", c.n)
	}
}

func TestSizeOfAndBucketOfRoundTrip(t *testing.T) {
	a, err := New(128, 512*1024)
	require.NoError(t, err)
	defer a.Release()

	for i := 0; i <= a.r; i++ {
		size := a.sizeOf(i)
		assert.Equal(t, i, a.bucketOf(size), "bucketOf(sizeOf(%d)) should round-trip", i)
		if size > 1 {
			assert.LessOrEqual(t, a.bucketOf(size-1), i)
		}
	}
}

func TestBucketOfMonotonic(t *testing.T) {
	a, err := New(128, 512*1024)
	require.NoError(t, err)
	defer a.Release()

	prev := -1
	for n := 1; n <= a.sizeOf(a.r); n *= 2 {
		b := a.bucketOf(n)
		assert.GreaterOrEqual(t, b, prev)
		prev = b
	}
}

func TestMinBucketForRequestChargesHeader(t *testing.T) {
	a, err := New(128, 512*1024)
	require.NoError(t, err)
	defer a.Release()

	// A request that exactly fills bucket 0's payload capacity (sizeOf(0) -
	// headerSize) must land in bucket 0; one byte more must overflow to
	// bucket 1.
	fill := a.sizeOf(0) - headerSize
	assert.Equal(t, 0, a.minBucketForRequest(fill))
	assert.Equal(t, 1, a.minBucketForRequest(fill+1))
}
