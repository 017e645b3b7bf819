package buddy

import "math/bits"

// sizeOf returns the size, in bytes, of a block in bucket i: size(i) =
// 2^(i+kmin) * B.
func (a *Arena) sizeOf(i int) int {
	return 1 << (i + a.kmin) * a.blockSize
}

// log2Ceil returns the smallest k such that 2^k >= n, for n >= 1.
func log2Ceil(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// bucketForBytes returns the smallest bucket-k (unadjusted, i.e. relative to
// B, not yet offset by kmin) such that 2^k * B >= n.
func bucketForBytes(n, blockSize int) int {
	m := (n + blockSize - 1) / blockSize
	if m < 1 {
		m = 1
	}
	return log2Ceil(m)
}

// bucketOf returns the smallest adjusted bucket index i >= 0 such that
// sizeOf(i) >= n, floor-clamped to 0. This is spec's bucket_of.
func (a *Arena) bucketOf(n int) int {
	k := bucketForBytes(n, a.blockSize)
	i := k - a.kmin
	if i < 0 {
		i = 0
	}
	return i
}

// minBucketForRequest returns the bucket a payload request of n bytes must
// land in, accounting for the header every allocated block carries.
func (a *Arena) minBucketForRequest(n int) int {
	return a.bucketOf(n + headerSize)
}

// floorLog2 returns the largest k such that 2^k <= n, for n >= 1.
func floorLog2(n int) int {
	return bits.Len(uint(n)) - 1
}

// computeBounds derives kmin, kmax, r and the reserved bucket s from
// blockSize and length, per spec §4.2/§4.5. Returns false if the arena is
// too small to host even bucket 0, or if no block outside the head array's
// own block would be left free.
func (a *Arena) computeBounds() bool {
	a.kmin = bucketForBytes(headerSize+1, a.blockSize)

	x := (a.length - headerSize) / a.blockSize
	if x < 1 {
		return false
	}
	a.kmax = floorLog2(x)
	if a.kmax < a.kmin {
		return false
	}
	a.r = a.kmax - a.kmin

	headArrayBytes := (a.r + 1) * headerSize
	a.reserved = a.bucketOf(headArrayBytes)
	if a.reserved > a.r {
		return false
	}
	// With reserved == r the head array takes the whole prefix, so only the
	// tail can supply a free block.
	return a.reserved < a.r || a.length-a.sizeOf(a.r) >= a.sizeOf(0)
}
