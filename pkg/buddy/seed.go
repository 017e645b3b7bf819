package buddy

import "github.com/dereekb/buddyalloc/pkg/xunsafe"

// seed lays out the initial free lists at init, per spec §4.5 step 4-5.
//
// The prefix [base, base+sizeOf(r)) is treated as a single bucket-r block
// and split down its left spine: at each level j from r down to reserved+1,
// the right half (bucket j-1's size) is published to bucket j-1 and the
// left half is kept for further splitting. The final left half, at bucket
// "reserved", becomes the head-array block and is never published to any
// free list. The tail beyond sizeOf(r) is then tiled independently.
func (a *Arena) seed() {
	left := a.base
	for j := a.r; j > a.reserved; j-- {
		half := a.sizeOf(j - 1)
		right := left.Add(half)
		a.appendFree(j-1, right)
	}

	a.tileTail(a.base.Add(a.sizeOf(a.r)), a.base.Add(a.length))
}

// tileTail greedily decomposes [start, end) into the largest power-of-two
// blocks it can (bounded by bucket r), publishing each to its bucket. Any
// residue smaller than sizeOf(0) is permanently unusable; it is logged and
// otherwise ignored, per spec's tail-residue error kind.
func (a *Arena) tileTail(start, end xunsafe.Addr[byte]) {
	cur := start
	for cur < end {
		remaining := end.Sub(cur)
		if remaining < a.sizeOf(0) {
			a.log("init", "leaking %d residual tail bytes at %#x", remaining, uintptr(cur))
			return
		}

		i := a.r
		for i > 0 && a.sizeOf(i) > remaining {
			i--
		}

		a.appendFree(i, cur)
		cur = cur.Add(a.sizeOf(i))
	}
}
