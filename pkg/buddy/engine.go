package buddy

import "github.com/dereekb/buddyalloc/pkg/xunsafe"

// Split/merge engine.

// allocBlock produces a free block of exactly bucket t's size, removing it
// from the free lists, or reports false if none can be produced.
func (a *Arena) allocBlock(t int) (xunsafe.Addr[byte], bool) {
	if addr, ok := a.takeLast(t); ok {
		return addr, true
	}
	if !a.split(t) {
		return 0, false
	}
	return a.takeLast(t)
}

// split finds the smallest nonempty bucket above t and repeatedly halves
// its blocks downward until bucket t holds at least one block. It refuses
// to look above bucket R (the top-bucket split guard): nothing above R
// exists to split, and reading past it would run off the head array.
func (a *Arena) split(t int) bool {
	j := t + 1
	for j <= a.r && !a.nonEmpty(j) {
		j++
	}
	if j > a.r {
		return false
	}

	for j > t {
		addr, ok := a.takeLast(j)
		if !ok {
			return false
		}
		j--
		left := addr
		right := addr.Add(a.sizeOf(j))
		a.appendFree(j, left)
		a.appendFree(j, right)
		a.log("split", "bucket %d block %#x -> bucket %d blocks %#x,%#x", j+1, uintptr(addr), j, uintptr(left), uintptr(right))
	}
	return true
}

// buddyAddr returns the buddy of the bucket-i block at b, or 0 if no merge
// should ever be attempted for it: the candidate falls outside the arena,
// or inside the reserved head-array block.
func (a *Arena) buddyAddr(i int, b xunsafe.Addr[byte]) xunsafe.Addr[byte] {
	sz := a.sizeOf(i)
	off := b.Sub(a.base)
	c := a.base.Add(off ^ sz)

	if !c.Within(a.base, a.base.Add(a.length-sz+1)) {
		return 0
	}
	if c.Sub(a.base) < a.sizeOf(a.reserved) {
		return 0
	}
	return c
}

// coalesce attempts to merge the bucket-i block at b with its buddy,
// recursing upward for as long as each successive buddy is also free. It
// stops when the buddy is not free, when i+1 exceeds R, or when the buddy
// would fall in the reserved head-array region (buddyAddr returning 0).
func (a *Arena) coalesce(i int, b xunsafe.Addr[byte]) {
	for {
		if i+1 > a.r {
			return
		}
		c := a.buddyAddr(i, b)
		if c == 0 {
			return
		}
		if !a.removeFree(i, c) {
			return
		}
		a.removeFree(i, b)

		lower := b
		if c < lower {
			lower = c
		}

		a.log("coalesce", "bucket %d blocks %#x,%#x -> bucket %d block %#x", i, uintptr(b), uintptr(c), i+1, uintptr(lower))

		i++
		b = lower
		a.appendFree(i, b)
	}
}
