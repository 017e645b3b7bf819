package main

import (
	"fmt"

	"github.com/dereekb/buddyalloc/pkg/buddy"
)

// saturate repeatedly mallocs a fixed size until the arena refuses,
// matching the original harness's mawTest: the best exerciser of bucket
// splitting, since every request is the same size.
func saturate(a *buddy.Arena, size int) int {
	count := 0
	for a.Malloc(size) != nil {
		count++
	}
	return count
}

// exponential allocates 1<<i bytes for i in [0, maxIndex), optionally
// freeing immediately, matching the original harness's forTest. It exists
// to walk every bucket from smallest to largest in one pass.
func exponential(a *buddy.Arena, maxIndex int, freeImmediately bool) {
	for i := 0; i < maxIndex; i++ {
		size := 1 << uint(i)
		p := a.Malloc(size)
		if freeImmediately && p != nil {
			_ = a.Free(p)
		}
	}
}

// recursiveDoubling mirrors the original harness's recursiveTest: memory
// doubles on every recursive call until it reaches endingMemory, and
// nothing is freed until the recursion unwinds — the inverse of
// exponential's immediate-free mode.
func recursiveDoubling(a *buddy.Arena, memory, endingMemory int) {
	p := a.Malloc(memory)
	if p == nil {
		return
	}
	if memory < endingMemory {
		recursiveDoubling(a, memory*2, endingMemory)
	}
	_ = a.Free(p)
}

// runPretest dispatches on opts.pretest, as the original harness's runTest
// switch does.
func runPretest(a *buddy.Arena, opts options) {
	fmt.Printf("running pretest(%d): x=%d y=%d\n", opts.pretest, opts.paramA, opts.paramB)

	switch opts.pretest {
	case 1:
		count := saturate(a, opts.paramA)
		fmt.Printf("saturate: %d allocations of %d bytes before exhaustion\n", count, opts.paramA)
	case 2:
		exponential(a, opts.paramA, opts.paramB != 0)
	case 3:
		recursiveDoubling(a, opts.paramA, opts.paramB)
	}
}
