package main

import (
	"fmt"

	"github.com/dereekb/buddyalloc/internal/track"
	"github.com/dereekb/buddyalloc/pkg/buddy"
)

// ackermannAllocSize is the size malloc'd on entry to every recursive call,
// as in the original harness (the original doesn't vary it by depth either).
const ackermannAllocSize = 16

// runAckermann runs Ackermann(m, n), mallocing ackermannAllocSize bytes on
// entry to every call and freeing on exit, recording every live address in
// live so the caller can confirm nothing leaked once the recursion
// unwinds — the workload spec's end-to-end scenario 4 describes.
func runAckermann(a *buddy.Arena, live *track.Set, m, n int) int {
	p := a.Malloc(ackermannAllocSize)
	if p == nil {
		panic(fmt.Sprintf("buddytest: malloc(%d) failed at Ackermann(%d, %d)", ackermannAllocSize, m, n))
	}
	addr := addrOf(p)
	if !live.Add(addr) {
		panic("buddytest: malloc returned an address already considered live")
	}

	defer func() {
		live.Remove(addr)
		if err := a.Free(p); err != nil {
			panic(fmt.Sprintf("buddytest: free failed at Ackermann(%d, %d): %v", m, n, err))
		}
	}()

	switch {
	case m == 0:
		return n + 1
	case n == 0:
		return runAckermann(a, live, m-1, 1)
	default:
		return runAckermann(a, live, m-1, runAckermann(a, live, m, n-1))
	}
}
