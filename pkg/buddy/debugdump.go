package buddy

import (
	"fmt"
	"io"
)

// DebugDump writes a human-readable listing of every bucket's free chain to
// w: sizes, addresses, and whether the bucket hosts the reserved head
// array. It is a read-only diagnostic, not gated behind the debug build
// tag, in the spirit of the original source's printFreestore.
func (a *Arena) DebugDump(w io.Writer) {
	fmt.Fprintf(w, "arena base=%#x length=%d blockSize=%d kmin=%d kmax=%d R=%d reserved=%d\n",
		uintptr(a.base), a.length, a.blockSize, a.kmin, a.kmax, a.r, a.reserved)

	for i := 0; i <= a.r; i++ {
		tag := ""
		if i == a.reserved {
			tag = " (reserved: hosts head array)"
		}

		fmt.Fprintf(w, "bucket[%d] size=%d%s:", i, a.sizeOf(i), tag)

		h := a.headAt(i)
		if h.addr == 0 {
			fmt.Fprint(w, " (empty)\n")
			continue
		}

		fmt.Fprintf(w, " %#x", uintptr(h.addr))
		for cur := h.next; cur != 0; {
			fmt.Fprintf(w, " -> %#x", uintptr(cur))
			cur = a.headerAt(cur).next
		}
		fmt.Fprint(w, "\n")
	}
}
