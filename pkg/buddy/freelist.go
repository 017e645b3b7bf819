package buddy

import "github.com/dereekb/buddyalloc/pkg/xunsafe"

// Free-list store.
//
// The head array holds one freeNode per bucket, indexed by adjusted bucket
// index. Following the original C source this reimplementation is derived
// from (my_allocator.c's addAddressToFreestoreForAdjustedIndex /
// getLastFreestoreBlockAtAdjustedIndex), a bucket's head slot doubles as the
// record for that bucket's first free block: head.addr is the first free
// block's own base address, and head.next chains directly to the *second*
// free block's in-place record. Every free block from the second onward
// carries a genuine {addr, next} record at its own base; the first block's
// record lives only in the head array, saving a write into memory that is
// about to be handed back out anyway.

// nonEmpty reports whether bucket i currently has any free block.
func (a *Arena) nonEmpty(i int) bool {
	return a.headAt(i).addr != 0
}

// appendFree adds addr, a block of bucket i's size, to bucket i's free
// list. addr must not already be on any free list.
func (a *Arena) appendFree(i int, addr xunsafe.Addr[byte]) {
	h := a.headAt(i)
	if h.addr == 0 {
		h.addr = addr
		h.next = 0
		return
	}

	next := &h.next
	cur := h.next
	for cur != 0 {
		rec := a.headerAt(cur)
		next = &rec.next
		cur = rec.next
	}

	*next = addr
	rec := a.headerAt(addr)
	rec.addr = addr
	rec.next = 0
}

// takeLast removes and returns the last (most recently appended) block in
// bucket i's free list, implementing the engine's LIFO-per-bucket policy.
func (a *Arena) takeLast(i int) (xunsafe.Addr[byte], bool) {
	h := a.headAt(i)
	if h.addr == 0 {
		return 0, false
	}
	if h.next == 0 {
		addr := h.addr
		h.addr = 0
		return addr, true
	}

	prev := &h.next
	cur := h.next
	for {
		rec := a.headerAt(cur)
		if rec.next == 0 {
			*prev = 0
			return cur, true
		}
		prev = &rec.next
		cur = rec.next
	}
}

// removeFree removes addr from bucket i's free list, reporting whether it
// was found there.
func (a *Arena) removeFree(i int, addr xunsafe.Addr[byte]) bool {
	h := a.headAt(i)
	if h.addr == addr {
		if h.next == 0 {
			h.addr = 0
			return true
		}
		next := h.next
		rec := a.headerAt(next)
		h.addr = next
		h.next = rec.next
		return true
	}

	prev := &h.next
	cur := h.next
	for cur != 0 {
		rec := a.headerAt(cur)
		if cur == addr {
			*prev = rec.next
			return true
		}
		prev = &rec.next
		cur = rec.next
	}

	return false
}

// containsFree reports whether addr is currently on bucket i's free list.
// Used by tests to check the quantified invariants in spec §8.
func (a *Arena) containsFree(i int, addr xunsafe.Addr[byte]) bool {
	h := a.headAt(i)
	if h.addr == 0 {
		return false
	}
	if h.addr == addr {
		return true
	}
	for cur := h.next; cur != 0; {
		if cur == addr {
			return true
		}
		cur = a.headerAt(cur).next
	}
	return false
}
