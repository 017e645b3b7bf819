package buddy

import "github.com/dereekb/buddyalloc/pkg/xunsafe"

// Malloc allocates at least n bytes and returns a pointer to the first byte
// of usable storage, or nil if the request cannot be satisfied: the arena
// is out of memory, the request is larger than the arena's largest bucket
// can ever hold, or n is zero. Call LastError after a nil result to
// distinguish the three.
//
// Do not use this method directly if you need the distinction in-band; use
// [Arena.TryMalloc] instead.
func (a *Arena) Malloc(n int) *byte {
	p, err := a.TryMalloc(n)
	if err != nil {
		a.lastErr = err
		return nil
	}
	a.lastErr = nil
	return p
}

// TryMalloc is [Arena.Malloc], but returns the specific reason for failure
// instead of folding it into a bare nil.
func (a *Arena) TryMalloc(n int) (*byte, error) {
	if n == 0 {
		return nil, ErrZeroSize
	}
	if n+headerSize > a.sizeOf(a.r) {
		return nil, ErrOversize
	}

	t := a.minBucketForRequest(n)

	addr, ok := a.allocBlock(t)
	if !ok {
		return nil, ErrOutOfMemory
	}

	h := a.allocHeaderAt(addr)
	h.bucket = uintptr(t)
	h.payload = addr.Add(headerSize)

	a.log("malloc", "n=%d bucket=%d addr=%#x payload=%#x", n, t, uintptr(addr), uintptr(h.payload))

	return h.payload.AssertValid(), nil
}

// Free releases a block previously returned by Malloc on this arena.
//
// Freeing a nil pointer is a no-op. Freeing anything else not currently
// allocated by this arena — an address never returned by Malloc, or one
// already freed — returns ErrInvalidFree and leaves the arena's state
// unchanged.
func (a *Arena) Free(p *byte) error {
	if p == nil {
		return nil
	}

	payload := xunsafe.AddrOf(p)
	if !payload.Within(a.base.Add(headerSize), a.base.Add(a.length)) {
		a.lastErr = ErrInvalidFree
		return ErrInvalidFree
	}

	base := payload.Add(-headerSize)
	h := a.allocHeaderAt(base)
	if h.payload != payload {
		a.lastErr = ErrInvalidFree
		return ErrInvalidFree
	}

	t := int(h.bucket)
	if t < 0 || t > a.r || base.Sub(a.base) < a.sizeOf(a.reserved) {
		a.lastErr = ErrInvalidFree
		return ErrInvalidFree
	}

	h.bucket = 0
	h.payload = 0

	a.log("free", "bucket=%d addr=%#x payload=%#x", t, uintptr(base), uintptr(payload))

	a.appendFree(t, base)
	a.coalesce(t, base)

	a.lastErr = nil
	return nil
}
