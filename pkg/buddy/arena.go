package buddy

import (
	"unsafe"

	"github.com/dereekb/buddyalloc/internal/debug"
	"github.com/dereekb/buddyalloc/pkg/xunsafe"
)

// freeNode is the in-place record written at the base of a free block (and,
// for the first free block in a bucket, into that bucket's head slot
// instead — see freelist.go).
type freeNode struct {
	addr xunsafe.Addr[byte]
	next xunsafe.Addr[byte]
}

// blockHeader is the record written at the base of an allocated block.
// It has the same layout as freeNode, so that the same headerSize bytes can
// play either role depending only on whether the block is currently free or
// allocated.
type blockHeader struct {
	bucket  uintptr
	payload xunsafe.Addr[byte]
}

// headerSize is the number of bytes reserved at the base of every block,
// free or allocated, for bookkeeping. It is sized to fit either a freeNode
// or a blockHeader, which by construction are the same size.
const headerSize = int(unsafe.Sizeof(freeNode{}))

// Arena is a single fixed-size buddy allocator instance.
//
// A zero Arena is not usable; construct one with [New]. Arena is not safe
// for concurrent use from more than one goroutine.
type Arena struct {
	_ xunsafe.NoCopy

	mem  []byte
	base xunsafe.Addr[byte]

	blockSize int // B
	length    int // L

	kmin, kmax int
	r          int // R = kmax - kmin
	reserved   int // s, the bucket hosting the head array

	lastErr error
}

// New creates an arena of length bytes, managed in units of basicBlockSize.
//
// basicBlockSize must be at least 1, and length must be large enough to
// hold at least one usable bucket plus the head array that buckets are
// indexed through; otherwise New returns ErrInvalidConfig.
func New(basicBlockSize, length int) (*Arena, error) {
	if basicBlockSize < 1 || length <= basicBlockSize || length <= headerSize+basicBlockSize {
		return nil, ErrInvalidConfig
	}

	mem := make([]byte, length)
	a := &Arena{
		mem:       mem,
		base:      xunsafe.AddrOf(&mem[0]),
		blockSize: basicBlockSize,
		length:    length,
	}

	if !a.computeBounds() {
		return nil, ErrInvalidConfig
	}

	clear(mem[:(a.r+1)*headerSize])

	a.seed()

	a.log("init", "B=%d L=%d kmin=%d kmax=%d R=%d reserved=%d", basicBlockSize, length, a.kmin, a.kmax, a.r, a.reserved)

	return a, nil
}

// BytesManaged returns the number of bytes under management by this arena —
// the value spec's init operation calls "bytes_allocated". It is always
// equal to the length passed to New.
func (a *Arena) BytesManaged() int {
	return a.length
}

// Release returns the arena's backing storage to the Go runtime.
//
// After Release, every pointer previously returned by Malloc on this arena
// is invalid; using one is undefined behavior, exactly as with any other
// use-after-free. Release itself is idempotent.
func (a *Arena) Release() {
	a.mem = nil
	a.base = 0
}

// LastError returns the error from the most recent Malloc or Free call, or
// nil if that call succeeded, for diagnostic callers such as the CLI harness
// that want to distinguish out-of-memory from oversize without changing
// Malloc's nil-on-failure contract. TryMalloc does not update it.
func (a *Arena) LastError() error {
	return a.lastErr
}

func (a *Arena) log(op, format string, args ...any) {
	debug.Log([]any{"%#x+%d", uintptr(a.base), a.length}, op, format, args...)
}

// headerAt resolves a block address, previously handed out by
// appendFree/takeLast or derived from arena.base, to the in-place freeNode
// record at its base. It relies on addr.AssertValid staying within the
// backing slice, which holds as long as every Addr[byte] in play was
// produced by arithmetic rooted at a.base.
func (a *Arena) headerAt(addr xunsafe.Addr[byte]) *freeNode {
	return xunsafe.Cast[freeNode](addr.AssertValid())
}

func (a *Arena) allocHeaderAt(addr xunsafe.Addr[byte]) *blockHeader {
	return xunsafe.Cast[blockHeader](addr.AssertValid())
}

func (a *Arena) headAt(i int) *freeNode {
	return (*freeNode)(unsafe.Pointer(&a.mem[i*headerSize]))
}
