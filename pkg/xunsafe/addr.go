package xunsafe

import "unsafe"

// Addr is a typed address: a uintptr tagged with the pointee type it was
// derived from, so that arithmetic on it (Add, comparisons) is automatically
// scaled by sizeof(T) without the caller having to remember to do so.
//
// Unlike a *T, an Addr[T] is not tracked by the garbage collector. The memory
// it refers to must be kept alive by some other means — in pkg/buddy, by the
// Arena holding a reference to the backing []byte for as long as the Addr
// values derived from it are in use.
type Addr[T any] uintptr

// AddrOf returns the address of p as an Addr[T].
func AddrOf[T any](p *T) Addr[T] {
	return Addr[T](uintptr(unsafe.Pointer(p)))
}

// Add returns a+n, where n is scaled by the size of T (a "byte offset" when
// T is byte, an "element offset" otherwise).
func (a Addr[T]) Add(n int) Addr[T] {
	var zero T
	return a + Addr[T](uintptr(n)*unsafe.Sizeof(zero))
}

// Sub returns the difference a-b, in units of T.
func (a Addr[T]) Sub(b Addr[T]) int {
	var zero T
	return int(uintptr(a)-uintptr(b)) / int(unsafe.Sizeof(zero))
}

// IsZero reports whether a is the nil address.
func (a Addr[T]) IsZero() bool { return a == 0 }

// AssertValid converts a back into a *T. Returns nil if a is the nil address.
func (a Addr[T]) AssertValid() *T {
	if a == 0 {
		return nil
	}
	return (*T)(unsafe.Pointer(uintptr(a)))
}

// Within reports whether a lies in [lo, hi).
func (a Addr[T]) Within(lo, hi Addr[T]) bool {
	return uintptr(a) >= uintptr(lo) && uintptr(a) < uintptr(hi)
}
