package xunsafe

import "unsafe"

// Cast casts one pointer type to another.
func Cast[To, From any](p *From) *To {
	return (*To)(unsafe.Pointer(p))
}

// Load loads a value of the given type at the given element offset from p.
func Load[P ~*E, E any](p P, n int) E {
	var zero E
	return *(*E)(unsafe.Add(unsafe.Pointer(p), uintptr(n)*unsafe.Sizeof(zero)))
}

// Store stores a value at the given element offset from p.
func Store[P ~*E, E any](p P, n int, v E) {
	var zero E
	*(*E)(unsafe.Add(unsafe.Pointer(p), uintptr(n)*unsafe.Sizeof(zero))) = v
}

// Clear zeros n elements at p.
func Clear[P ~*E, E any](p P, n int) {
	clear(unsafe.Slice((*E)(unsafe.Pointer(p)), n))
}
