// Package buddy implements a fixed-arena binary buddy memory allocator.
//
// A single contiguous byte region, obtained once from the Go runtime's
// allocator, is carved into power-of-two blocks. Allocation descends from
// larger free blocks, splitting them in half until a block of the requested
// size exists; freeing a block walks back up, coalescing it with its buddy
// whenever that buddy is also free. The free-list bucket heads themselves
// live inside the managed arena, in a block reserved for them at init and
// never handed out to a caller.
//
// # Design
//
// This is a from-scratch reimplementation of the allocation scheme found in
// Derek Burgman's my_allocator.c, restructured around an explicit *Arena
// value (so that, unlike the original, nothing about the allocator's state
// is global) and fixing the one latent bug in the source: buddy
// identification by address XOR rather than the source's always-false
// even/odd test.
//
// # Usage
//
//	a, err := buddy.New(128, 512*1024)
//	if err != nil {
//		return err
//	}
//	defer a.Release()
//
//	p := a.Malloc(1024)
//	if p == nil {
//		// out of memory, or oversize request
//	}
//	if err := a.Free(p); err != nil {
//		// p was not a pointer this arena handed out
//	}
//
// # Memory safety
//
//   - A pointer returned by Malloc is valid until the matching Free or until
//     Release is called on the owning arena, whichever comes first.
//   - The allocator does not track pointer provenance beyond the header
//     immediately preceding each allocation: passing Free an address that
//     was not returned by Malloc on this arena is reported as an error, not
//     promoted to undefined behavior, but passing Free a stale pointer after
//     Release is undefined, as with any raw pointer into freed memory.
//   - This package is not safe for concurrent use of a single *Arena from
//     more than one goroutine; callers wanting that must provide their own
//     synchronization. Multiple independent arenas may each be used from
//     their own goroutine without synchronization between them.
package buddy
