package buddy

import "errors"

var (
	// ErrInvalidConfig is returned by New when basicBlockSize/length violate
	// one of the arena's preconditions (basicBlockSize >= length, or the
	// arena is too small to host even a single usable bucket and its own
	// head array).
	ErrInvalidConfig = errors.New("buddy: invalid arena configuration")

	// ErrOutOfMemory is returned by TryMalloc when no bucket at or above the
	// target has a free block, and none can be manufactured by splitting.
	ErrOutOfMemory = errors.New("buddy: no free block available")

	// ErrOversize is returned by TryMalloc when the request (plus header)
	// exceeds the arena's largest bucket.
	ErrOversize = errors.New("buddy: request exceeds arena capacity")

	// ErrZeroSize is returned by TryMalloc for a zero-byte request, which is
	// rejected before any bucket is looked up. It is not an oversize
	// request, so it gets its own sentinel rather than borrowing
	// ErrOversize's.
	ErrZeroSize = errors.New("buddy: requested size is zero")

	// ErrInvalidFree is returned by Free when the address given was not
	// previously returned by Malloc on this arena (or has already been
	// freed).
	ErrInvalidFree = errors.New("buddy: address was not allocated by this arena")
)
