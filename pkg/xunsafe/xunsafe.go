// Package xunsafe provides a small, typed layer over Go's unsafe package,
// used by pkg/buddy to reason about addresses inside a single arena without
// scattering raw uintptr arithmetic through the engine.
package xunsafe

import "sync"

// NoCopy is a type that go vet will complain about having been moved.
//
// It does so by being an array of [sync.Mutex], which vet's copylocks check
// treats as a lock.
type NoCopy [0]sync.Mutex
