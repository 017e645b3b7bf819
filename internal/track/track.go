// Package track is a small live-allocation registry used by the CLI harness
// and by pkg/buddy's Ackermann test to check that every allocation made
// during a recursive workload was freed by the time it unwinds, without
// pkg/buddy itself having to carry that bookkeeping — the allocator only
// ever needs to recover a
// block's bucket from its header, never to enumerate live allocations.
//
// It is a minimal open-addressing hash set over uintptr, using the same
// maphash.Hasher approach as the teacher's swiss-table map, sized for the
// handful of thousand addresses a stress test or Ackermann run keeps live
// at once.
package track

import "github.com/dolthub/maphash"

const tombstone = ^uintptr(0)

// Set is a hash set of live allocation addresses.
type Set struct {
	hash maphash.Hasher[uintptr]
	keys []uintptr // 0 = empty slot, tombstone = deleted slot
	used int
}

// NewSet constructs an empty registry.
func NewSet() *Set {
	return &Set{
		hash: maphash.NewHasher[uintptr](),
		keys: make([]uintptr, 16),
	}
}

// Add records addr as live. Reports false if addr was already recorded.
func (s *Set) Add(addr uintptr) bool {
	if addr == 0 {
		panic("track: cannot add the nil address")
	}

	if s.used*2 >= len(s.keys) {
		s.grow()
	}

	i := s.slot(addr)
	firstTombstone := -1
	for {
		switch s.keys[i] {
		case 0:
			if firstTombstone >= 0 {
				i = firstTombstone
			}
			s.keys[i] = addr
			s.used++
			return true
		case tombstone:
			if firstTombstone < 0 {
				firstTombstone = i
			}
		case addr:
			return false
		}
		i = (i + 1) % len(s.keys)
	}
}

// Remove forgets addr. Reports false if it was not recorded.
func (s *Set) Remove(addr uintptr) bool {
	i := s.slot(addr)
	for probes := 0; probes < len(s.keys); probes++ {
		switch s.keys[i] {
		case 0:
			return false
		case addr:
			s.keys[i] = tombstone
			s.used--
			return true
		}
		i = (i + 1) % len(s.keys)
	}
	return false
}

// Contains reports whether addr is currently recorded as live.
func (s *Set) Contains(addr uintptr) bool {
	i := s.slot(addr)
	for probes := 0; probes < len(s.keys); probes++ {
		switch s.keys[i] {
		case 0:
			return false
		case addr:
			return true
		}
		i = (i + 1) % len(s.keys)
	}
	return false
}

// Len returns the number of currently live addresses.
func (s *Set) Len() int { return s.used }

// Each calls fn once for every currently live address.
func (s *Set) Each(fn func(addr uintptr)) {
	for _, k := range s.keys {
		if k != 0 && k != tombstone {
			fn(k)
		}
	}
}

func (s *Set) slot(addr uintptr) int {
	return int(s.hash.Hash(addr) % uint64(len(s.keys)))
}

func (s *Set) grow() {
	old := s.keys
	s.keys = make([]uintptr, len(old)*2)
	s.used = 0
	for _, k := range old {
		if k != 0 && k != tombstone {
			i := s.slot(k)
			for s.keys[i] != 0 {
				i = (i + 1) % len(s.keys)
			}
			s.keys[i] = k
			s.used++
		}
	}
}
