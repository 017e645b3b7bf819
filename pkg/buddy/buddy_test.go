package buddy_test

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dereekb/buddyalloc/pkg/buddy"
)

func TestNewRejectsBadConfig(t *testing.T) {
	Convey("Given invalid basic-block-size/length combinations", t, func() {
		Convey("basicBlockSize >= length is rejected", func() {
			_, err := buddy.New(1024, 512)
			So(err, ShouldEqual, buddy.ErrInvalidConfig)
		})

		Convey("an arena too small to host a head array plus one free block is rejected", func() {
			_, err := buddy.New(128, 200)
			So(err, ShouldEqual, buddy.ErrInvalidConfig)
		})

		Convey("basicBlockSize of zero is rejected", func() {
			_, err := buddy.New(0, 4096)
			So(err, ShouldEqual, buddy.ErrInvalidConfig)
		})
	})
}

func TestMallocFreeRoundTrip(t *testing.T) {
	Convey("Given a freshly initialized arena", t, func() {
		a, err := buddy.New(128, 512*1024)
		So(err, ShouldBeNil)
		defer a.Release()

		var before bytes.Buffer
		a.DebugDump(&before)

		Convey("64 successive mallocs of 1024 bytes all succeed", func() {
			var ptrs []*byte
			for i := 0; i < 64; i++ {
				p := a.Malloc(1024)
				So(p, ShouldNotBeNil)
				ptrs = append(ptrs, p)
			}

			Convey("and freeing them in reverse order restores the post-init snapshot", func() {
				for i := len(ptrs) - 1; i >= 0; i-- {
					So(a.Free(ptrs[i]), ShouldBeNil)
				}

				var after bytes.Buffer
				a.DebugDump(&after)
				So(after.String(), ShouldEqual, before.String())
			})
		})
	})
}

func TestMonotoneExhaustion(t *testing.T) {
	Convey("Given a small arena", t, func() {
		a, err := buddy.New(128, 512*1024)
		So(err, ShouldBeNil)
		defer a.Release()

		Convey("repeated malloc(2048) with no free eventually returns nil", func() {
			var ptrs []*byte
			for {
				p := a.Malloc(2048)
				if p == nil {
					break
				}
				ptrs = append(ptrs, p)
			}
			So(len(ptrs), ShouldBeGreaterThan, 0)

			Convey("and it never returns non-nil again without an intervening free", func() {
				So(a.Malloc(2048), ShouldBeNil)
				So(a.Malloc(2048), ShouldBeNil)
			})

			Convey("freeing one restores the ability to malloc(2048) exactly once", func() {
				a.Free(ptrs[0])
				p := a.Malloc(2048)
				So(p, ShouldNotBeNil)
				So(a.Malloc(2048), ShouldBeNil)
			})
		})
	})
}

func TestExponentialSizes(t *testing.T) {
	Convey("Given an arena", t, func() {
		a, err := buddy.New(128, 512*1024)
		So(err, ShouldBeNil)
		defer a.Release()

		Convey("malloc(1<<i) for i in 0..18 eventually fails, and the arena stays usable after freeing everything", func() {
			var ptrs []*byte
			for i := 0; i < 18; i++ {
				p := a.Malloc(1 << uint(i))
				if p != nil {
					ptrs = append(ptrs, p)
				}
			}
			So(len(ptrs), ShouldBeLessThan, 18)

			for _, p := range ptrs {
				So(a.Free(p), ShouldBeNil)
			}

			p := a.Malloc(128)
			So(p, ShouldNotBeNil)
			So(a.Free(p), ShouldBeNil)
		})
	})
}

func TestTinyArena(t *testing.T) {
	Convey("Given a tiny arena", t, func() {
		a, err := buddy.New(128, 2*1024)
		So(err, ShouldBeNil)
		defer a.Release()

		Convey("init/release succeed even though large allocations fail", func() {
			p := a.Malloc(4096)
			So(p, ShouldBeNil)
			So(a.LastError(), ShouldEqual, buddy.ErrOversize)
		})
	})
}

func TestFreeInvalidAddress(t *testing.T) {
	Convey("Given an arena", t, func() {
		a, err := buddy.New(128, 512*1024)
		So(err, ShouldBeNil)
		defer a.Release()

		Convey("freeing an address that was already freed reports an error and changes nothing", func() {
			var before bytes.Buffer
			a.DebugDump(&before)

			bogus := a.Malloc(64) // a real allocation, to get a valid in-arena address
			So(bogus, ShouldNotBeNil)
			a.Free(bogus) // now free it for real...

			// ...then try to free it again: it is no longer a live allocation.
			err := a.Free(bogus)
			So(err, ShouldEqual, buddy.ErrInvalidFree)

			var after bytes.Buffer
			a.DebugDump(&after)
			So(after.String(), ShouldEqual, before.String())
		})

		Convey("freeing nil is a no-op", func() {
			So(a.Free(nil), ShouldBeNil)
		})
	})
}

func TestNoBuddyIsEverFreeTwice(t *testing.T) {
	Convey("Given an arena with many small allocations", t, func() {
		a, err := buddy.New(64, 256*1024)
		So(err, ShouldBeNil)
		defer a.Release()

		var before bytes.Buffer
		a.DebugDump(&before)

		var ptrs []*byte
		for i := 0; i < 200; i++ {
			p := a.Malloc(32)
			if p == nil {
				break
			}
			ptrs = append(ptrs, p)
		}

		Convey("freeing every outstanding allocation in arbitrary order succeeds and coalesces every buddy pair back to the post-init state", func() {
			// Free odd-indexed, then even-indexed: deliberately not reverse
			// order, to exercise coalescing from mixed directions.
			for i := 1; i < len(ptrs); i += 2 {
				So(a.Free(ptrs[i]), ShouldBeNil)
			}
			for i := 0; i < len(ptrs); i += 2 {
				So(a.Free(ptrs[i]), ShouldBeNil)
			}

			var after bytes.Buffer
			a.DebugDump(&after)
			So(after.String(), ShouldEqual, before.String())
		})
	})
}
