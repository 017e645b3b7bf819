// Command buddytest is a stress-test harness for pkg/buddy, in the spirit
// of the original C allocator's memtest.c: it initializes an arena from
// command-line-configurable dimensions, optionally runs one of three
// simple pretests, always runs an Ackermann-recursion workload, and checks
// that every allocation the Ackermann workload made was freed once it
// unwinds. Allocations made by the pretests are not tracked.
//
// Usage:
//
//	buddytest -b <bytes> [-s <bytes> | -k <KiB> | -m <MiB>] \
//	          [-t <0|1|2|3> -x <n> -y <n> -z <0|1>] [-trace]
package main

import (
	"fmt"
	"os"

	"github.com/dereekb/buddyalloc/internal/track"
	"github.com/dereekb/buddyalloc/pkg/buddy"
)

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("buddytest options: ~%d KiB arena, %d-byte blocks, pretest=%d\n",
		opts.length/1024, opts.basicBlockSize, opts.pretest)

	a, err := buddy.New(opts.basicBlockSize, opts.length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "buddytest: init failed: %v\n", err)
		os.Exit(1)
	}
	defer a.Release()

	if opts.trace {
		a.DebugDump(os.Stdout)
	}

	if opts.pretest > 0 && !opts.afterAckermann {
		runPretest(a, opts)
	}

	live := track.NewSet()
	result := runAckermann(a, live, 2, 3)
	fmt.Printf("Ackermann(2,3) = %d, live allocations after unwind = %d\n", result, live.Len())

	if opts.pretest > 0 && opts.afterAckermann {
		runPretest(a, opts)
	}

	if opts.trace {
		a.DebugDump(os.Stdout)
	}

	if live.Len() != 0 {
		fmt.Fprintln(os.Stderr, "buddytest: leaked allocations after Ackermann workload")
		os.Exit(1)
	}
}
