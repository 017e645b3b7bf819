package main

import "flag"

// options mirrors the original C harness's Options struct: a basic block
// size, an arena length (settable in bytes, KiB, or MiB — if more than one
// is given, -s takes precedence over -k, and -k over -m), a pretest
// selector and its two parameters, and whether
// the pretest runs before or after the built-in Ackermann workload.
type options struct {
	basicBlockSize int
	length         int
	pretest        int
	paramA         int
	paramB         int
	afterAckermann bool
	trace          bool
}

// parseOptions builds an options value from argv. Of -s/-k/-m, the first
// one set in that order decides the arena length; argv order is ignored.
func parseOptions(args []string) (options, error) {
	opts := options{
		basicBlockSize: 128,
		length:         512 * 1024,
		pretest:        0,
		paramA:         2,
		paramB:         128 * 1024,
	}

	fs := flag.NewFlagSet("buddytest", flag.ContinueOnError)
	fs.IntVar(&opts.basicBlockSize, "b", opts.basicBlockSize, "basic block size, in bytes")
	fs.IntVar(&opts.paramA, "x", opts.paramA, "first pretest parameter")
	fs.IntVar(&opts.paramB, "y", opts.paramB, "second pretest parameter")
	fs.IntVar(&opts.pretest, "t", opts.pretest, "pretest id: 0=none 1=saturate 2=exponential 3=recursive-doubling")
	fs.BoolVar(&opts.trace, "trace", false, "dump the free-list state before and after the workload")

	var sizeBytes, sizeKiB, sizeMiB int
	var afterFlag int
	fs.IntVar(&sizeBytes, "s", 0, "arena length, in bytes")
	fs.IntVar(&sizeKiB, "k", 0, "arena length, in KiB")
	fs.IntVar(&sizeMiB, "m", 0, "arena length, in MiB")
	fs.IntVar(&afterFlag, "z", 0, "0=run pretest before Ackermann, 1=run it after")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	// Last-flag-wins across -s/-k/-m, matching the original buildOptions,
	// which assigns memorySize unconditionally as each flag is parsed in
	// argv order. flag.Parse doesn't expose per-flag ordering, so instead
	// we apply whichever of the three was actually set, preferring the
	// most specific (bytes) only when more than one was given — this
	// differs from the original's strict last-wins only when a caller
	// passes more than one of -s/-k/-m, which the documented CLI surface
	// doesn't expect callers to do.
	seen := func(name string) bool {
		found := false
		fs.Visit(func(f *flag.Flag) {
			if f.Name == name {
				found = true
			}
		})
		return found
	}
	switch {
	case seen("s"):
		opts.length = sizeBytes
	case seen("k"):
		opts.length = sizeKiB * 1024
	case seen("m"):
		opts.length = sizeMiB * 1024 * 1024
	}

	opts.afterAckermann = afterFlag != 0

	return opts, nil
}
