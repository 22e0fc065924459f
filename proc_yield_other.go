//go:build !linux

package wasicore

import "runtime"

// schedYield falls back to runtime.Gosched on platforms where x/sys/unix
// does not bind sched_yield(2) directly; it yields the goroutine's
// scheduling slot, the closest portable equivalent.
func schedYield() Errno {
	runtime.Gosched()
	return ESUCCESS
}
