//go:build !linux

package clockres

import "errors"

// ErrUnsupported is returned on platforms where x/sys/unix does not expose
// CLOCK_PROCESS_CPUTIME_ID/CLOCK_THREAD_CPUTIME_ID through ClockGettime.
var ErrUnsupported = errors.New("clockres: process/thread cpu-time clocks unsupported on this platform")

func Supported(id ID) bool { return false }

func Res(id ID) (uint64, error) { return 0, ErrUnsupported }

func Now(id ID) (uint64, error) { return 0, ErrUnsupported }
