//go:build linux

package clockres

import "golang.org/x/sys/unix"

// Supported reports whether id's clock can be queried on this platform.
func Supported(id ID) bool { return true }

func clockID(id ID) int32 {
	if id == ThreadCputimeID {
		return unix.CLOCK_THREAD_CPUTIME_ID
	}
	return unix.CLOCK_PROCESS_CPUTIME_ID
}

// Res returns the clock's resolution in nanoseconds.
func Res(id ID) (uint64, error) {
	var ts unix.Timespec
	if err := unix.ClockGetres(clockID(id), &ts); err != nil {
		return 0, err
	}
	return uint64(ts.Nano()), nil
}

// Now returns the clock's current value in nanoseconds.
func Now(id ID) (uint64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(clockID(id), &ts); err != nil {
		return 0, err
	}
	return uint64(ts.Nano()), nil
}
