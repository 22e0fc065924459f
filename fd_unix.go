//go:build unix

package wasicore

import (
	"golang.org/x/sys/unix"

	"github.com/wasicore/wasicore/sandboxfs"
)

// errNotSupported marks a host call that exists but declined to perform the
// operation (ENOSYS/ENOTSUP), distinct from a real failure: callers fall
// back to an emulation instead of propagating the error.
var errNotSupported = unix.ENOSYS

// fadvise forwards fd_advise's hint to posix_fadvise, grounded on
// dispatchrun/wasi-go's wasiunix.fdadvise (golang.org/x/sys/unix.Fadvise).
func fadvise(fd uintptr, offset, length int64, advice Advice) error {
	var sys int
	switch advice {
	case AdviceNormal:
		sys = unix.FADV_NORMAL
	case AdviceSequential:
		sys = unix.FADV_SEQUENTIAL
	case AdviceRandom:
		sys = unix.FADV_RANDOM
	case AdviceWillneed:
		sys = unix.FADV_WILLNEED
	case AdviceDontneed:
		sys = unix.FADV_DONTNEED
	case AdviceNoreuse:
		sys = unix.FADV_NOREUSE
	default:
		return unix.EINVAL
	}
	err := unix.Fadvise(int(fd), offset, length, sys)
	if err == unix.ENOSYS || err == unix.ENOTSUP {
		return nil
	}
	return err
}

// fallocate forwards fd_allocate to posix_fallocate. Platforms without it
// (notably darwin) return errNotSupported so the caller degrades to
// fstat+truncate.
func fallocate(fd uintptr, offset, length int64) error {
	err := unix.Fallocate(int(fd), 0, offset, length)
	if err == unix.ENOTSUP {
		return errNotSupported
	}
	return err
}

// setFileStatusFlags implements fd_fdstat_set_flags via fcntl F_GETFL/
// F_SETFL, grounded on dispatchrun/wasi-go's wasiunix provider.go. DSYNC and
// RSYNC have no distinct POSIX open-flag on most platforms and degrade to
// SYNC.
func setFileStatusFlags(fd uintptr, flags Fdflags) error {
	cur, err := unix.FcntlInt(fd, unix.F_GETFL, 0)
	if err != nil {
		return err
	}
	next := cur &^ (unix.O_APPEND | unix.O_NONBLOCK | unix.O_SYNC)
	if flags&FdflagAppend != 0 {
		next |= unix.O_APPEND
	}
	if flags&FdflagNonblock != 0 {
		next |= unix.O_NONBLOCK
	}
	if flags&(FdflagSync|FdflagDsync|FdflagRsync) != 0 {
		next |= unix.O_SYNC
	}
	_, err = unix.FcntlInt(fd, unix.F_SETFL, next)
	return err
}

// fdstatFlags reads back the openness flags fd_fdstat_get reports, via
// F_GETFL where the file is backed by a real descriptor.
func fdstatFlags(f sandboxfs.File) (Fdflags, error) {
	fder, ok := f.(sandboxfs.Fder)
	if !ok {
		return 0, nil
	}
	cur, err := unix.FcntlInt(fder.Fd(), unix.F_GETFL, 0)
	if err != nil {
		return 0, err
	}
	var flags Fdflags
	if cur&unix.O_APPEND != 0 {
		flags |= FdflagAppend
	}
	if cur&unix.O_NONBLOCK != 0 {
		flags |= FdflagNonblock
	}
	if cur&unix.O_SYNC != 0 {
		flags |= FdflagSync
	}
	return flags, nil
}
