//go:build unix

package wasicore

import (
	"errors"
	"syscall"
)

// errnoFromSyscall maps a raw syscall.Errno (as returned by golang.org/x/sys/unix
// calls such as Fadvise, Fallocate and FcntlInt, which have no io/fs sentinel)
// to the sandbox's Errno taxonomy.
func errnoFromSyscall(err error) (Errno, bool) {
	var sysErr syscall.Errno
	if !errors.As(err, &sysErr) {
		return 0, false
	}
	switch sysErr {
	case syscall.E2BIG:
		return E2BIG, true
	case syscall.EACCES:
		return EACCES, true
	case syscall.EAGAIN:
		return EAGAIN, true
	case syscall.EBADF:
		return EBADF, true
	case syscall.EBUSY:
		return EBUSY, true
	case syscall.EEXIST:
		return EEXIST, true
	case syscall.EFAULT:
		return EFAULT, true
	case syscall.EFBIG:
		return EFBIG, true
	case syscall.EINTR:
		return EINTR, true
	case syscall.EINVAL:
		return EINVAL, true
	case syscall.EIO:
		return EIO, true
	case syscall.EISDIR:
		return EISDIR, true
	case syscall.ELOOP:
		return ELOOP, true
	case syscall.EMFILE:
		return EMFILE, true
	case syscall.EMLINK:
		return EMLINK, true
	case syscall.ENAMETOOLONG:
		return ENAMETOOLONG, true
	case syscall.ENFILE:
		return ENFILE, true
	case syscall.ENODEV:
		return ENODEV, true
	case syscall.ENOENT:
		return ENOENT, true
	case syscall.ENOMEM:
		return ENOMEM, true
	case syscall.ENOSPC:
		return ENOSPC, true
	case syscall.ENOSYS:
		return ENOSYS, true
	case syscall.ENOTDIR:
		return ENOTDIR, true
	case syscall.ENOTEMPTY:
		return ENOTEMPTY, true
	case syscall.ENOTSUP:
		return ENOTSUP, true
	case syscall.ENXIO:
		return ENXIO, true
	case syscall.EOVERFLOW:
		return EOVERFLOW, true
	case syscall.EPERM:
		return EPERM, true
	case syscall.EPIPE:
		return EPIPE, true
	case syscall.EROFS:
		return EROFS, true
	case syscall.ESPIPE:
		return ESPIPE, true
	case syscall.EXDEV:
		return EXDEV, true
	default:
		return EIO, true
	}
}
