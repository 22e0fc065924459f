//go:build !unix

package wasicore

// errnoFromSyscall is only meaningful on platforms where host I/O errors
// surface as a raw syscall.Errno (POSIX systems, via golang.org/x/sys/unix).
// Elsewhere every error is already an io/fs sentinel or wrapped Errno.
func errnoFromSyscall(err error) (Errno, bool) { return 0, false }
