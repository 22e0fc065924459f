//go:build !unix

package wasicore

// raiseSignal has no host mapping outside POSIX platforms.
func raiseSignal(sig Signal) Errno { return ENOSYS }
