//go:build !unix

package wasicore

import (
	"errors"

	"github.com/wasicore/wasicore/sandboxfs"
)

// errNotSupported marks a host call that exists but declined to perform the
// operation, distinct from a real failure: callers fall back to an
// emulation instead of propagating the error.
var errNotSupported = errors.New("wasicore: unsupported on this platform")

func fadvise(fd uintptr, offset, length int64, advice Advice) error { return nil }

func fallocate(fd uintptr, offset, length int64) error { return errNotSupported }

func setFileStatusFlags(fd uintptr, flags Fdflags) error { return nil }

func fdstatFlags(f sandboxfs.File) (Fdflags, error) { return 0, nil }
