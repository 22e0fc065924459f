package sandboxfs

import (
	"io"
	"io/fs"
	"os"
	"time"
)

// File is the host object a descriptor wraps: a regular file or directory
// opened through a Root, trimmed to what the syscall core in this module
// actually needs (path-relative chaining is handled by Root.Resolve instead
// of by the file itself, so there is no OpenFile/MakeDir method here).
type File interface {
	io.Closer
	io.Reader
	io.ReaderAt
	io.Writer
	io.WriterAt
	io.Seeker
	fs.ReadDirFile
	Stat() (fs.FileInfo, error)
	Sync() error
	Truncate(size int64) error
	Chtimes(atim, mtim time.Time) error
}

// osFile adapts *os.File to File. os.File already implements everything but
// Chtimes, which has no direct os.File-scoped equivalent.
type osFile struct{ *os.File }

func (f osFile) Chtimes(atim, mtim time.Time) error {
	return os.Chtimes(f.File.Name(), atim, mtim)
}

// Fd exposes the raw OS descriptor, for the handful of operations
// (fd_advise, fd_allocate, fd_fdstat_set_flags) that have no portable
// io/fs-level equivalent and must drop to golang.org/x/sys/unix.
func (f osFile) Fd() uintptr { return f.File.Fd() }

var _ File = osFile{}

// Fder is implemented by File values backed by a real OS descriptor.
// Stand-ins used in tests or for stdio need not implement it; when the
// assertion fails, callers skip the host call (fd_advise succeeds as a no-op,
// fd_allocate uses Stat+Truncate, fd_fdstat_set_flags only records the flags).
type Fder interface {
	Fd() uintptr
}

// WrapOSFile adapts an already-opened *os.File (e.g. from path_open's host
// call) to File.
func WrapOSFile(f *os.File) File { return osFile{f} }

// OpenFile resolves path within r and opens it with the given flags/perm,
// following symlinks unless lookup omits LookupflagSymlinkFollow semantics
// handled by the caller (the flag itself is interpreted by
// wasicore.PathOpen; Root.OpenFile just does the resolve-then-open).
func (r *Root) OpenFile(path string, flags int, perm fs.FileMode, followSymlinks bool) (File, error) {
	real, err := r.Resolve(path, followSymlinks)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(real, flags, perm)
	if err != nil {
		return nil, err
	}
	return osFile{f}, nil
}

// Stat resolves path and stats it without opening a descriptor.
func (r *Root) Stat(path string, followSymlinks bool) (fs.FileInfo, error) {
	real, err := r.Resolve(path, followSymlinks)
	if err != nil {
		return nil, err
	}
	if followSymlinks {
		return os.Stat(real)
	}
	return os.Lstat(real)
}

func (r *Root) Mkdir(path string, perm fs.FileMode) error {
	real, err := r.Resolve(path, false)
	if err != nil {
		return err
	}
	return os.Mkdir(real, perm)
}

func (r *Root) Rmdir(path string) error {
	real, err := r.Resolve(path, false)
	if err != nil {
		return err
	}
	return os.Remove(real)
}

func (r *Root) Unlink(path string) error {
	real, err := r.Resolve(path, false)
	if err != nil {
		return err
	}
	return os.Remove(real)
}

func (r *Root) Chtimes(path string, followSymlinks bool, atim, mtim time.Time) error {
	real, err := r.Resolve(path, followSymlinks)
	if err != nil {
		return err
	}
	return os.Chtimes(real, atim, mtim)
}

func (r *Root) Readlink(path string) (string, error) {
	// The link itself must be contained; its target is returned to the
	// guest verbatim and is not resolved or checked (see Root.Symlink).
	real, err := r.Resolve(path, false)
	if err != nil {
		return "", err
	}
	return os.Readlink(real)
}

// Symlink creates a symlink at new_path (resolved, contained) whose target
// is target, stored exactly as given: per spec the link target is
// guest-opaque and is never itself sandbox-resolved, matching uvwasi's
// uvwasi_path_symlink, which passes old_path to the host verbatim.
func (r *Root) Symlink(target, newPath string) error {
	real, err := r.Resolve(newPath, false)
	if err != nil {
		return err
	}
	return os.Symlink(target, real)
}

// Rename renames within a single root (both paths resolved against r). Cross-root
// renames are composed by the caller by resolving each side against its own root
// first and failing EXDEV if the roots differ, matching ordinary POSIX rename.
func (r *Root) Rename(oldPath, newPath string) error {
	oldReal, err := r.Resolve(oldPath, false)
	if err != nil {
		return err
	}
	newReal, err := r.Resolve(newPath, false)
	if err != nil {
		return err
	}
	return os.Rename(oldReal, newReal)
}

func (r *Root) Link(oldPath string, followOld bool, newRoot *Root, newPath string) error {
	oldReal, err := r.Resolve(oldPath, followOld)
	if err != nil {
		return err
	}
	newReal, err := newRoot.Resolve(newPath, false)
	if err != nil {
		return err
	}
	return os.Link(oldReal, newReal)
}
