package wasicore

import (
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/wasicore/wasicore/sandboxfs"
)

// Preopen configures one sandbox root available to the guest at init.
type Preopen struct {
	// MappedPath is the path the guest will see, e.g. "/tmp".
	MappedPath string
	// RealPath is the host directory backing it.
	RealPath string
}

// Config are the sandbox instance's init options.
type Config struct {
	// FdTableSize is the total number of descriptor slots, including the
	// three reserved for stdio. Must be > 0.
	FdTableSize int
	Args        []string
	Environ     []string
	Preopens    []Preopen

	// Stdin/Stdout/Stderr back fd 0/1/2. Any left nil get a no-op stand-in.
	Stdin  sandboxfs.File
	Stdout sandboxfs.File
	Stderr sandboxfs.File

	// ExitHook is invoked by ProcExit with the guest's exit code. Left nil,
	// ProcExit is a no-op that still reports success.
	ExitHook ExitHook
}

// Sandbox is one instance of the syscall core: an FD table plus the
// immutable argv/env state for one guest. It is not safe for concurrent use
// by multiple goroutines without external synchronization — confine a
// Sandbox to one caller at a time.
type Sandbox struct {
	table    *Table
	argv     []string
	envp     []string
	exitHook ExitHook
}

const (
	fdStdin  Fd = 0
	fdStdout Fd = 1
	fdStderr Fd = 2
	// firstPreopenFd is where configured preopens start, after the
	// embedder-reserved stdio descriptors.
	firstPreopenFd = 3
)

// New constructs a Sandbox from cfg. Each preopen's real path is canonicalized
// and opened; on any failure, every preopen opened so far is closed and the
// error is returned, leaving no live descriptors.
func New(cfg Config) (*Sandbox, error) {
	if cfg.FdTableSize <= 0 {
		return nil, fmt.Errorf("wasicore: FdTableSize must be > 0")
	}
	if cfg.FdTableSize < firstPreopenFd+len(cfg.Preopens) {
		return nil, fmt.Errorf("wasicore: FdTableSize too small for %d preopens", len(cfg.Preopens))
	}

	s := &Sandbox{
		table:    newTable(cfg.FdTableSize),
		argv:     append([]string(nil), cfg.Args...),
		envp:     append([]string(nil), cfg.Environ...),
		exitHook: cfg.ExitHook,
	}

	s.installStdio(fdStdin, cfg.Stdin)
	s.installStdio(fdStdout, cfg.Stdout)
	s.installStdio(fdStderr, cfg.Stderr)

	opened := make([]*descriptor, 0, len(cfg.Preopens))
	for _, p := range cfg.Preopens {
		root, err := sandboxfs.NewRoot(p.MappedPath, p.RealPath)
		if err != nil {
			s.closeAll(opened)
			return nil, err
		}
		dir, err := root.OpenFile(".", 0, 0, false)
		if err != nil {
			s.closeAll(opened)
			return nil, err
		}
		d := &descriptor{
			file:             dir,
			root:             root,
			typ:              FiletypeDirectory,
			rightsBase:       directoryBaseRights,
			rightsInheriting: directoryInheritingRights,
			preopen:          true,
			mappedPath:       p.MappedPath,
			realPath:         root.RealPath,
		}
		if _, errno := s.table.insertAt(firstPreopenFd, d); errno != ESUCCESS {
			dir.Close()
			s.closeAll(opened)
			return nil, fmt.Errorf("wasicore: %s", errno.Name())
		}
		opened = append(opened, d)
	}

	return s, nil
}

func (s *Sandbox) installStdio(fd Fd, f sandboxfs.File) {
	if f == nil {
		f = noopStdio{}
	}
	d := &descriptor{
		file:             f,
		typ:              FiletypeCharacterDevice,
		rightsBase:       RightFdRead | RightFdWrite | RightFdFilestatGet,
		rightsInheriting: 0,
	}
	s.table.slots[fd] = d
	s.table.mark(fd, true)
}

func (s *Sandbox) closeAll(ds []*descriptor) {
	for _, d := range ds {
		d.file.Close()
	}
}

// Close releases every live descriptor and the sandbox's argv/env buffers.
func (s *Sandbox) Close() error {
	var firstErr error
	s.table.scan(func(_ Fd, d *descriptor) bool {
		if err := d.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return true
	})
	return firstErr
}

// NumFds reports how many descriptors (including stdio and preopens) are
// currently live, for diagnostics.
func (s *Sandbox) NumFds() int { return s.table.numUsed() }

// noopStdio backs an unconfigured stdio slot: reads report EOF, writes are
// discarded, matching /dev/null semantics rather than failing every call.
type noopStdio struct{}

func (noopStdio) Close() error                          { return nil }
func (noopStdio) Read([]byte) (int, error)               { return 0, io.EOF }
func (noopStdio) ReadAt([]byte, int64) (int, error)       { return 0, io.EOF }
func (noopStdio) Write(b []byte) (int, error)             { return len(b), nil }
func (noopStdio) WriteAt(b []byte, _ int64) (int, error)  { return len(b), nil }
func (noopStdio) Seek(int64, int) (int64, error)          { return 0, fs.ErrInvalid }
func (noopStdio) ReadDir(int) ([]fs.DirEntry, error)      { return nil, fs.ErrInvalid }
func (noopStdio) Stat() (fs.FileInfo, error)              { return nil, fs.ErrInvalid }
func (noopStdio) Sync() error                             { return nil }
func (noopStdio) Truncate(int64) error                    { return fs.ErrInvalid }
func (noopStdio) Chtimes(atim, mtim time.Time) error      { return fs.ErrInvalid }

var _ sandboxfs.File = noopStdio{}
