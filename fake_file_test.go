package wasicore

import (
	"io"
	"io/fs"
	"time"
)

// fakeFile is a minimal sandboxfs.File stand-in used by table_test.go to
// observe Close behavior without touching the real filesystem.
type fakeFile struct {
	closes int
	data   []byte
	pos    int64
}

func (f *fakeFile) Close() error { f.closes++; return nil }

func (f *fakeFile) Read(b []byte) (int, error) {
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(b, f.data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

func (f *fakeFile) ReadAt(b []byte, off int64) (int, error) {
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	return copy(b, f.data[off:]), nil
}

func (f *fakeFile) Write(b []byte) (int, error) {
	f.data = append(f.data, b...)
	f.pos = int64(len(f.data))
	return len(b), nil
}

func (f *fakeFile) WriteAt(b []byte, off int64) (int, error) {
	if need := off + int64(len(b)); need > int64(len(f.data)) {
		grown := make([]byte, need)
		copy(grown, f.data)
		f.data = grown
	}
	copy(f.data[off:], b)
	return len(b), nil
}

func (f *fakeFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		f.pos = offset
	case io.SeekCurrent:
		f.pos += offset
	case io.SeekEnd:
		f.pos = int64(len(f.data)) + offset
	}
	return f.pos, nil
}

func (f *fakeFile) ReadDir(n int) ([]fs.DirEntry, error) { return nil, fs.ErrInvalid }

func (f *fakeFile) Stat() (fs.FileInfo, error) { return nil, fs.ErrInvalid }

func (f *fakeFile) Sync() error { return nil }

func (f *fakeFile) Truncate(size int64) error {
	if size < int64(len(f.data)) {
		f.data = f.data[:size]
	} else {
		grown := make([]byte, size)
		copy(grown, f.data)
		f.data = grown
	}
	return nil
}

func (f *fakeFile) Chtimes(atim, mtim time.Time) error { return nil }
